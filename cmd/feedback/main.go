// feedback — инструмент командной строки для отзывов о trace
// через HTTP API feedback-api.
//
// Использование:
//
//	feedback [--api-url URL] [--json] <command> [flags]
//
// Команды:
//
//	send    Отправить отзыв одной командой
//	prompt  Интерактивный контрол
//	show    Состояние контрола
//	status  Состояние сервиса
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/feedback/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "feedback",
		Short:         "Feedback CLI — rate traces with thumbs up/down and a score",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewSendCmd(clientFn, outputFn),
		cli.NewPromptCmd(clientFn, outputFn),
		cli.NewShowCmd(clientFn, outputFn),
		cli.NewStatusCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
