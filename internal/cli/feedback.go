package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var controlHeaders = []string{"ID", "TRACE_ID", "STATE", "POLARITY", "SCORE", "COMMENT"}

// NewSendCmd создаёт команду отправки отзыва одним вызовом.
func NewSendCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var polarity string
	var score string
	var comment string

	cmd := &cobra.Command{
		Use:   "send TRACE_ID",
		Short: "Send feedback for a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			ctrl, err := client.MountControl(args[0])
			if err != nil {
				return err
			}
			defer client.UnmountControl(ctrl.ID)

			if _, err := client.SelectPolarity(ctrl.ID, polarity); err != nil {
				return err
			}

			var draft UpdateDraftRequest
			if cmd.Flags().Changed("score") {
				draft.Score = &score
			}
			if cmd.Flags().Changed("comment") {
				draft.Comment = &comment
			}
			if draft.Score != nil || draft.Comment != nil {
				if _, err := client.UpdateDraft(ctrl.ID, draft); err != nil {
					return err
				}
			}

			resp, err := client.Submit(ctrl.ID)
			if err != nil {
				return err
			}
			if !resp.Submitted || resp.Event == nil {
				return fmt.Errorf("feedback was not submitted")
			}

			printEvent(out, *resp.Event)
			return nil
		},
	}

	cmd.Flags().StringVar(&polarity, "polarity", "", "Thumbs direction (positive, negative)")
	cmd.Flags().StringVar(&score, "score", "", "Explicit score in [0, 1]")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	cmd.MarkFlagRequired("polarity")

	return cmd
}

// NewShowCmd создаёт команду просмотра контрола.
func NewShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show CONTROL_ID",
		Short: "Show a mounted control",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := clientFn().GetControl(args[0])
			if err != nil {
				return err
			}

			printControl(outputFn(), *ctrl)
			return nil
		},
	}
}

// NewStatusCmd создаёт команду проверки состояния сервиса.
func NewStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show telemetry and control counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := clientFn().Status()
			if err != nil {
				return err
			}

			outputFn().Print(
				[]string{"TELEMETRY", "CONTROLS"},
				[][]string{{status.Telemetry, strconv.Itoa(status.Controls)}},
				status,
			)
			return nil
		},
	}
}

// NewPromptCmd создаёт интерактивную команду.
func NewPromptCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt TRACE_ID",
		Short: "Leave feedback interactively",
		Long: `Mounts a control for the trace and reads commands from stdin:

  +, -              select thumbs up / thumbs down (again to deselect)
  score X           set draft score (empty to clear)
  comment TEXT      set draft comment
  submit            submit (also: ctrl+enter)
  cancel            discard selection (also: esc)
  show              print control state
  quit              unmount and exit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPrompt(clientFn(), outputFn(), cmd.InOrStdin(), args[0])
		},
	}
}

// RunPrompt монтирует контрол и выполняет команды из in до quit или EOF.
func RunPrompt(client *Client, out *Output, in io.Reader, traceID string) error {
	ctrl, err := client.MountControl(traceID)
	if err != nil {
		return err
	}
	defer client.UnmountControl(ctrl.ID)

	out.Info(fmt.Sprintf("control %s mounted for trace %q", ctrl.ID, traceID))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)

		if cmd == "quit" || cmd == "exit" {
			return nil
		}

		if err := promptStep(client, out, ctrl.ID, cmd, arg); err != nil {
			var apiErr *APIError
			// 4xx — ошибка ввода, контрол остаётся в прежнем состоянии
			if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
				out.Error(apiErr.Message)
				continue
			}
			return err
		}
	}

	return scanner.Err()
}

func promptStep(client *Client, out *Output, id, cmd, arg string) error {
	switch cmd {
	case "+", "-", "up", "down", "positive", "negative":
		ctrl, err := client.SelectPolarity(id, cmd)
		if err != nil {
			return err
		}
		printStateLine(out, *ctrl)

	case "score":
		score := strings.TrimSpace(arg)
		ctrl, err := client.UpdateDraft(id, UpdateDraftRequest{Score: &score})
		if err != nil {
			return err
		}
		printStateLine(out, *ctrl)

	case "comment":
		ctrl, err := client.UpdateDraft(id, UpdateDraftRequest{Comment: &arg})
		if err != nil {
			return err
		}
		printStateLine(out, *ctrl)

	case "submit":
		resp, err := client.Submit(id)
		if err != nil {
			return err
		}
		reportSubmit(out, resp)

	case "ctrl+enter", "cmd+enter", "esc", "escape":
		resp, err := client.PressKey(id, cmd)
		if err != nil {
			return err
		}
		reportSubmit(out, resp)

	case "cancel":
		ctrl, err := client.Cancel(id)
		if err != nil {
			return err
		}
		printStateLine(out, *ctrl)

	case "show":
		ctrl, err := client.GetControl(id)
		if err != nil {
			return err
		}
		printControl(out, *ctrl)

	default:
		out.Error(fmt.Sprintf("unknown command %q", cmd))
	}

	return nil
}

func reportSubmit(out *Output, resp *SubmitResponse) {
	if resp.Submitted && resp.Event != nil {
		out.Success(fmt.Sprintf("Feedback submitted: %s", formatScore(resp.Event.Value)))
		return
	}
	printStateLine(out, resp.Control)
}

func printStateLine(out *Output, c ControlResponse) {
	line := c.State
	if c.Selection.Polarity != "" {
		line += " " + c.Selection.Polarity
	}
	if c.Placeholder != "" {
		line += " | " + c.Placeholder
	}
	out.Info(line)
}

func printControl(out *Output, c ControlResponse) {
	polarity := c.Selection.Polarity
	if polarity == "" {
		polarity = "-"
	}

	rows := [][]string{{
		c.ID,
		c.TraceID,
		c.State,
		polarity,
		c.Selection.DraftScore,
		c.Selection.DraftComment,
	}}
	out.Print(controlHeaders, rows, c)
}

func printEvent(out *Output, e ScoreEventResponse) {
	comment := ""
	if e.Comment != nil {
		comment = *e.Comment
	}

	out.Print(
		[]string{"TRACE_ID", "NAME", "VALUE", "COMMENT"},
		[][]string{{e.TraceID, e.Name, formatScore(e.Value), comment}},
		e,
	)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
