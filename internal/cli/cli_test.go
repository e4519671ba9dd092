package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shaiso/feedback/internal/api"
	"github.com/shaiso/feedback/internal/domain"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.ScoreEvent
}

func (r *recorder) Submit(event domain.ScoreEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) all() []domain.ScoreEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ScoreEvent(nil), r.events...)
}

func newTestAPI(t *testing.T) (*Client, *recorder) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := api.NewControlStore(16, logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	rec := &recorder{}
	h := api.NewHandler(api.Config{
		Controls:  store,
		Submitter: rec,
		Logger:    logger,
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL), rec
}

func newTestOutput(jsonMode bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewOutputTo(jsonMode, &stdout, &stderr), &stdout, &stderr
}

// --- Client Tests ---

func TestClient_ControlLifecycle(t *testing.T) {
	client, rec := newTestAPI(t)

	ctrl, err := client.MountControl("trace-1")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if ctrl.State != "IDLE" || ctrl.TraceID != "trace-1" {
		t.Fatalf("unexpected control %+v", ctrl)
	}

	if ctrl, err = client.SelectPolarity(ctrl.ID, "+"); err != nil {
		t.Fatalf("polarity: %v", err)
	}
	if ctrl.State != "REFINING" || ctrl.Selection.Polarity != "positive" {
		t.Errorf("unexpected control %+v", ctrl)
	}
	if ctrl.Placeholder != "Default: 1.0 (range: 0.0 - 1.0)" {
		t.Errorf("unexpected placeholder %q", ctrl.Placeholder)
	}

	resp, err := client.Submit(ctrl.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.Submitted || resp.Event.Value != 1 {
		t.Errorf("unexpected submit %+v", resp)
	}
	if len(rec.all()) != 1 {
		t.Errorf("expected 1 event, got %d", len(rec.all()))
	}

	if err := client.UnmountControl(ctrl.ID); err != nil {
		t.Fatalf("unmount: %v", err)
	}
	_, err = client.GetControl(ctrl.ID)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("expected 404 APIError, got %v", err)
	}
}

func TestClient_ValidationError(t *testing.T) {
	client, _ := newTestAPI(t)

	ctrl, _ := client.MountControl("trace-1")
	client.SelectPolarity(ctrl.ID, "negative")
	score := "2"
	client.UpdateDraft(ctrl.ID, UpdateDraftRequest{Score: &score})

	_, err := client.Submit(ctrl.ID)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "SCORE_OUT_OF_RANGE" || apiErr.Message != "Score must be between 0 and 1" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

// --- Command Tests ---

func runCmd(t *testing.T, client *Client, jsonMode bool, args ...string) (string, string, error) {
	t.Helper()

	out, stdout, stderr := newTestOutput(jsonMode)
	clientFn := func() *Client { return client }
	outputFn := func() *Output { return out }

	var cmd = NewSendCmd(clientFn, outputFn)
	switch args[0] {
	case "show":
		cmd = NewShowCmd(clientFn, outputFn)
	case "status":
		cmd = NewStatusCmd(clientFn, outputFn)
	}
	cmd.SetArgs(args[1:])
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSendCmd(t *testing.T) {
	client, rec := newTestAPI(t)

	stdout, _, err := runCmd(t, client, true, "send", "trace-9", "--polarity", "negative", "--score", "0.25", "--comment", " meh ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var event ScoreEventResponse
	if err := json.Unmarshal([]byte(stdout), &event); err != nil {
		t.Fatalf("decode output %q: %v", stdout, err)
	}
	if event.TraceID != "trace-9" || event.Value != 0.25 || event.Comment == nil || *event.Comment != "meh" {
		t.Errorf("unexpected event %+v", event)
	}

	events := rec.all()
	if len(events) != 1 || events[0].Value() != 0.25 {
		t.Errorf("unexpected submitted events %v", events)
	}
}

func TestSendCmd_DefaultScore(t *testing.T) {
	client, rec := newTestAPI(t)

	stdout, _, err := runCmd(t, client, false, "send", "trace-1", "--polarity", "down")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(stdout, "user-feedback") {
		t.Errorf("expected table output, got %q", stdout)
	}
	if events := rec.all(); len(events) != 1 || events[0].Value() != 0 {
		t.Errorf("expected a single 0.0 score, got %v", events)
	}
}

func TestSendCmd_OutOfRange(t *testing.T) {
	client, rec := newTestAPI(t)

	_, _, err := runCmd(t, client, false, "send", "trace-1", "--polarity", "positive", "--score", "1.5")
	if err == nil || !strings.Contains(err.Error(), "SCORE_OUT_OF_RANGE") {
		t.Errorf("expected SCORE_OUT_OF_RANGE, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Error("nothing should be submitted")
	}
}

func TestSendCmd_RequiresPolarity(t *testing.T) {
	client, _ := newTestAPI(t)

	if _, _, err := runCmd(t, client, false, "send", "trace-1"); err == nil {
		t.Error("expected error without --polarity")
	}
}

func TestStatusCmd(t *testing.T) {
	client, _ := newTestAPI(t)

	stdout, _, err := runCmd(t, client, false, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(stdout, "UNKNOWN") {
		t.Errorf("expected telemetry state in output, got %q", stdout)
	}
}

func TestShowCmd(t *testing.T) {
	client, _ := newTestAPI(t)
	ctrl, _ := client.MountControl("trace-7")

	stdout, _, err := runCmd(t, client, false, "show", ctrl.ID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(stdout, "trace-7") || !strings.Contains(stdout, "IDLE") {
		t.Errorf("unexpected output %q", stdout)
	}
}

// --- Prompt Tests ---

func TestRunPrompt_RejectThenCorrect(t *testing.T) {
	client, rec := newTestAPI(t)
	out, _, stderr := newTestOutput(false)

	input := strings.Join([]string{
		"+",
		"score 1.5",
		"submit",
		"score 0.8",
		"comment great answer",
		"ctrl+enter",
		"quit",
	}, "\n")

	if err := RunPrompt(client, out, strings.NewReader(input), "trace-1"); err != nil {
		t.Fatalf("prompt: %v", err)
	}

	log := stderr.String()
	if !strings.Contains(log, "Error: Score must be between 0 and 1") {
		t.Errorf("expected validation message, got %q", log)
	}
	if !strings.Contains(log, "Feedback submitted: 0.8") {
		t.Errorf("expected submit confirmation, got %q", log)
	}

	events := rec.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if comment, ok := events[0].Comment(); !ok || comment != "great answer" {
		t.Errorf("unexpected comment %q", comment)
	}
}

func TestRunPrompt_CancelAndToggle(t *testing.T) {
	client, rec := newTestAPI(t)
	out, _, stderr := newTestOutput(false)

	input := "-\nesc\n+\n+\nsubmit\nwat\n"

	if err := RunPrompt(client, out, strings.NewReader(input), "trace-1"); err != nil {
		t.Fatalf("prompt: %v", err)
	}

	if len(rec.all()) != 0 {
		t.Error("nothing should be submitted")
	}
	if !strings.Contains(stderr.String(), `unknown command "wat"`) {
		t.Errorf("expected unknown command error, got %q", stderr.String())
	}
}
