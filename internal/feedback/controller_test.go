package feedback

import (
	"errors"
	"sync"
	"testing"

	"github.com/shaiso/feedback/internal/domain"
)

// recorder — Submitter, запоминающий события.
type recorder struct {
	mu     sync.Mutex
	events []domain.ScoreEvent
}

func (r *recorder) Submit(event domain.ScoreEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) last() domain.ScoreEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func newTestController(traceID string) (*Controller, *recorder) {
	rec := &recorder{}
	return New(Config{TraceID: traceID, Submitter: rec}), rec
}

// --- State machine Tests ---

func TestController_InitialState(t *testing.T) {
	c, _ := newTestController("trace-1")

	if c.State() != StateIdle {
		t.Errorf("expected IDLE, got %s", c.State())
	}
	if c.Snapshot() != (Selection{}) {
		t.Error("selection should be at rest")
	}
	if c.Placeholder() != "" {
		t.Error("placeholder should be empty when idle")
	}
}

func TestController_SelectOpensRefinement(t *testing.T) {
	c, _ := newTestController("trace-1")

	if err := c.SelectPolarity(domain.PolarityPositive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := c.Snapshot()
	if snap.Polarity != domain.PolarityPositive {
		t.Errorf("expected positive, got %s", snap.Polarity)
	}
	if !snap.RefinementOpen {
		t.Error("refinement panel should be open")
	}
	if c.State() != StateRefining {
		t.Errorf("expected REFINING, got %s", c.State())
	}
}

func TestController_ToggleOff(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityNegative)
	c.UpdateDraftScore("0.2")
	c.UpdateDraftComment("meh")

	_ = c.SelectPolarity(domain.PolarityNegative)

	if c.State() != StateIdle {
		t.Errorf("expected IDLE after toggle-off, got %s", c.State())
	}
	snap := c.Snapshot()
	if snap.DraftScore != "" || snap.DraftComment != "" {
		t.Errorf("drafts should be cleared, got %+v", snap)
	}
	if rec.count() != 0 {
		t.Error("toggle-off must not submit")
	}
}

func TestController_SwapKeepsDrafts(t *testing.T) {
	c, _ := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftComment("actually not great")
	c.UpdateDraftScore("0.4")

	_ = c.SelectPolarity(domain.PolarityNegative)

	snap := c.Snapshot()
	if snap.Polarity != domain.PolarityNegative {
		t.Errorf("expected negative, got %s", snap.Polarity)
	}
	if !snap.RefinementOpen {
		t.Error("panel should stay open")
	}
	if snap.DraftComment != "actually not great" || snap.DraftScore != "0.4" {
		t.Errorf("drafts should survive a swap, got %+v", snap)
	}
}

func TestController_SelectNone(t *testing.T) {
	c, _ := newTestController("trace-1")

	err := c.SelectPolarity(domain.PolarityNone)
	if !errors.Is(err, domain.ErrUnknownPolarity) {
		t.Errorf("expected ErrUnknownPolarity, got %v", err)
	}
	if c.State() != StateIdle {
		t.Error("invalid polarity must not transition")
	}
}

func TestController_CancelFromRefining(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftScore("abc")
	c.UpdateDraftComment("text")
	_, _ = c.Submit() // оставляет сообщение валидации

	c.Cancel()

	if c.State() != StateIdle {
		t.Errorf("expected IDLE, got %s", c.State())
	}
	if c.Snapshot() != (Selection{}) {
		t.Errorf("selection should be at rest, got %+v", c.Snapshot())
	}
	if c.ValidationMessage() != "" {
		t.Error("validation message should be cleared")
	}
	if rec.count() != 0 {
		t.Error("cancel must not submit")
	}
}

func TestController_CancelFromIdle(t *testing.T) {
	c, _ := newTestController("trace-1")
	c.Cancel()
	if c.State() != StateIdle {
		t.Errorf("expected IDLE, got %s", c.State())
	}
}

// --- Submit Tests ---

func TestController_SubmitFromIdle_NoOp(t *testing.T) {
	c, rec := newTestController("trace-1")

	event, err := c.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Error("submit from IDLE should not produce an event")
	}
	if rec.count() != 0 {
		t.Error("submit from IDLE should not reach the submitter")
	}
}

func TestController_SubmitPositiveDefault_ScenarioA(t *testing.T) {
	c, rec := newTestController("trace-a")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftScore("")
	c.UpdateDraftComment("great")

	event, err := c.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil {
		t.Fatal("expected event")
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 submitted event, got %d", rec.count())
	}

	got := rec.last()
	if got.TraceID() != "trace-a" {
		t.Errorf("expected trace-a, got %s", got.TraceID())
	}
	if got.Value() != 1.0 {
		t.Errorf("expected 1.0, got %v", got.Value())
	}
	if comment, ok := got.Comment(); !ok || comment != "great" {
		t.Errorf("expected comment great, got %q", comment)
	}
	if c.State() != StateIdle {
		t.Errorf("expected IDLE after submit, got %s", c.State())
	}
	if c.Snapshot() != (Selection{}) {
		t.Error("drafts should be cleared after submit")
	}
}

func TestController_SubmitNegativeDefault(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityNegative)
	if _, err := c.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.last().Value() != 0.0 {
		t.Errorf("expected 0.0, got %v", rec.last().Value())
	}
}

func TestController_SubmitExplicitScore_ScenarioB(t *testing.T) {
	c, rec := newTestController("trace-b")

	_ = c.SelectPolarity(domain.PolarityNegative)
	c.UpdateDraftScore("0.35")

	if _, err := c.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.last()
	if got.Value() != 0.35 {
		t.Errorf("expected 0.35, got %v", got.Value())
	}
	if _, ok := got.Comment(); ok {
		t.Error("comment should be absent")
	}
}

func TestController_ExplicitScoreOverridesPolarity(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftScore(" 0.8 ")

	if _, err := c.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.last().Value() != 0.8 {
		t.Errorf("expected 0.8, got %v", rec.last().Value())
	}
}

func TestController_SubmitOutOfRange_ScenarioC(t *testing.T) {
	c, rec := newTestController("trace-c")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftScore("1.5")
	c.UpdateDraftComment("keep me")

	event, err := c.Submit()
	if !errors.Is(err, domain.ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if event != nil {
		t.Error("rejected submit should not return an event")
	}
	if rec.count() != 0 {
		t.Error("rejected submit must not reach the submitter")
	}

	snap := c.Snapshot()
	if c.State() != StateRefining || snap.Polarity != domain.PolarityPositive {
		t.Errorf("state should remain REFINING(positive), got %s/%s", c.State(), snap.Polarity)
	}
	if snap.DraftScore != "1.5" || snap.DraftComment != "keep me" {
		t.Errorf("drafts should be retained, got %+v", snap)
	}
	if c.ValidationMessage() != MessageScoreOutOfRange {
		t.Errorf("unexpected validation message %q", c.ValidationMessage())
	}
}

func TestController_SubmitInvalidFormat(t *testing.T) {
	for _, draft := range []string{"abc", "0.5abc", "NaN", "1,5"} {
		c, rec := newTestController("trace-1")
		_ = c.SelectPolarity(domain.PolarityNegative)
		c.UpdateDraftScore(draft)

		_, err := c.Submit()
		if !errors.Is(err, domain.ErrInvalidScoreFormat) {
			t.Errorf("%q: expected ErrInvalidScoreFormat, got %v", draft, err)
		}
		if rec.count() != 0 {
			t.Errorf("%q: must not submit", draft)
		}
		if c.State() != StateRefining {
			t.Errorf("%q: state should remain REFINING", draft)
		}
		if c.ValidationMessage() != MessageInvalidScore {
			t.Errorf("%q: unexpected validation message %q", draft, c.ValidationMessage())
		}
	}
}

func TestController_CorrectAfterRejection(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftScore("-1")
	if _, err := c.Submit(); err == nil {
		t.Fatal("expected rejection")
	}

	c.UpdateDraftScore("0.9")
	if c.ValidationMessage() != "" {
		t.Error("editing the score should clear the validation message")
	}
	if _, err := c.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.last().Value() != 0.9 {
		t.Errorf("expected 0.9, got %v", rec.last().Value())
	}
}

func TestController_ValidScoresPassThrough(t *testing.T) {
	cases := map[string]float64{
		"0":    0,
		"1":    1,
		"0.0":  0,
		"1.0":  1,
		".5":   0.5,
		"0.01": 0.01,
		"1e-1": 0.1,
	}
	for draft, want := range cases {
		c, rec := newTestController("trace-1")
		_ = c.SelectPolarity(domain.PolarityNegative)
		c.UpdateDraftScore(draft)

		if _, err := c.Submit(); err != nil {
			t.Errorf("%q: unexpected error: %v", draft, err)
			continue
		}
		if rec.last().Value() != want {
			t.Errorf("%q: expected %v, got %v", draft, want, rec.last().Value())
		}
	}
}

func TestController_DoubleSubmit(t *testing.T) {
	c, rec := newTestController("trace-1")
	_ = c.SelectPolarity(domain.PolarityPositive)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Submit()
		}()
	}
	wg.Wait()

	if rec.count() != 1 {
		t.Errorf("expected exactly 1 event, got %d", rec.count())
	}
}

func TestController_ReusableAfterSubmit(t *testing.T) {
	c, rec := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	_, _ = c.Submit()
	_ = c.SelectPolarity(domain.PolarityNegative)
	_, _ = c.Submit()

	if rec.count() != 2 {
		t.Fatalf("expected 2 events, got %d", rec.count())
	}
	if rec.last().Value() != 0.0 {
		t.Errorf("expected 0.0, got %v", rec.last().Value())
	}
}

func TestController_NilSubmitter(t *testing.T) {
	c := New(Config{TraceID: "trace-1"})
	_ = c.SelectPolarity(domain.PolarityPositive)

	if _, err := c.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != StateIdle {
		t.Error("expected IDLE")
	}
}

// --- Keys / Placeholder Tests ---

func TestController_HandleKey(t *testing.T) {
	c, rec := newTestController("trace-1")

	// Вне панели сокращения игнорируются
	if _, err := c.HandleKey(KeySubmit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 0 {
		t.Error("key submit from IDLE should be ignored")
	}

	_ = c.SelectPolarity(domain.PolarityPositive)
	c.UpdateDraftComment("hi")
	if _, err := c.HandleKey(KeyCancel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != StateIdle {
		t.Error("escape should cancel")
	}

	_ = c.SelectPolarity(domain.PolarityPositive)
	event, err := c.HandleKey(KeySubmit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil || rec.count() != 1 {
		t.Error("ctrl+enter should submit")
	}
}

func TestParseKey(t *testing.T) {
	for _, in := range []string{"submit", "Ctrl+Enter", "cmd+enter"} {
		if k, err := ParseKey(in); err != nil || k != KeySubmit {
			t.Errorf("%q: expected KeySubmit, got %v %v", in, k, err)
		}
	}
	for _, in := range []string{"cancel", "ESC", "escape"} {
		if k, err := ParseKey(in); err != nil || k != KeyCancel {
			t.Errorf("%q: expected KeyCancel, got %v %v", in, k, err)
		}
	}
	if _, err := ParseKey("tab"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestController_Placeholder(t *testing.T) {
	c, _ := newTestController("trace-1")

	_ = c.SelectPolarity(domain.PolarityPositive)
	if got := c.Placeholder(); got != "Default: 1.0 (range: 0.0 - 1.0)" {
		t.Errorf("unexpected placeholder %q", got)
	}

	_ = c.SelectPolarity(domain.PolarityNegative)
	if got := c.Placeholder(); got != "Default: 0.0 (range: 0.0 - 1.0)" {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestSelection_State(t *testing.T) {
	s := Selection{Polarity: domain.PolarityPositive}
	if s.State() != StateSelected {
		t.Errorf("expected SELECTED, got %s", s.State())
	}
}
