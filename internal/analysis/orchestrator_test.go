package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brea-backend/internal/llm"
)

// fakeClient is a scriptable llm.Client that records its calls.
type fakeClient struct {
	mu    sync.Mutex
	resp  string
	err   error
	calls int
	last  llm.AnalyzeInput
	block chan struct{}
}

func (f *fakeClient) AnalyzeProperty(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	f.mu.Lock()
	f.calls++
	f.last = input
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", &llm.InferenceError{Code: llm.CodeTimeout, Err: ctx.Err()}
		}
	}
	return f.resp, f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeClient) lastInput() llm.AnalyzeInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type fixedGate bool

func (g fixedGate) Verified() bool { return bool(g) }

func TestSubmitSubscriptionGate(t *testing.T) {
	client := &fakeClient{resp: validOutput}
	o := NewOrchestrator(client, fixedGate(false), 0)

	_, err := o.Submit(context.Background(), TextInput("piso en venta"))
	if !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("expected ErrSubscriptionRequired, got %v", err)
	}
	if client.callCount() != 0 {
		t.Fatalf("client must not be invoked while the gate is closed")
	}
	if o.State() != StateIdle {
		t.Fatalf("state must stay idle, got %v", o.State())
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	client := &fakeClient{resp: validOutput}
	o := NewOrchestrator(client, fixedGate(true), 0)

	_, err := o.Submit(context.Background(), TextInput(""))
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if client.callCount() != 0 {
		t.Fatalf("client must not be invoked for empty input")
	}
	if o.State() != StateIdle {
		t.Fatalf("state must stay idle, got %v", o.State())
	}
}

func TestSubmitSuccess(t *testing.T) {
	client := &fakeClient{resp: validOutput}
	o := NewOrchestrator(client, fixedGate(true), 0)

	var transitions []State
	o.Subscribe(func(s State) { transitions = append(transitions, s) })

	url := "https://example.com/listing/42"
	result, err := o.Submit(context.Background(), TextInput(url))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.EstimatedPrice != 250000 || result.RiskScore != 30 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if o.State() != StateSuccess {
		t.Fatalf("expected success state, got %v", o.State())
	}
	retained, ok := o.Result()
	if !ok || retained.FinalRecommendation != "Buy" {
		t.Fatalf("expected retained result, got %+v ok=%v", retained, ok)
	}
	if o.ErrorMessage() != "" {
		t.Fatalf("expected no error message, got %q", o.ErrorMessage())
	}

	in := client.lastInput()
	if in.Listing != url || !in.IsURL || in.File != nil {
		t.Fatalf("unexpected analyze input: %+v", in)
	}

	want := []State{StateLoading, StateSuccess}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, transitions)
		}
	}
}

func TestSubmitInferenceFailure(t *testing.T) {
	client := &fakeClient{err: &llm.InferenceError{Code: llm.CodeTransport, Err: errors.New("dial tcp: refused")}}
	o := NewOrchestrator(client, fixedGate(true), 0)

	_, err := o.Submit(context.Background(), TextInput("descripcion del piso"))
	var infErr *llm.InferenceError
	if !errors.As(err, &infErr) || infErr.Code != llm.CodeTransport {
		t.Fatalf("expected transport InferenceError, got %v", err)
	}

	if o.State() != StateError {
		t.Fatalf("expected error state, got %v", o.State())
	}
	if o.ErrorMessage() == "" {
		t.Fatalf("expected a user-facing error message")
	}
	if _, ok := o.Result(); ok {
		t.Fatalf("expected no retained result after failure")
	}
}

func TestSubmitUnparsableOutput(t *testing.T) {
	client := &fakeClient{resp: "Lo siento, no puedo analizar esto."}
	o := NewOrchestrator(client, fixedGate(true), 0)

	_, err := o.Submit(context.Background(), TextInput("texto de contrato"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if o.State() != StateError {
		t.Fatalf("expected error state, got %v", o.State())
	}
}

func TestSubmitBusy(t *testing.T) {
	client := &fakeClient{resp: validOutput, block: make(chan struct{})}
	o := NewOrchestrator(client, fixedGate(true), 0)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), TextInput("primer envio"))
		done <- err
	}()
	waitForState(t, o, StateLoading)

	_, err := o.Submit(context.Background(), TextInput("segundo envio"))
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if client.callCount() != 1 {
		t.Fatalf("expected a single client call, got %d", client.callCount())
	}

	close(client.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if o.State() != StateSuccess {
		t.Fatalf("expected success state, got %v", o.State())
	}
}

func TestResetClearsState(t *testing.T) {
	client := &fakeClient{resp: validOutput}
	o := NewOrchestrator(client, fixedGate(true), 0)

	if _, err := o.Submit(context.Background(), TextInput("piso centrico")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	o.Reset()

	if o.State() != StateIdle {
		t.Fatalf("expected idle after reset, got %v", o.State())
	}
	if _, ok := o.Result(); ok {
		t.Fatalf("expected result cleared by reset")
	}
	if o.ErrorMessage() != "" {
		t.Fatalf("expected error message cleared by reset")
	}
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	client := &fakeClient{resp: validOutput, block: make(chan struct{})}
	o := NewOrchestrator(client, fixedGate(true), 0)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), TextInput("envio pendiente"))
		done <- err
	}()
	waitForState(t, o, StateLoading)

	o.Reset()
	close(client.block)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if o.State() != StateIdle {
		t.Fatalf("expected idle after reset, got %v", o.State())
	}
	if _, ok := o.Result(); ok {
		t.Fatalf("stale result must not be retained")
	}
}

func TestSubmitTimeout(t *testing.T) {
	client := &fakeClient{resp: validOutput, block: make(chan struct{})}
	o := NewOrchestrator(client, fixedGate(true), 20*time.Millisecond)
	defer close(client.block)

	_, err := o.Submit(context.Background(), TextInput("envio lento"))
	var infErr *llm.InferenceError
	if !errors.As(err, &infErr) || infErr.Code != llm.CodeTimeout {
		t.Fatalf("expected timeout InferenceError, got %v", err)
	}
	if o.State() != StateError {
		t.Fatalf("expected error state, got %v", o.State())
	}
}

func waitForState(t *testing.T, o *Orchestrator, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if o.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state never reached %v, stuck at %v", want, o.State())
}
