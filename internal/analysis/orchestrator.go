package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"brea-backend/internal/encode"
	"brea-backend/internal/llm"
	"brea-backend/internal/telemetry"
)

// State is the request lifecycle state of the orchestrator.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Gate is the external access-gate collaborator: a submission may only
// proceed while it reports true.
type Gate interface {
	Verified() bool
}

// The single user-facing failure message, matching the product copy.
const userFailureMessage = "El análisis falló. Por favor verifica que el archivo sea un PDF o imagen válida."

// Orchestrator sequences encoder → request builder → inference client →
// parser and owns the request lifecycle state machine. Exactly one
// analysis request is permitted in flight.
type Orchestrator struct {
	llm     llm.Client
	gate    Gate
	timeout time.Duration

	mu      sync.Mutex
	state   State
	result  *PropertyAnalysis
	userErr string
	seq     uint64
	subs    []func(State)
}

// NewOrchestrator constructs an idle orchestrator. timeout bounds each
// inference call; zero means no deadline.
func NewOrchestrator(client llm.Client, gate Gate, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		llm:     client,
		gate:    gate,
		timeout: timeout,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns the retained analysis of the last successful submission.
func (o *Orchestrator) Result() (PropertyAnalysis, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return PropertyAnalysis{}, false
	}
	return *o.result, true
}

// ErrorMessage returns the user-facing message of the last failure, empty
// outside the error state.
func (o *Orchestrator) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.userErr
}

// Subscribe registers a callback invoked on every state transition.
func (o *Orchestrator) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.subs = append(o.subs, fn)
	o.mu.Unlock()
}

// Submit runs the full pipeline for the given input. Preconditions are
// checked before any encoding or network work: the gate must be verified
// and the input non-empty; violations leave the state untouched. While a
// request is loading further submissions fail with ErrBusy.
func (o *Orchestrator) Submit(ctx context.Context, in Input) (PropertyAnalysis, error) {
	o.mu.Lock()
	if o.state == StateLoading {
		o.mu.Unlock()
		return PropertyAnalysis{}, ErrBusy
	}
	if o.gate != nil && !o.gate.Verified() {
		o.mu.Unlock()
		return PropertyAnalysis{}, ErrSubscriptionRequired
	}
	if in.Empty() {
		o.mu.Unlock()
		return PropertyAnalysis{}, ErrEmptyInput
	}
	o.seq++
	seq := o.seq
	o.state = StateLoading
	o.result = nil
	o.userErr = ""
	o.mu.Unlock()
	o.notify(StateLoading)

	result, err := o.run(ctx, in)
	if err != nil {
		if !o.fail(seq) {
			return PropertyAnalysis{}, ErrSuperseded
		}
		return PropertyAnalysis{}, err
	}
	if !o.complete(seq, result) {
		return PropertyAnalysis{}, ErrSuperseded
	}
	return result, nil
}

// Reset clears input, result and error and returns to idle. It is always
// available; an in-flight request keeps running but its outcome is
// discarded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.seq++
	o.state = StateIdle
	o.result = nil
	o.userErr = ""
	o.mu.Unlock()
	o.notify(StateIdle)
}

func (o *Orchestrator) run(ctx context.Context, in Input) (PropertyAnalysis, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	req, err := buildRequest(in)
	if err != nil {
		return PropertyAnalysis{}, err
	}

	raw, err := o.llm.AnalyzeProperty(ctx, req)
	if err != nil {
		return PropertyAnalysis{}, err
	}

	return Parse(raw)
}

func buildRequest(in Input) (llm.AnalyzeInput, error) {
	if in.Kind() != KindFile {
		return llm.AnalyzeInput{
			Listing: in.Text(),
			IsURL:   in.Kind() == KindURL,
		}, nil
	}

	r, mediaType := in.File()
	payload, err := encode.File(r, mediaType)
	if err != nil {
		return llm.AnalyzeInput{}, err
	}

	req := llm.AnalyzeInput{File: &payload}
	if mediaType == encode.MediaTypePDF {
		// Best effort; the inline bytes still reach the model when the
		// text layer is unreadable.
		if data, decErr := payload.Decode(); decErr == nil {
			if text, exErr := encode.PDFText(data); exErr == nil {
				req.FileText = strings.TrimSpace(text)
			}
		}
	}
	return req, nil
}

func (o *Orchestrator) fail(seq uint64) bool {
	o.mu.Lock()
	if seq != o.seq {
		o.mu.Unlock()
		telemetry.Info("analysis.stale", map[string]any{"seq": seq})
		return false
	}
	o.state = StateError
	o.result = nil
	o.userErr = userFailureMessage
	o.mu.Unlock()
	o.notify(StateError)
	return true
}

func (o *Orchestrator) complete(seq uint64, result PropertyAnalysis) bool {
	o.mu.Lock()
	if seq != o.seq {
		o.mu.Unlock()
		telemetry.Info("analysis.stale", map[string]any{"seq": seq})
		return false
	}
	o.state = StateSuccess
	o.result = &result
	o.userErr = ""
	o.mu.Unlock()
	o.notify(StateSuccess)
	return true
}

func (o *Orchestrator) notify(s State) {
	o.mu.Lock()
	subs := make([]func(State), len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}
