package llm

import (
	"context"
	"fmt"

	"brea-backend/internal/encode"
)

// Client abstracts inference providers for property analysis. The raw
// textual model output is returned as-is; decoding and validation belong
// to the caller.
type Client interface {
	AnalyzeProperty(ctx context.Context, input AnalyzeInput) (string, error)
}

// AnalyzeInput captures the inputs needed for a property analysis call.
// Either Listing or File is populated, never both.
type AnalyzeInput struct {
	Listing  string
	IsURL    bool
	File     *encode.Payload
	FileText string
}

// Inference error codes.
const (
	CodeMissingCredential = "missing_credential"
	CodeTransport         = "transport"
	CodeEmptyResponse     = "empty_response"
	CodeTimeout           = "timeout"
)

// InferenceError reports a failed inference call. Code is one of the
// constants above.
type InferenceError struct {
	Code string
	Err  error
}

func (e *InferenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("inference: %s", e.Code)
	}
	return fmt.Sprintf("inference: %s: %v", e.Code, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Placeholder is used when no credential is configured. It fails every
// call with a missing-credential error before any I/O.
type Placeholder struct{}

// AnalyzeProperty always fails with a missing-credential InferenceError.
func (Placeholder) AnalyzeProperty(ctx context.Context, input AnalyzeInput) (string, error) {
	_ = ctx
	_ = input
	return "", &InferenceError{Code: CodeMissingCredential}
}

var _ Client = Placeholder{}
