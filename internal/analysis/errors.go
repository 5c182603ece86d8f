package analysis

import "errors"

var (
	// ErrBusy means a submission was rejected because one is in flight.
	ErrBusy = errors.New("analysis in flight")
	// ErrEmptyInput means neither text nor a file was provided.
	ErrEmptyInput = errors.New("empty input")
	// ErrSubscriptionRequired means the access gate precondition failed.
	ErrSubscriptionRequired = errors.New("subscription required")
	// ErrSuperseded means the request finished after a reset or a newer
	// submission; its outcome was discarded.
	ErrSuperseded = errors.New("analysis superseded")
)

// Error codes used in API responses and logs.
const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeEncoding     = "encoding_error"
	ErrorCodeInference    = "inference_error"
	ErrorCodeParse        = "analysis_invalid"
	ErrorCodeSubscription = "subscription_required"
	ErrorCodeBusy         = "analysis_in_flight"
	ErrorCodeInternal     = "internal_error"
)
