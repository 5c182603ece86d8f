package gemini

import (
	"time"

	"brea-backend/internal/llm"
	"brea-backend/internal/telemetry"
)

func logCall(model string, input llm.AnalyzeInput, elapsed time.Duration) {
	fields := map[string]any{
		"model":       model,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		"is_url":      input.IsURL,
		"has_file":    input.File != nil,
	}
	if input.File != nil {
		fields["media_type"] = input.File.MediaType
	}
	telemetry.Info("llm.response", fields)
}
