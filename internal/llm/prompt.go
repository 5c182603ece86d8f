package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analyst.txt
var analystPrompt string

// SystemInstruction returns the fixed analyst instruction sent with every
// request.
func SystemInstruction() string {
	return strings.TrimSpace(analystPrompt)
}

// IsURL reports whether the input looks like a listing URL rather than
// free-form contract text.
func IsURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "http")
}

// UserText renders the variant-specific request content. For the file
// variant the binary payload travels as a separate part; the returned text
// only frames it.
func UserText(in AnalyzeInput) string {
	if in.File != nil {
		return "Analiza el documento adjunto (contrato o ficha de la propiedad)."
	}
	if in.IsURL {
		return "Analiza esta URL de anuncio inmobiliario: " + in.Listing
	}
	return "Analiza este texto de contrato o descripción de propiedad: " + in.Listing
}
