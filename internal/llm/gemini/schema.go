package gemini

import "google.golang.org/genai"

// analysisSchema constrains the model to the exact property-analysis
// result shape. Every field is required; risk_score is bounded.
var analysisSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"precio_estimado": {
			Type:        "NUMBER",
			Description: "Precio estimado de mercado de la propiedad",
			Minimum:     float64Ptr(0),
		},
		"roi_anual": {
			Type:        "NUMBER",
			Description: "Retorno anual estimado, en porcentaje",
		},
		"risk_score": {
			Type:        "NUMBER",
			Description: "Puntaje de riesgo de la inversión",
			Minimum:     float64Ptr(0),
			Maximum:     float64Ptr(100),
		},
		"puntos_criticos": {
			Type:        "ARRAY",
			Description: "Hallazgos críticos y cláusulas abusivas detectadas, en orden de importancia",
			Items:       &genai.Schema{Type: "STRING"},
		},
		"recomendacion_final": {
			Type:        "STRING",
			Description: "Recomendación final de inversión",
		},
		"market_context": {
			Type:        "STRING",
			Description: "Contexto de mercado de la zona",
		},
		"financial_breakdown": {
			Type:        "OBJECT",
			Description: "Desglose financiero mensual estimado",
			Properties: map[string]*genai.Schema{
				"rent_potential": {Type: "NUMBER"},
				"taxes":          {Type: "NUMBER"},
				"maintenance":    {Type: "NUMBER"},
			},
			Required: []string{"rent_potential", "taxes", "maintenance"},
		},
	},
	Required: []string{
		"precio_estimado",
		"roi_anual",
		"risk_score",
		"puntos_criticos",
		"recomendacion_final",
		"market_context",
		"financial_breakdown",
	},
}

func float64Ptr(v float64) *float64 { return &v }
