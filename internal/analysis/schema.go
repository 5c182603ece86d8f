package analysis

// JSON contract with the inference engine:
// {
//   "precio_estimado": number (>= 0),
//   "roi_anual": number (percentage, may be negative),
//   "risk_score": number (0-100),
//   "puntos_criticos": ["string"],
//   "recomendacion_final": "string",
//   "market_context": "string",
//   "financial_breakdown": {
//     "rent_potential": number,
//     "taxes": number,
//     "maintenance": number
//   }
// }
// Every field is required; absence is a validation failure, never a
// default-filled record.
type PropertyAnalysis struct {
	EstimatedPrice      float64            `json:"precio_estimado"`
	AnnualROI           float64            `json:"roi_anual"`
	RiskScore           float64            `json:"risk_score"`
	CriticalFindings    []string           `json:"puntos_criticos"`
	FinalRecommendation string             `json:"recomendacion_final"`
	MarketContext       string             `json:"market_context"`
	FinancialBreakdown  FinancialBreakdown `json:"financial_breakdown"`
}

// FinancialBreakdown holds the monthly estimates of the analysis.
type FinancialBreakdown struct {
	RentPotential float64 `json:"rent_potential"`
	Taxes         float64 `json:"taxes"`
	Maintenance   float64 `json:"maintenance"`
}

// wireAnalysis mirrors PropertyAnalysis with pointer fields so a missing
// required key is distinguishable from a zero value.
type wireAnalysis struct {
	EstimatedPrice      *float64       `json:"precio_estimado"`
	AnnualROI           *float64       `json:"roi_anual"`
	RiskScore           *float64       `json:"risk_score"`
	CriticalFindings    *[]string      `json:"puntos_criticos"`
	FinalRecommendation *string        `json:"recomendacion_final"`
	MarketContext       *string        `json:"market_context"`
	FinancialBreakdown  *wireBreakdown `json:"financial_breakdown"`
}

type wireBreakdown struct {
	RentPotential *float64 `json:"rent_potential"`
	Taxes         *float64 `json:"taxes"`
	Maintenance   *float64 `json:"maintenance"`
}

func (w *wireAnalysis) validate() error {
	missing := func(field string) error {
		return &fieldError{field: field, issue: "required"}
	}
	switch {
	case w.EstimatedPrice == nil:
		return missing("precio_estimado")
	case w.AnnualROI == nil:
		return missing("roi_anual")
	case w.RiskScore == nil:
		return missing("risk_score")
	case w.CriticalFindings == nil:
		return missing("puntos_criticos")
	case w.FinalRecommendation == nil:
		return missing("recomendacion_final")
	case w.MarketContext == nil:
		return missing("market_context")
	case w.FinancialBreakdown == nil:
		return missing("financial_breakdown")
	case w.FinancialBreakdown.RentPotential == nil:
		return missing("financial_breakdown.rent_potential")
	case w.FinancialBreakdown.Taxes == nil:
		return missing("financial_breakdown.taxes")
	case w.FinancialBreakdown.Maintenance == nil:
		return missing("financial_breakdown.maintenance")
	}

	if *w.EstimatedPrice < 0 {
		return &fieldError{field: "precio_estimado", issue: "must be non-negative"}
	}
	// An out-of-range risk score is a data-quality failure; clamping it
	// would hide the bug.
	if *w.RiskScore < 0 || *w.RiskScore > 100 {
		return &fieldError{field: "risk_score", issue: "must be between 0 and 100"}
	}
	if *w.FinalRecommendation == "" {
		return &fieldError{field: "recomendacion_final", issue: "must be non-empty"}
	}
	return nil
}

func (w *wireAnalysis) result() PropertyAnalysis {
	findings := *w.CriticalFindings
	if findings == nil {
		findings = []string{}
	}
	return PropertyAnalysis{
		EstimatedPrice:      *w.EstimatedPrice,
		AnnualROI:           *w.AnnualROI,
		RiskScore:           *w.RiskScore,
		CriticalFindings:    findings,
		FinalRecommendation: *w.FinalRecommendation,
		MarketContext:       *w.MarketContext,
		FinancialBreakdown: FinancialBreakdown{
			RentPotential: *w.FinancialBreakdown.RentPotential,
			Taxes:         *w.FinancialBreakdown.Taxes,
			Maintenance:   *w.FinancialBreakdown.Maintenance,
		},
	}
}

type fieldError struct {
	field string
	issue string
}

func (e *fieldError) Error() string {
	return e.field + " " + e.issue
}
