package subscription

// Plan describes a subscription offer shown by the pricing UI.
type Plan struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

// Plans is the fixed catalog of offers.
var Plans = []Plan{
	{
		Name:     "1 Mes",
		Price:    "3.99",
		Duration: "Mensual",
		Features: []string{"Análisis ilimitados", "Soporte prioritario", "Reportes descargables"},
	},
	{
		Name:     "3 Meses",
		Price:    "8.99",
		Duration: "Trimestral",
		Features: []string{"Ahorra 25%", "Análisis ilimitados", "Consultoría IA básica"},
		Popular:  true,
	},
	{
		Name:     "6 Meses",
		Price:    "14.00",
		Duration: "Semestral",
		Features: []string{"Mejor Valor", "Ahorra 40%", "Consultoría IA VIP"},
	},
}

// FindPlan returns the plan with the given name.
func FindPlan(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
