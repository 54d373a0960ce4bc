package catalog

// Default returns the stock LOPIVI delegate curriculum. Organizations get
// this sequence unless a custom catalog is injected at wiring time; content
// bodies live in the content service and are referenced here by key.
func Default() *Catalog {
	return MustNew([]Module{
		{
			ID:          1,
			Title:       "Marco normativo y alcance",
			Description: "Qué exige la normativa de protección a la infancia y a quién aplica.",
			Content:     "content/lopivi/module-1",
		},
		{
			ID:          2,
			Title:       "La figura del delegado de protección",
			Description: "Funciones, responsabilidades y límites del delegado dentro de la entidad.",
			Content:     "content/lopivi/module-2",
		},
		{
			ID:          3,
			Title:       "Plan de protección de la entidad",
			Description: "Elaboración, aprobación y mantenimiento del plan de protección.",
			Content:     "content/lopivi/module-3",
		},
		{
			ID:          4,
			Title:       "Detección de situaciones de riesgo",
			Description: "Indicadores de riesgo y pautas de observación en la actividad diaria.",
			Content:     "content/lopivi/module-4",
		},
		{
			ID:          5,
			Title:       "Protocolos de actuación y comunicación",
			Description: "Canales de comunicación, actuación ante incidencias y deber de notificación.",
			Content:     "content/lopivi/module-5",
		},
		{
			ID:          6,
			Title:       "Buenas prácticas y código de conducta",
			Description: "Código de conducta del personal y buenas prácticas con menores.",
			Content:     "content/lopivi/module-6",
		},
	})
}
