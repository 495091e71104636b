package summarizer

import "context"

// Input es el contenido del reporte que se manda a resumir.
type Input struct {
	Name          string
	TargetMothers []string
	Results       []string
}

// Output es la respuesta del colaborador externo. Narrative es lo que se
// cachea en el reporte; CategorizedFindings queda disponible para la UI.
type Output struct {
	CategorizedFindings map[string][]string
	Narrative           string
}

// Summarizer resume un reporte de performance reproductiva o devuelve error.
type Summarizer interface {
	Summarize(ctx context.Context, in Input) (Output, error)
}
