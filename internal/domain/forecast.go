package domain

// Confidence é o indicador qualitativo de confiabilidade da previsão
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	ConfidenceNone   Confidence = "None"
)

// ForecastPoint é a receita prevista para um dia (YYYY-MM-DD).
// PredictedSales nunca é negativo e sai arredondado a duas casas decimais.
type ForecastPoint struct {
	Date           string  `json:"date"`
	PredictedSales float64 `json:"predicted_sales"`
}

// ForecastResult é a previsão de vendas ou o motivo pelo qual ela não pôde ser feita
type ForecastResult struct {
	Error               string          `json:"error,omitempty"`
	Forecast            []ForecastPoint `json:"forecast"`
	ConfidenceIndicator Confidence      `json:"confidence_indicator"`
}

// Failed indica se a previsão terminou em erro
func (f *ForecastResult) Failed() bool {
	return f != nil && f.Error != ""
}

// NewForecastFailure monta um resultado de erro sem pontos de previsão
func NewForecastFailure(reason string, confidence Confidence) *ForecastResult {
	return &ForecastResult{
		Error:               reason,
		Forecast:            []ForecastPoint{},
		ConfidenceIndicator: confidence,
	}
}
