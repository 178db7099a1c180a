// Package recommending gera orientações em texto a partir do resumo de vendas
package recommending

import (
	"fmt"
	"strings"

	"github.com/vfg2006/sales-pulse-api/internal/domain"
)

const (
	topProductsInAdvice = 3

	// MarginWarningThreshold é a margem de lucro abaixo da qual o alerta é emitido
	MarginWarningThreshold = 0.20
)

const (
	MarginWarning = "Your profit margin is below 20%. Consider reviewing product costs or increasing prices."
	TrendAdvice   = "Analyze monthly trends to identify seasonal peaks and plan marketing campaigns accordingly."
)

// Recommend lê o resumo de forma genérica, incluindo qualquer quebra dinâmica.
// A última linha é sempre a sugestão de análise de tendência.
func Recommend(summary *domain.AnalysisSummary) []string {
	recommendations := make([]string, 0)

	if summary != nil {
		if names := summary.TopProducts.Names(); len(names) > 0 {
			if len(names) > topProductsInAdvice {
				names = names[:topProductsInAdvice]
			}
			recommendations = append(recommendations,
				fmt.Sprintf("Stock up on top performing products: %s.", strings.Join(names, ", ")))
		}

		for _, breakdown := range summary.CategoricalBreakdowns.Items() {
			best, ok := bestEntry(breakdown.Entries)
			if !ok {
				continue
			}
			recommendations = append(recommendations, fmt.Sprintf(
				"Your best performing %s is '%s' with $%.2f in sales.",
				strings.ReplaceAll(breakdown.Field, "_", " "),
				best.Name,
				best.Value,
			))
		}

		if lowMargin(summary) {
			recommendations = append(recommendations, MarginWarning)
		}
	}

	return append(recommendations, TrendAdvice)
}

// bestEntry retorna o primeiro item com a maior receita
func bestEntry(entries []domain.NamedValue) (domain.NamedValue, bool) {
	if len(entries) == 0 {
		return domain.NamedValue{}, false
	}
	best := entries[0]
	for _, entry := range entries[1:] {
		if entry.Value > best.Value {
			best = entry
		}
	}
	return best, true
}

func lowMargin(summary *domain.AnalysisSummary) bool {
	if summary.TotalSalesValue <= 0 {
		return false
	}
	return summary.TotalProfitValue/summary.TotalSalesValue < MarginWarningThreshold
}
