// Package analyzing normaliza as vendas mapeadas e calcula o resumo descritivo
package analyzing

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
)

// TopProductsLimit é a quantidade de produtos no ranking do resumo
const TopProductsLimit = 5

const monthLayout = "2006-01"

// Analyze calcula totais, ranking de produtos, tendência mensal e quebras por campo dinâmico
func Analyze(table *domain.Table, mapping domain.FieldMapping) (*domain.AnalysisSummary, error) {
	dataset, err := Normalize(table, mapping)
	if err != nil {
		return nil, err
	}

	if dataset.DroppedRows > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped_rows": dataset.DroppedRows,
			"kept_rows":    len(dataset.Records),
		}).Debug("Linhas descartadas por data inválida")
	}

	return Summarize(dataset), nil
}

// Summarize agrega um dataset já normalizado
func Summarize(dataset *Dataset) *domain.AnalysisSummary {
	var totalSales, totalProfit float64
	for _, record := range dataset.Records {
		totalSales += record.Revenue
		totalProfit += record.Profit
	}

	summary := &domain.AnalysisSummary{
		TotalSalesValue:       utils.RoundWithTwoDecimalPlace(totalSales),
		TotalProfitValue:      utils.RoundWithTwoDecimalPlace(totalProfit),
		TotalTransactions:     len(dataset.Records),
		TopProducts:           topProducts(dataset),
		MonthlyTrends:         monthlyTrends(dataset),
		CategoricalBreakdowns: domain.NewBreakdowns(),
	}

	for _, field := range dataset.DynamicFields {
		summary.CategoricalBreakdowns.Add(field, GroupRevenue(dataset.Records, func(r Record) (string, bool) {
			key, ok := r.Dimensions[field]
			return key, ok
		}))
	}

	return summary
}

// GroupRevenue soma a receita por chave; os grupos saem ordenados pela chave
func GroupRevenue(records []Record, keyOf func(Record) (string, bool)) []domain.NamedValue {
	sums := make(map[string]float64)
	for _, record := range records {
		key, ok := keyOf(record)
		if !ok {
			continue
		}
		sums[key] += record.Revenue
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})

	groups := make([]domain.NamedValue, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, domain.NamedValue{Name: key, Value: sums[key]})
	}
	return groups
}

func topProducts(dataset *Dataset) domain.RankedValues {
	if !dataset.HasProduct {
		return domain.RankedValues{}
	}

	groups := GroupRevenue(dataset.Records, func(r Record) (string, bool) {
		return r.Product, r.HasProduct
	})

	// Estável: empates mantêm a ordem da agregação
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})

	if len(groups) > TopProductsLimit {
		groups = groups[:TopProductsLimit]
	}

	return domain.RankedValues(groups)
}

func monthlyTrends(dataset *Dataset) []domain.MonthlyTrend {
	sums := make(map[time.Time]float64)
	for _, record := range dataset.Records {
		month := time.Date(record.Date.Year(), record.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[month] += record.Revenue
	}

	months := make([]time.Time, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	trends := make([]domain.MonthlyTrend, 0, len(months))
	for _, month := range months {
		trends = append(trends, domain.MonthlyTrend{
			Date:       month.Format(monthLayout),
			TotalSales: utils.RoundWithTwoDecimalPlace(sums[month]),
		})
	}
	return trends
}

// lessKey é uma ordem total: chaves numéricas antes das demais, comparadas pelo valor
// e, quando iguais ("1" e "1.0"), pelo texto; as demais em ordem de texto
func lessKey(a, b string) bool {
	na, numA := utils.ParseNumber(a)
	nb, numB := utils.ParseNumber(b)

	switch {
	case numA && numB:
		if na != nb {
			return na < nb
		}
		return a < b
	case numA:
		return true
	case numB:
		return false
	default:
		return a < b
	}
}
