// Package forecasting projeta a receita diária com uma tendência linear
package forecasting

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
)

const (
	DefaultHorizonDays = 30

	// HighConfidenceMinDays é o mínimo de dias distintos de histórico para confiança alta
	HighConfidenceMinDays = 31

	minHistoryDays = 2
)

const (
	ReasonMissingField     = "Missing required data field: %s"
	ReasonNoValidRows      = "No valid data rows after cleaning"
	ReasonNotEnoughHistory = "Not enough historical data points for forecasting"
)

// DailyRevenue é a receita total de um dia calendário
type DailyRevenue struct {
	Date    time.Time
	Revenue float64
}

// Forecast prevê a receita dos próximos horizonDays dias. Nunca retorna erro:
// falhas de dados viram um resultado com Error preenchido.
func Forecast(table *domain.Table, mapping domain.FieldMapping, horizonDays int) *domain.ForecastResult {
	dataset, err := analyzing.Normalize(table, mapping)
	if err != nil {
		var missing *analyzing.MissingFieldError
		if errors.As(err, &missing) {
			logrus.WithField("field", missing.Field).Warn("Campo ausente para a previsão de vendas")
			return domain.NewForecastFailure(fmt.Sprintf(ReasonMissingField, missing.Field), domain.ConfidenceNone)
		}
		return domain.NewForecastFailure(err.Error(), domain.ConfidenceNone)
	}

	return ForecastDataset(dataset, horizonDays)
}

// ForecastDataset prevê a partir de um dataset já normalizado. Os valores previstos
// são limitados a zero e arredondados a duas casas, como os totais do resumo.
func ForecastDataset(dataset *analyzing.Dataset, horizonDays int) *domain.ForecastResult {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	if len(dataset.Records) == 0 {
		return domain.NewForecastFailure(ReasonNoValidRows, domain.ConfidenceNone)
	}

	daily := DailySeries(dataset.Records)
	if len(daily) < minHistoryDays {
		return domain.NewForecastFailure(ReasonNotEnoughHistory, domain.ConfidenceLow)
	}

	// O índice é a posição do dia na série observada, não a distância em dias corridos
	x := make([]float64, len(daily))
	y := make([]float64, len(daily))
	for i, day := range daily {
		x[i] = float64(i)
		y[i] = day.Revenue
	}

	model, err := FitLinear(x, y)
	if err != nil {
		return domain.NewForecastFailure(ReasonNotEnoughHistory, domain.ConfidenceLow)
	}

	lastDate := daily[len(daily)-1].Date
	points := make([]domain.ForecastPoint, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		predicted := model.Predict(float64(len(daily) + i))
		if predicted < 0 {
			predicted = 0
		}
		points = append(points, domain.ForecastPoint{
			Date:           lastDate.AddDate(0, 0, i+1).Format(time.DateOnly),
			PredictedSales: utils.RoundWithTwoDecimalPlace(predicted),
		})
	}

	confidence := domain.ConfidenceMedium
	if len(daily) >= HighConfidenceMinDays {
		confidence = domain.ConfidenceHigh
	}

	logrus.WithFields(logrus.Fields{
		"history_days": len(daily),
		"horizon_days": horizonDays,
		"slope":        model.Slope,
		"confidence":   confidence,
	}).Debug("Previsão de vendas calculada")

	return &domain.ForecastResult{
		Forecast:            points,
		ConfidenceIndicator: confidence,
	}
}

// DailySeries soma a receita por dia calendário em ordem crescente de data
func DailySeries(records []analyzing.Record) []DailyRevenue {
	sums := make(map[time.Time]float64)
	for _, record := range records {
		sums[utils.DayOf(record.Date)] += record.Revenue
	}

	series := make([]DailyRevenue, 0, len(sums))
	for day, revenue := range sums {
		series = append(series, DailyRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}
