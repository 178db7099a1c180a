package forecasting

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/loading"
)

var salesMapping = domain.FieldMapping{
	domain.FieldDate:     "d",
	domain.FieldProduct:  "p",
	domain.FieldQuantity: "q",
	domain.FieldPrice:    "pr",
}

func tableFromCSV(t *testing.T, content string) *domain.Table {
	t.Helper()
	table, err := loading.LoadReader(strings.NewReader(content), domain.ExtensionCSV)
	require.NoError(t, err)
	return table
}

func TestForecast(t *testing.T) {
	tests := []struct {
		name           string
		csv            string
		mapping        domain.FieldMapping
		horizon        int
		wantError      string
		wantConfidence domain.Confidence
		wantPoints     []domain.ForecastPoint
	}{
		{
			name:           "Receita constante em dois dias",
			csv:            "d,p,q,pr\n2024-01-01,A,2,10.0\n2024-01-02,B,1,20.0\n",
			mapping:        salesMapping,
			horizon:        3,
			wantConfidence: domain.ConfidenceMedium,
			wantPoints: []domain.ForecastPoint{
				{Date: "2024-01-03", PredictedSales: 20},
				{Date: "2024-01-04", PredictedSales: 20},
				{Date: "2024-01-05", PredictedSales: 20},
			},
		},
		{
			name:           "Tendência de queda limitada a zero",
			csv:            "d,q,pr\n2024-01-01,1,10\n2024-01-02,1,5\n",
			mapping:        salesMapping,
			horizon:        2,
			wantConfidence: domain.ConfidenceMedium,
			wantPoints: []domain.ForecastPoint{
				{Date: "2024-01-03", PredictedSales: 0},
				{Date: "2024-01-04", PredictedSales: 0},
			},
		},
		{
			name:           "Datas com lacuna projetam a partir do último dia",
			csv:            "d,q,pr\n2024-01-01,1,10\n2024-01-10,1,10\n",
			mapping:        salesMapping,
			horizon:        1,
			wantConfidence: domain.ConfidenceMedium,
			wantPoints:     []domain.ForecastPoint{{Date: "2024-01-11", PredictedSales: 10}},
		},
		{
			name:           "Um único dia de histórico",
			csv:            "d,q,pr\n2024-01-01,1,10\n2024-01-01 18:00:00,2,10\n",
			mapping:        salesMapping,
			horizon:        3,
			wantError:      ReasonNotEnoughHistory,
			wantConfidence: domain.ConfidenceLow,
			wantPoints:     []domain.ForecastPoint{},
		},
		{
			name:           "Nenhuma data válida",
			csv:            "d,q,pr\nontem,1,10\n",
			mapping:        salesMapping,
			horizon:        3,
			wantError:      ReasonNoValidRows,
			wantConfidence: domain.ConfidenceNone,
			wantPoints:     []domain.ForecastPoint{},
		},
		{
			name:           "Campo obrigatório ausente",
			csv:            "d,q\n2024-01-01,1\n",
			mapping:        domain.FieldMapping{domain.FieldDate: "d", domain.FieldQuantity: "q"},
			horizon:        3,
			wantError:      fmt.Sprintf(ReasonMissingField, domain.FieldPrice),
			wantConfidence: domain.ConfidenceNone,
			wantPoints:     []domain.ForecastPoint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Forecast(tableFromCSV(t, tt.csv), tt.mapping, tt.horizon)

			assert.Equal(t, tt.wantError, result.Error)
			assert.Equal(t, tt.wantConfidence, result.ConfidenceIndicator)
			assert.Equal(t, tt.wantPoints, result.Forecast)
		})
	}
}

func TestForecastDataset_HighConfidenceWithLongHistory(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dataset := &analyzing.Dataset{}
	for i := 0; i < HighConfidenceMinDays; i++ {
		dataset.Records = append(dataset.Records, analyzing.Record{
			Date:    start.AddDate(0, 0, i),
			Revenue: float64(i + 1),
		})
	}

	result := ForecastDataset(dataset, 2)

	assert.False(t, result.Failed())
	assert.Equal(t, domain.ConfidenceHigh, result.ConfidenceIndicator)
	assert.Equal(t, []domain.ForecastPoint{
		{Date: "2024-02-01", PredictedSales: 32},
		{Date: "2024-02-02", PredictedSales: 33},
	}, result.Forecast)
}

func TestForecastDataset_DefaultHorizon(t *testing.T) {
	dataset := &analyzing.Dataset{Records: []analyzing.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 5},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Revenue: 5},
	}}

	result := ForecastDataset(dataset, 0)

	require.Len(t, result.Forecast, DefaultHorizonDays)
	assert.Equal(t, "2024-02-01", result.Forecast[DefaultHorizonDays-1].Date)
}

func TestDailySeries(t *testing.T) {
	records := []analyzing.Record{
		{Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), Revenue: 3},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 1},
		{Date: time.Date(2024, 1, 2, 18, 30, 0, 0, time.UTC), Revenue: 4},
	}

	series := DailySeries(records)

	assert.Equal(t, []DailyRevenue{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 1},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Revenue: 7},
	}, series)
}

func TestForecastDataset_RoundsPredictedSales(t *testing.T) {
	dataset := &analyzing.Dataset{Records: []analyzing.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 1},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Revenue: 2.333},
	}}

	result := ForecastDataset(dataset, 2)

	// Reta y = 1.333x + 1: 3.666 e 4.999 antes do arredondamento
	assert.Equal(t, []domain.ForecastPoint{
		{Date: "2024-01-03", PredictedSales: 3.67},
		{Date: "2024-01-04", PredictedSales: 5},
	}, result.Forecast)
}
