package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitLinear(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		y       []float64
		want    LinearModel
		wantErr error
	}{
		{
			name: "Reta exata",
			x:    []float64{0, 1, 2, 3},
			y:    []float64{1, 3, 5, 7},
			want: LinearModel{Slope: 2, Intercept: 1},
		},
		{
			name: "Série constante",
			x:    []float64{0, 1, 2},
			y:    []float64{4, 4, 4},
			want: LinearModel{Slope: 0, Intercept: 4},
		},
		{
			name: "X constante usa a média",
			x:    []float64{1, 1},
			y:    []float64{2, 6},
			want: LinearModel{Slope: 0, Intercept: 4},
		},
		{
			name:    "Um único ponto",
			x:       []float64{0},
			y:       []float64{1},
			wantErr: ErrNotEnoughPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitLinear(tt.x, tt.y)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want.Slope, got.Slope, 1e-9)
			assert.InDelta(t, tt.want.Intercept, got.Intercept, 1e-9)
		})
	}
}

func TestFitLinear_DifferentLengths(t *testing.T) {
	_, err := FitLinear([]float64{1, 2}, []float64{1})

	assert.Error(t, err)
}

func TestLinearModel_Predict(t *testing.T) {
	model := LinearModel{Slope: 1.5, Intercept: -2}

	assert.Equal(t, 4.0, model.Predict(4))
}
