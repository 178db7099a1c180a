package forecasting

import (
	"errors"
)

var ErrNotEnoughPoints = errors.New("são necessários ao menos dois pontos para ajustar a reta")

// LinearModel é uma reta ajustada por mínimos quadrados
type LinearModel struct {
	Slope     float64
	Intercept float64
}

// FitLinear ajusta y = Slope*x + Intercept por mínimos quadrados ordinários
func FitLinear(x, y []float64) (LinearModel, error) {
	if len(x) != len(y) {
		return LinearModel{}, errors.New("séries x e y com tamanhos diferentes")
	}
	if len(x) < 2 {
		return LinearModel{}, ErrNotEnoughPoints
	}

	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	// x constante: a melhor reta é a horizontal na média
	if sxx == 0 {
		return LinearModel{Slope: 0, Intercept: meanY}, nil
	}

	slope := sxy / sxx
	return LinearModel{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}, nil
}

func (m LinearModel) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}
