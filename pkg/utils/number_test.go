package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{input: "10", want: 10, wantOK: true},
		{input: " 2.5 ", want: 2.5, wantOK: true},
		{input: "-3", want: -3, wantOK: true},
		{input: "1e3", want: 1000, wantOK: true},
		{input: "", wantOK: false},
		{input: "abc", wantOK: false},
		{input: "NaN", wantOK: false},
		{input: "Inf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.31, RoundWithTwoDecimalPlace(0.1+0.2+0.005))
	assert.Equal(t, 20.0, RoundWithTwoDecimalPlace(19.999))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}
