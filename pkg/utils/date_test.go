package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{input: "2024-01-05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "2024-01-05T10:30:00", want: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC), wantOK: true},
		{input: "2024/01/05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "03/04/2024", want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "31/01/2024", want: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "Jan 5, 2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "2024-02", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "", wantOK: false},
		{input: "amanhã", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "esperado %s, obtido %s", tt.want, got)
			}
		})
	}
}

func TestSerialToDate(t *testing.T) {
	got, ok := SerialToDate(45292)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", got.Format(time.DateOnly))

	got, ok = SerialToDate(45292.5)
	require.True(t, ok)
	assert.Equal(t, 12, got.Hour())

	_, ok = SerialToDate(0)
	assert.False(t, ok)

	_, ok = SerialToDate(3000000)
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *date)

	date, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	_, err = ParseDate("15/01/2024")
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DayOf(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)))
}

func TestInferDateOrder(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   DateOrder
	}{
		{name: "Somente mês/dia", values: []string{"01/02/2024", "12/31/2024"}, want: MonthFirst},
		{name: "Dia acima de 12 na primeira posição", values: []string{"01/02/2024", "25/12/2024"}, want: DayFirst},
		{name: "Hífen dia/mês", values: []string{"31-01-2024"}, want: DayFirst},
		{name: "ISO e vazios não decidem", values: []string{"2024-01-31", "", "  "}, want: MonthFirst},
		{name: "Texto inválido é ignorado", values: []string{"ontem", "02/03/2024"}, want: MonthFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferDateOrder(tt.values))
		})
	}
}

func TestParseDateInOrder(t *testing.T) {
	got, ok := ParseDateInOrder("01/02/2024", DayFirst)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDateInOrder("01/02/2024", MonthFirst)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)

	// Sem recorrer à outra ordem
	_, ok = ParseDateInOrder("25/12/2024", MonthFirst)
	assert.False(t, ok)

	got, ok = ParseDateInOrder("2024-12-25", DayFirst)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), got)
}
