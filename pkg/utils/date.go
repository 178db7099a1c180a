package utils

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Formatos sem ambiguidade entre dia e mês, na ordem de tentativa
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006.01.02",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01",
}

// DateOrder define como datas com barra ou hífen são lidas
type DateOrder int

const (
	// MonthFirst lê 01/02/2006 como 2 de janeiro
	MonthFirst DateOrder = iota
	// DayFirst lê 01/02/2006 como 1º de fevereiro
	DayFirst
)

var orderedLayouts = map[DateOrder][]string{
	MonthFirst: {"01/02/2006", "01/02/2006 15:04:05", "1/2/2006", "1/2/2006 15:04:05", "01-02-2006"},
	DayFirst:   {"02/01/2006", "02/01/2006 15:04:05", "2/1/2006", "2/1/2006 15:04:05", "02-01-2006"},
}

// Limites de números seriais de data do Excel (1900-01-01 a 9999-12-31)
const (
	minSerialDate = 1
	maxSerialDate = 2958465
)

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseFlexibleDate lê o valor isolado: mês/dia primeiro, dia/mês quando mês/dia não é válido
func ParseFlexibleDate(s string) (time.Time, bool) {
	if t, ok := ParseDateInOrder(s, MonthFirst); ok {
		return t, true
	}
	return ParseDateInOrder(s, DayFirst)
}

// ParseDateInOrder aceita os formatos sem ambiguidade e apenas a ordem informada para os ambíguos
func ParseDateInOrder(s string, order DateOrder) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseWithLayouts(s, dateLayouts); ok {
		return t, true
	}

	return parseWithLayouts(s, orderedLayouts[order])
}

// InferDateOrder escolhe uma única ordem para uma coluna inteira. Mês/dia é o padrão;
// dia/mês só quando algum valor não é válido como mês/dia mas é como dia/mês.
func InferDateOrder(values []string) DateOrder {
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := parseWithLayouts(value, dateLayouts); ok {
			continue
		}
		if _, ok := parseWithLayouts(value, orderedLayouts[MonthFirst]); ok {
			continue
		}
		if _, ok := parseWithLayouts(value, orderedLayouts[DayFirst]); ok {
			return DayFirst
		}
	}
	return MonthFirst
}

func parseWithLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SerialToDate converte um número serial de data de planilha
func SerialToDate(serial float64) (time.Time, bool) {
	if serial < minSerialDate || serial > maxSerialDate {
		return time.Time{}, false
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// DayOf trunca o horário mantendo o dia calendário
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
