package domain

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NamedValue é um par categoria/receita
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RankedValues é uma lista ordenada serializada como objeto JSON preservando a ordem
type RankedValues []NamedValue

// Names retorna os nomes na ordem do ranking
func (r RankedValues) Names() []string {
	names := make([]string, 0, len(r))
	for _, v := range r {
		names = append(names, v.Name)
	}
	return names
}

func (r RankedValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MonthlyTrend é a receita de um mês calendário no formato YYYY-MM
type MonthlyTrend struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"total_sales"`
}

// Breakdown é a receita agrupada pelos valores de um campo dinâmico
type Breakdown struct {
	Field   string
	Entries []NamedValue
}

// Breakdowns guarda as quebras por campo dinâmico na ordem de inserção
type Breakdowns struct {
	items []Breakdown
}

func NewBreakdowns() *Breakdowns {
	return &Breakdowns{items: make([]Breakdown, 0)}
}

// Add inclui a quebra de um campo, substituindo uma anterior com o mesmo nome
func (b *Breakdowns) Add(field string, entries []NamedValue) {
	for i := range b.items {
		if b.items[i].Field == field {
			b.items[i].Entries = entries
			return
		}
	}
	b.items = append(b.items, Breakdown{Field: field, Entries: entries})
}

// Get retorna as entradas da quebra do campo informado
func (b *Breakdowns) Get(field string) ([]NamedValue, bool) {
	if b == nil {
		return nil, false
	}
	for _, item := range b.items {
		if item.Field == field {
			return item.Entries, true
		}
	}
	return nil, false
}

// Items retorna as quebras na ordem de inserção
func (b *Breakdowns) Items() []Breakdown {
	if b == nil {
		return nil
	}
	return b.items
}

func (b *Breakdowns) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

func (b *Breakdowns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range b.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Field)
		if err != nil {
			return nil, err
		}
		entries := item.Entries
		if entries == nil {
			entries = []NamedValue{}
		}
		value, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalysisSummary é o resumo descritivo das vendas de um upload
type AnalysisSummary struct {
	TotalSalesValue       float64        `json:"total_sales_value"`
	TotalProfitValue      float64        `json:"total_profit_value"`
	TotalTransactions     int            `json:"total_transactions"`
	TopProducts           RankedValues   `json:"top_products"`
	MonthlyTrends         []MonthlyTrend `json:"monthly_trends"`
	CategoricalBreakdowns *Breakdowns    `json:"categorical_breakdowns"`
}

// AnalyticsResponse combina resumo, previsão e recomendações de um upload
type AnalyticsResponse struct {
	Summary         *AnalysisSummary `json:"summary"`
	Forecast        *ForecastResult  `json:"forecast"`
	Recommendations []string         `json:"recommendations"`
}
