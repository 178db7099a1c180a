// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strings"
	"time"
)

// CellKind identifica o tipo do valor guardado em uma célula
type CellKind int

const (
	CellMissing CellKind = iota
	CellString
	CellNumber
	CellDate
)

// Cell é um valor tipado de uma tabela carregada
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

func StringCell(s string) Cell {
	return Cell{Kind: CellString, Text: s}
}

func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// IsMissing considera ausente tanto a célula sem valor quanto o texto em branco
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing || (c.Kind == CellString && strings.TrimSpace(c.Text) == "")
}

// Column é uma coluna nomeada da tabela
type Column struct {
	Name  string
	Cells []Cell
}

// Table é uma sequência ordenada de colunas com o mesmo número de linhas
type Table struct {
	Columns []*Column
}

// RowCount retorna o número de linhas da tabela
func (t *Table) RowCount() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Column retorna a coluna com o nome informado, ou nil
func (t *Table) Column(name string) *Column {
	if t == nil {
		return nil
	}
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// HasColumn indica se a tabela possui a coluna
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// ColumnNames retorna os nomes das colunas na ordem da tabela
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}
