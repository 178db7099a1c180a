// Package loading lê arquivos de vendas (CSV ou planilha) para uma tabela em memória
package loading

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// PlaceholderPrefix identifica colunas sem cabeçalho
const PlaceholderPrefix = "Unnamed:"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load carrega e limpa a tabela do arquivo; a extensão decide o formato
func Load(path string) (*domain.Table, error) {
	ext := domain.FileExtension(path)
	if !domain.IsSupportedExtension(ext) {
		return nil, &UnsupportedFormatError{Extension: ext}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.Wrap(err, "erro ao abrir arquivo")}
	}
	defer f.Close()

	table, err := LoadReader(f, ext)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"columns": len(table.Columns),
		"rows":    table.RowCount(),
	}).Debug("Tabela carregada")

	return table, nil
}

// LoadReader carrega a tabela a partir de um stream com a extensão declarada
func LoadReader(r io.Reader, ext string) (*domain.Table, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(ext) {
	case domain.ExtensionCSV:
		records, err = readCSV(r)
	case domain.ExtensionXLSX, domain.ExtensionXLSM:
		records, err = readSpreadsheet(r)
	default:
		return nil, &UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	return buildTable(records), nil
}

// ColumnNames lista as colunas oferecidas para mapeamento, sem as de cabeçalho sintético
func ColumnNames(table *domain.Table) []string {
	names := make([]string, 0, len(table.Columns))
	for _, name := range table.ColumnNames() {
		if strings.HasPrefix(strings.TrimSpace(name), PlaceholderPrefix) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler csv")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar csv")
	}

	return records, nil
}

func readSpreadsheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("planilha sem abas")
	}

	// Valores brutos: datas chegam como número serial e são convertidas na análise
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %s", sheets[0])
	}

	return rows, nil
}

// buildTable monta a tabela e aplica a limpeza: linhas vazias, colunas vazias, nomes aparados
func buildTable(records [][]string) *domain.Table {
	table := &domain.Table{Columns: []*domain.Column{}}
	if len(records) == 0 {
		return table
	}

	width := 0
	for _, record := range records {
		if len(record) > width {
			width = len(record)
		}
	}

	header := records[0]
	body := records[1:]

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("%s %d", PlaceholderPrefix, i)
		}

		cells := make([]domain.Cell, 0, len(body))
		for _, record := range body {
			raw := ""
			if i < len(record) {
				raw = record[i]
			}
			cells = append(cells, parseCell(raw))
		}

		table.Columns = append(table.Columns, &domain.Column{Name: name, Cells: cells})
	}

	dropEmptyRows(table)
	dropEmptyColumns(table)
	trimNames(table)

	return table
}

func parseCell(raw string) domain.Cell {
	if strings.TrimSpace(raw) == "" {
		return domain.MissingCell()
	}
	if n, ok := utils.ParseNumber(raw); ok {
		return domain.NumberCell(n)
	}
	return domain.StringCell(raw)
}

func dropEmptyRows(table *domain.Table) {
	keep := make([]int, 0, table.RowCount())
	for row := 0; row < table.RowCount(); row++ {
		for _, col := range table.Columns {
			if !col.Cells[row].IsMissing() {
				keep = append(keep, row)
				break
			}
		}
	}

	if len(keep) == table.RowCount() {
		return
	}

	for _, col := range table.Columns {
		cells := make([]domain.Cell, 0, len(keep))
		for _, row := range keep {
			cells = append(cells, col.Cells[row])
		}
		col.Cells = cells
	}
}

func dropEmptyColumns(table *domain.Table) {
	columns := make([]*domain.Column, 0, len(table.Columns))
	for _, col := range table.Columns {
		for _, cell := range col.Cells {
			if !cell.IsMissing() {
				columns = append(columns, col)
				break
			}
		}
	}
	table.Columns = columns
}

// trimNames apara os cabeçalhos e desambigua repetidos com sufixo .1, .2, ...
func trimNames(table *domain.Table) {
	used := make(map[string]bool, len(table.Columns))
	suffix := make(map[string]int)
	for _, col := range table.Columns {
		base := strings.TrimSpace(col.Name)
		name := base
		for used[name] {
			suffix[base]++
			name = base + "." + strconv.Itoa(suffix[base])
		}
		used[name] = true
		col.Name = name
	}
}
