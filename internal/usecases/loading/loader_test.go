package loading

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestLoadReader_CSV(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		columns  []string
		rowCount int
		validate func(t *testing.T, table *domain.Table)
	}{
		{
			name:     "Tabela simples com tipos inferidos",
			content:  "Date,Product,Qty,Price\n2024-01-01,A,2,10.5\n2024-01-02,B,1,20\n",
			columns:  []string{"Date", "Product", "Qty", "Price"},
			rowCount: 2,
			validate: func(t *testing.T, table *domain.Table) {
				qty := table.Column("Qty")
				require.NotNil(t, qty)
				assert.Equal(t, domain.CellNumber, qty.Cells[0].Kind)
				assert.Equal(t, 2.0, qty.Cells[0].Number)

				product := table.Column("Product")
				assert.Equal(t, domain.CellString, product.Cells[1].Kind)
				assert.Equal(t, "B", product.Cells[1].Text)
			},
		},
		{
			name:     "Remove BOM e apara cabeçalhos",
			content:  "\xEF\xBB\xBF Date , Qty \n2024-01-01,1\n",
			columns:  []string{"Date", "Qty"},
			rowCount: 1,
		},
		{
			name:     "Descarta linhas e colunas totalmente vazias",
			content:  "Date,Empty,Qty\n2024-01-01,,1\n,,\n2024-01-02, ,3\n",
			columns:  []string{"Date", "Qty"},
			rowCount: 2,
		},
		{
			name:     "Cabeçalhos repetidos recebem sufixo",
			content:  "a,a,a.1,a\n1,2,3,4\n",
			columns:  []string{"a", "a.1", "a.1.1", "a.2"},
			rowCount: 1,
		},
		{
			name:     "Cabeçalho vazio vira placeholder",
			content:  "Date,,Qty\n2024-01-01,x,1\n",
			columns:  []string{"Date", "Unnamed: 1", "Qty"},
			rowCount: 1,
		},
		{
			name:     "Linhas curtas são completadas com células ausentes",
			content:  "Date,Product,Qty\n2024-01-01,A\n2024-01-02,B,4\n",
			columns:  []string{"Date", "Product", "Qty"},
			rowCount: 2,
			validate: func(t *testing.T, table *domain.Table) {
				assert.True(t, table.Column("Qty").Cells[0].IsMissing())
			},
		},
		{
			name:     "Arquivo vazio gera tabela vazia",
			content:  "",
			columns:  []string{},
			rowCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := LoadReader(strings.NewReader(tt.content), ".csv")
			require.NoError(t, err)

			assert.Equal(t, tt.columns, table.ColumnNames())
			assert.Equal(t, tt.rowCount, table.RowCount())

			if tt.validate != nil {
				tt.validate(t, table)
			}
		})
	}
}

func TestLoadReader_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Data", "Produto", "Qtd", "Preço"},
		{45292, "A", 2, 10},
		{45293, "B", 1, 20},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := LoadReader(&buf, ".xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"Data", "Produto", "Qtd", "Preço"}, table.ColumnNames())
	assert.Equal(t, 2, table.RowCount())

	date := table.Column("Data").Cells[0]
	assert.Equal(t, domain.CellNumber, date.Kind)
	assert.Equal(t, 45292.0, date.Number)
}

func TestLoadReader_Errors(t *testing.T) {
	t.Run("Extensão não suportada", func(t *testing.T) {
		_, err := LoadReader(strings.NewReader("a,b"), ".xls")

		var unsupported *UnsupportedFormatError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, ".xls", unsupported.Extension)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("Planilha corrompida", func(t *testing.T) {
		_, err := LoadReader(strings.NewReader("isto não é um zip"), ".xlsx")

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.True(t, errors.Is(err, ErrLoad))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("Lê CSV do disco", func(t *testing.T) {
		path := filepath.Join(dir, "vendas.CSV")
		require.NoError(t, os.WriteFile(path, []byte("Date,Qty\n2024-01-01,1\n"), 0o644))

		table, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1, table.RowCount())
	})

	t.Run("Arquivo inexistente informa o caminho", func(t *testing.T) {
		path := filepath.Join(dir, "ausente.csv")

		_, err := Load(path)

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, path, loadErr.Path)
	})

	t.Run("Extensão desconhecida é recusada antes de abrir", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "vendas.txt"))
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})
}

func TestColumnNames(t *testing.T) {
	table, err := LoadReader(strings.NewReader("Date,,Qty\n2024-01-01,x,1\n"), ".csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Qty"}, ColumnNames(table))
}
