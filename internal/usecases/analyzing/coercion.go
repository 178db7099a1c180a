package analyzing

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
)

// FailureAction define o que acontece com a linha quando a conversão de uma célula falha
type FailureAction int

const (
	// DropRow descarta a linha inteira
	DropRow FailureAction = iota
	// UseZero mantém a linha com o valor zero
	UseZero
)

// CoercionRule associa um campo canônico à sua regra de sobrevivência da linha
type CoercionRule struct {
	Field     string
	Required  bool
	OnFailure FailureAction
}

// CoercionPolicy é a tabela de regras aplicada por Normalize
var CoercionPolicy = []CoercionRule{
	{Field: domain.FieldDate, Required: true, OnFailure: DropRow},
	{Field: domain.FieldQuantity, Required: true, OnFailure: UseZero},
	{Field: domain.FieldPrice, Required: true, OnFailure: UseZero},
	{Field: domain.FieldCost, Required: false, OnFailure: UseZero},
}

// Record é uma linha já mapeada e convertida
type Record struct {
	Date       time.Time
	Product    string
	HasProduct bool
	Quantity   float64
	Price      float64
	Cost       float64
	Revenue    float64
	Profit     float64
	Dimensions map[string]string
}

// Dataset é o resultado normalizado de uma tabela e um mapeamento
type Dataset struct {
	Records       []Record
	HasCost       bool
	HasProduct    bool
	DynamicFields []string
	DroppedRows   int
}

// Normalize aplica o mapeamento e a política de conversão, calculando receita e lucro por linha.
// Falta de date, quantity ou price após o mapeamento retorna *MissingFieldError.
func Normalize(table *domain.Table, mapping domain.FieldMapping) (*Dataset, error) {
	mapped := ApplyMapping(table, mapping)

	for _, rule := range CoercionPolicy {
		if rule.Required && !mapped.HasColumn(rule.Field) {
			return nil, &MissingFieldError{Field: rule.Field}
		}
	}

	dateCol := mapped.Column(domain.FieldDate)
	quantityCol := mapped.Column(domain.FieldQuantity)
	priceCol := mapped.Column(domain.FieldPrice)
	costCol := mapped.Column(domain.FieldCost)
	productCol := mapped.Column(domain.FieldProduct)

	dataset := &Dataset{
		Records:       make([]Record, 0, mapped.RowCount()),
		HasCost:       costCol != nil,
		HasProduct:    productCol != nil,
		DynamicFields: make([]string, 0),
	}

	dimensionCols := make(map[string]*domain.Column)
	for _, field := range mapping.DynamicFields() {
		if col := mapped.Column(field); col != nil {
			dataset.DynamicFields = append(dataset.DynamicFields, field)
			dimensionCols[field] = col
		}
	}

	dateOrder := DateOrderOf(dateCol)

	for row := 0; row < mapped.RowCount(); row++ {
		date, ok := coerceDateInOrder(dateCol.Cells[row], dateOrder)
		if !ok {
			dataset.DroppedRows++
			continue
		}

		record := Record{
			Date:     date,
			Quantity: coerceOrZero(quantityCol.Cells[row]),
			Price:    coerceOrZero(priceCol.Cells[row]),
		}
		record.Revenue = record.Quantity * record.Price

		if costCol != nil {
			record.Cost = coerceOrZero(costCol.Cells[row])
			record.Profit = record.Revenue - record.Quantity*record.Cost
		}

		if productCol != nil {
			record.Product, record.HasProduct = GroupKey(productCol.Cells[row])
		}

		if len(dimensionCols) > 0 {
			record.Dimensions = make(map[string]string, len(dimensionCols))
			for field, col := range dimensionCols {
				if key, ok := GroupKey(col.Cells[row]); ok {
					record.Dimensions[field] = key
				}
			}
		}

		dataset.Records = append(dataset.Records, record)
	}

	return dataset, nil
}

// CoerceDate converte a célula isolada em data; números são tratados como data serial de planilha
func CoerceDate(cell domain.Cell) (time.Time, bool) {
	if cell.Kind == domain.CellString {
		return utils.ParseFlexibleDate(cell.Text)
	}
	return coerceDateInOrder(cell, utils.MonthFirst)
}

// DateOrderOf decide a leitura de datas ambíguas uma vez para a coluna toda
func DateOrderOf(col *domain.Column) utils.DateOrder {
	values := make([]string, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.Kind == domain.CellString {
			values = append(values, cell.Text)
		}
	}
	return utils.InferDateOrder(values)
}

func coerceDateInOrder(cell domain.Cell, order utils.DateOrder) (time.Time, bool) {
	switch cell.Kind {
	case domain.CellDate:
		return cell.Time, true
	case domain.CellNumber:
		return utils.SerialToDate(cell.Number)
	case domain.CellString:
		return utils.ParseDateInOrder(cell.Text, order)
	default:
		return time.Time{}, false
	}
}

// CoerceNumber converte a célula em número
func CoerceNumber(cell domain.Cell) (float64, bool) {
	switch cell.Kind {
	case domain.CellNumber:
		return cell.Number, true
	case domain.CellString:
		return utils.ParseNumber(cell.Text)
	default:
		return 0, false
	}
}

func coerceOrZero(cell domain.Cell) float64 {
	n, ok := CoerceNumber(cell)
	if !ok {
		return 0
	}
	return n
}

// GroupKey é o valor opaco usado para agrupar; células ausentes não formam grupo
func GroupKey(cell domain.Cell) (string, bool) {
	switch cell.Kind {
	case domain.CellString:
		if strings.TrimSpace(cell.Text) == "" {
			return "", false
		}
		return cell.Text, true
	case domain.CellNumber:
		return strconv.FormatFloat(cell.Number, 'f', -1, 64), true
	case domain.CellDate:
		return cell.Time.Format(time.DateOnly), true
	default:
		return "", false
	}
}
