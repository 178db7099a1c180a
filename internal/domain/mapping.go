package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Campos canônicos entendidos nativamente pelo pipeline de análise
const (
	FieldDate     = "date"
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldCost     = "cost"
)

var coreFields = map[string]struct{}{
	FieldDate:     {},
	FieldProduct:  {},
	FieldQuantity: {},
	FieldPrice:    {},
	FieldCost:     {},
}

var (
	ErrEmptyMapping       = errors.New("mapeamento vazio")
	ErrEmptyMappingField  = errors.New("campo de mapeamento sem nome")
	ErrEmptyMappingSource = errors.New("campo mapeado sem coluna de origem")
	ErrDuplicateSource    = errors.New("coluna de origem mapeada mais de uma vez")
)

// FieldMapping associa um campo canônico ou dinâmico à coluna de origem da planilha
type FieldMapping map[string]string

// IsCoreField indica se o campo pertence ao conjunto canônico fixo
func IsCoreField(field string) bool {
	_, ok := coreFields[field]
	return ok
}

// DynamicFields retorna os campos fora do conjunto canônico, em ordem alfabética
func (m FieldMapping) DynamicFields() []string {
	fields := make([]string, 0, len(m))
	for field := range m {
		if !IsCoreField(field) {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// Validate rejeita mapeamentos que o pipeline não consegue aplicar de forma determinística
func (m FieldMapping) Validate() error {
	if len(m) == 0 {
		return ErrEmptyMapping
	}

	sources := make(map[string]string, len(m))
	for _, field := range m.sortedFields() {
		source := m[field]
		if field == "" {
			return ErrEmptyMappingField
		}
		if source == "" {
			return fmt.Errorf("%w: %s", ErrEmptyMappingSource, field)
		}
		if previous, ok := sources[source]; ok {
			return fmt.Errorf("%w: %q usada por %q e %q", ErrDuplicateSource, source, previous, field)
		}
		sources[source] = field
	}

	return nil
}

func (m FieldMapping) sortedFields() []string {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
