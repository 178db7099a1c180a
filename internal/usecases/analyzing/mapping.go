package analyzing

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
)

// ApplyMapping renomeia as colunas de origem para os nomes canônicos do mapeamento.
// Colunas não mapeadas continuam na tabela; entradas cuja origem não existe são ignoradas.
// A tabela recebida não é alterada.
func ApplyMapping(table *domain.Table, mapping domain.FieldMapping) *domain.Table {
	fields := make([]string, 0, len(mapping))
	for field := range mapping {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	renames := make(map[string]string, len(mapping))
	for _, field := range fields {
		source := mapping[field]
		if !table.HasColumn(source) {
			logrus.WithFields(logrus.Fields{
				"field":  field,
				"source": source,
			}).Debug("Coluna de origem do mapeamento não encontrada")
			continue
		}
		if previous, ok := renames[source]; ok {
			logrus.WithFields(logrus.Fields{
				"source":  source,
				"field":   field,
				"kept_as": previous,
			}).Warn("Coluna de origem mapeada para mais de um campo")
			continue
		}
		renames[source] = field
	}

	targets := make(map[string]struct{}, len(renames))
	for _, field := range renames {
		targets[field] = struct{}{}
	}

	mapped := &domain.Table{Columns: make([]*domain.Column, 0, len(table.Columns))}
	for _, col := range table.Columns {
		if field, ok := renames[col.Name]; ok {
			mapped.Columns = append(mapped.Columns, &domain.Column{Name: field, Cells: col.Cells})
			continue
		}
		// O campo mapeado prevalece sobre uma coluna original com o mesmo nome
		if _, shadowed := targets[col.Name]; shadowed {
			continue
		}
		mapped.Columns = append(mapped.Columns, col)
	}

	return mapped
}
