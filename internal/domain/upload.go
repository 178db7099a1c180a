package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Extensões aceitas no upload
const (
	ExtensionCSV  = ".csv"
	ExtensionXLSX = ".xlsx"
	ExtensionXLSM = ".xlsm"
)

// Upload representa um arquivo de vendas enviado e o mapeamento de colunas escolhido
type Upload struct {
	ID        int64        `json:"id"`
	Filename  string       `json:"filename"`
	FilePath  string       `json:"-"`
	Mapping   FieldMapping `json:"mapping"`
	CreatedAt time.Time    `json:"created_at"`
}

// HasMapping indica se o usuário já salvou um mapeamento para o upload
func (u *Upload) HasMapping() bool {
	return u != nil && len(u.Mapping) > 0
}

// FileExtension normaliza a extensão de um nome de arquivo
func FileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsSupportedExtension indica se o carregador de tabelas sabe ler a extensão
func IsSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtensionCSV, ExtensionXLSX, ExtensionXLSM:
		return true
	default:
		return false
	}
}
