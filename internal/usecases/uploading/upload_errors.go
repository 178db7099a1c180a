package uploading

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de uploads
var (
	// Erros de validação
	ErrUploadNotFound       = errors.New("upload not found")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrInvalidMapping       = errors.New("invalid column mapping")
	ErrMappingNotConfigured = errors.New("column mapping not configured")

	// Erros de análise
	ErrMissingField = errors.New("required field missing after mapping")
	ErrLoadFile     = errors.New("error loading sales table")

	// Erros de infraestrutura
	ErrSaveFile          = errors.New("error saving uploaded file")
	ErrDatabaseOperation = errors.New("database operation error")
)

// UploadError é um erro com contexto adicional para uploads
type UploadError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	UploadID int64  // ID do upload envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *UploadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *UploadError) Unwrap() error {
	return e.Err
}

// NewUploadError cria um novo UploadError
func NewUploadError(err error, code string, details string) *UploadError {
	return &UploadError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewUploadErrorWithID cria um novo UploadError com ID do upload
func NewUploadErrorWithID(err error, code string, uploadID int64, details string) *UploadError {
	return &UploadError{
		Err:      err,
		Code:     code,
		UploadID: uploadID,
		Details:  details,
	}
}
