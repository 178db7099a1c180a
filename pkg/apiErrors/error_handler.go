package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidMapping      = "VAL_004" // Mapeamento de colunas inválido

	// Erros de upload (3000-3999)
	ErrUploadNotFound       = "UPL_001" // Upload não encontrado
	ErrUnsupportedFormat    = "UPL_002" // Extensão de arquivo não suportada
	ErrFileTooLarge         = "UPL_003" // Arquivo acima do limite
	ErrFileUnreadable       = "UPL_004" // Arquivo não pôde ser lido como tabela
	ErrMappingNotConfigured = "UPL_005" // Upload sem mapeamento salvo

	// Erros de análise (4000-4999)
	ErrMissingMappedField = "ANL_001" // Campo obrigatório ausente após o mapeamento
	ErrTooManyRequests    = "ANL_002" // Limite de requisições de análise atingido

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrFileStorage       = "SRV_003" // Erro ao gravar ou remover arquivo
	ErrNotFound          = "SRV_004" // Rota não encontrada
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrInvalidMapping:       http.StatusBadRequest,
	ErrUploadNotFound:       http.StatusNotFound,
	ErrUnsupportedFormat:    http.StatusBadRequest,
	ErrFileTooLarge:         http.StatusRequestEntityTooLarge,
	ErrFileUnreadable:       http.StatusUnprocessableEntity,
	ErrMappingNotConfigured: http.StatusBadRequest,
	ErrMissingMappedField:   http.StatusUnprocessableEntity,
	ErrTooManyRequests:      http.StatusTooManyRequests,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrDatabaseOperation:    http.StatusInternalServerError,
	ErrFileStorage:          http.StatusInternalServerError,
	ErrNotFound:             http.StatusNotFound,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
