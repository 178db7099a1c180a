package analyzing

import (
	"errors"
	"fmt"
)

// ErrMissingField indica que o mapeamento não fornece um campo canônico obrigatório
var ErrMissingField = errors.New("campo obrigatório ausente após o mapeamento")

// MissingFieldError identifica qual campo obrigatório faltou
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField.Error(), e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
