package loading

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
	ErrLoad              = errors.New("erro ao carregar tabela")
)

// UnsupportedFormatError indica uma extensão que o carregador não reconhece
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("%s: arquivo sem extensão", ErrUnsupportedFormat.Error())
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedFormat.Error(), e.Extension)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// LoadError envolve a falha de leitura ou parsing do arquivo
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", ErrLoad.Error(), e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrLoad.Error(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is permite errors.Is(err, ErrLoad) além da causa original
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
