package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
)

const dirPermission = 0o755

// FileStore guarda os arquivos enviados
type FileStore interface {
	Save(ext string, r io.Reader) (string, error)
	Remove(path string) error
}

type localFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) FileStore {
	return &localFileStore{dir: dir}
}

// Save grava o conteúdo em <dir>/<nanoid><ext> e retorna o caminho. O diretório é criado
// na primeira gravação.
func (s *localFileStore) Save(ext string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return "", errors.Wrapf(err, "erro ao criar diretório %s", s.dir)
	}

	id, err := utils.GenerateFileID()
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar nome do arquivo")
	}

	path := filepath.Join(s.dir, id+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar arquivo")
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "erro ao gravar arquivo")
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": written,
	}).Debug("Arquivo gravado")

	return path, nil
}

// Remove apaga o arquivo; arquivo inexistente não é erro
func (s *localFileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "erro ao remover %s", path)
	}
	return nil
}
