// Package uploading orquestra o ciclo de um arquivo de vendas: envio, mapeamento e análise
package uploading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/infrastructure/repository"
	"github.com/vfg2006/sales-pulse-api/infrastructure/storage"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/loading"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/recommending"
	"github.com/vfg2006/sales-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pulse-api/pkg/metrics"
)

type Uploader interface {
	SaveUpload(ctx context.Context, filename string, content io.Reader) (*domain.Upload, error)
	ListUploads(ctx context.Context, since *time.Time) ([]*domain.Upload, error)
	GetUpload(ctx context.Context, id int64) (*domain.Upload, error)
	GetColumns(ctx context.Context, id int64) ([]string, error)
	SaveMapping(ctx context.Context, id int64, mapping domain.FieldMapping) (*domain.Upload, error)
	GetAnalytics(ctx context.Context, id int64) (*domain.AnalyticsResponse, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// TableLoader lê o arquivo salvo de um upload
type TableLoader func(path string) (*domain.Table, error)

type Service struct {
	uploadRepository repository.UploadRepository
	fileStore        storage.FileStore
	loadTable        TableLoader
	horizonDays      int
}

func NewService(
	uploadRepository repository.UploadRepository,
	fileStore storage.FileStore,
	horizonDays int,
) *Service {
	return &Service{
		uploadRepository: uploadRepository,
		fileStore:        fileStore,
		loadTable:        loading.Load,
		horizonDays:      horizonDays,
	}
}

func (s *Service) SaveUpload(ctx context.Context, filename string, content io.Reader) (*domain.Upload, error) {
	ext := domain.FileExtension(filename)
	if !domain.IsSupportedExtension(ext) {
		return nil, NewUploadError(ErrUnsupportedFormat, apiErrors.ErrUnsupportedFormat,
			fmt.Sprintf("extensão %q não suportada", ext))
	}

	path, err := s.fileStore.Save(ext, content)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gravar arquivo enviado")
		return nil, NewUploadError(ErrSaveFile, apiErrors.ErrFileStorage, "Falha ao gravar o arquivo")
	}

	upload, err := s.uploadRepository.Create(ctx, &domain.Upload{
		Filename: filename,
		FilePath: path,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao registrar upload")
		if rmErr := s.fileStore.Remove(path); rmErr != nil {
			logrus.WithError(rmErr).Warn("Arquivo órfão não pôde ser removido")
		}
		return nil, NewUploadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao registrar o upload")
	}

	logrus.WithFields(logrus.Fields{
		"upload_id": upload.ID,
		"filename":  filename,
	}).Info("Upload registrado")

	return upload, nil
}

func (s *Service) ListUploads(ctx context.Context, since *time.Time) ([]*domain.Upload, error) {
	uploads, err := s.uploadRepository.List(ctx, since)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar uploads")
		return nil, NewUploadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar uploads")
	}
	return uploads, nil
}

func (s *Service) GetUpload(ctx context.Context, id int64) (*domain.Upload, error) {
	upload, err := s.uploadRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			return nil, NewUploadErrorWithID(ErrUploadNotFound, apiErrors.ErrUploadNotFound, id, "")
		}
		logrus.WithError(err).WithField("upload_id", id).Error("Erro ao buscar upload")
		return nil, NewUploadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar upload")
	}
	return upload, nil
}

// GetColumns lista as colunas do arquivo disponíveis para mapeamento
func (s *Service) GetColumns(ctx context.Context, id int64) ([]string, error) {
	upload, err := s.GetUpload(ctx, id)
	if err != nil {
		return nil, err
	}

	table, err := s.load(upload)
	if err != nil {
		return nil, err
	}

	return loading.ColumnNames(table), nil
}

func (s *Service) SaveMapping(ctx context.Context, id int64, mapping domain.FieldMapping) (*domain.Upload, error) {
	if err := mapping.Validate(); err != nil {
		return nil, NewUploadErrorWithID(ErrInvalidMapping, apiErrors.ErrInvalidMapping, id, err.Error())
	}

	if err := s.uploadRepository.UpdateMapping(ctx, id, mapping); err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			return nil, NewUploadErrorWithID(ErrUploadNotFound, apiErrors.ErrUploadNotFound, id, "")
		}
		logrus.WithError(err).WithField("upload_id", id).Error("Erro ao salvar mapeamento")
		return nil, NewUploadErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao salvar mapeamento")
	}

	return s.GetUpload(ctx, id)
}

// GetAnalytics executa o pipeline completo: resumo, previsão e recomendações.
// Falha da previsão não interrompe o resumo.
func (s *Service) GetAnalytics(ctx context.Context, id int64) (*domain.AnalyticsResponse, error) {
	upload, err := s.GetUpload(ctx, id)
	if err != nil {
		return nil, err
	}

	if !upload.HasMapping() {
		return nil, NewUploadErrorWithID(ErrMappingNotConfigured, apiErrors.ErrMappingNotConfigured, id,
			"Salve o mapeamento de colunas antes de solicitar a análise")
	}

	table, err := s.load(upload)
	if err != nil {
		return nil, err
	}

	dataset, err := analyzing.Normalize(table, upload.Mapping)
	if err != nil {
		var missing *analyzing.MissingFieldError
		if errors.As(err, &missing) {
			return nil, NewUploadErrorWithID(ErrMissingField, apiErrors.ErrMissingMappedField, id, missing.Field)
		}
		return nil, NewUploadErrorWithID(ErrLoadFile, apiErrors.ErrFileUnreadable, id, err.Error())
	}

	summary := analyzing.Summarize(dataset)
	forecast := s.forecast(id, dataset)
	metrics.ObserveForecast(forecast)

	return &domain.AnalyticsResponse{
		Summary:         summary,
		Forecast:        forecast,
		Recommendations: recommending.Recommend(summary),
	}, nil
}

// PurgeOlderThan remove registros e arquivos criados antes do corte
func (s *Service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	removed, err := s.uploadRepository.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, NewUploadError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	for _, upload := range removed {
		if err := s.fileStore.Remove(upload.FilePath); err != nil {
			logrus.WithError(err).WithField("upload_id", upload.ID).Warn("Erro ao remover arquivo expirado")
		}
	}

	return len(removed), nil
}

func (s *Service) load(upload *domain.Upload) (*domain.Table, error) {
	table, err := s.loadTable(upload.FilePath)
	if err != nil {
		logrus.WithError(err).WithField("upload_id", upload.ID).Warn("Erro ao carregar tabela do upload")

		var unsupported *loading.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return nil, NewUploadErrorWithID(ErrUnsupportedFormat, apiErrors.ErrUnsupportedFormat, upload.ID, unsupported.Extension)
		}
		return nil, NewUploadErrorWithID(ErrLoadFile, apiErrors.ErrFileUnreadable, upload.ID, "Não foi possível ler o arquivo como tabela")
	}
	return table, nil
}

// forecast isola a previsão: um panic vira resultado de erro e o resumo segue
func (s *Service) forecast(id int64, dataset *analyzing.Dataset) (result *domain.ForecastResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"upload_id": id,
				"panic":     r,
			}).Error("Erro inesperado na previsão de vendas")
			result = domain.NewForecastFailure(fmt.Sprintf("%v", r), domain.ConfidenceNone)
		}
	}()

	return forecasting.ForecastDataset(dataset, s.horizonDays)
}
