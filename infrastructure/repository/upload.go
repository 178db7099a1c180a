package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	uploadsTable   = "uploads"
	uploadsColumns = "id, filename, file_path, mapping, created_at"
)

// ErrUploadNotFound indica que nenhum upload corresponde ao ID
var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (*domain.Upload, error)
	GetByID(ctx context.Context, id int64) (*domain.Upload, error)
	List(ctx context.Context, since *time.Time) ([]*domain.Upload, error)
	UpdateMapping(ctx context.Context, id int64, mapping domain.FieldMapping) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Upload, error)
}

type uploadRepository struct {
	conn postgres.Queryer
}

func NewUploadRepository(conn postgres.Queryer) UploadRepository {
	return &uploadRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *uploadRepository) Create(ctx context.Context, upload *domain.Upload) (*domain.Upload, error) {
	sqlQuery, args, err := buildInsertUpload(upload)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	created, err := deserializeUpload(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	return created, nil
}

func (r *uploadRepository) GetByID(ctx context.Context, id int64) (*domain.Upload, error) {
	sqlQuery, args, err := squirrel.
		Select(uploadsColumns).
		From(uploadsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	upload, err := deserializeUpload(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUploadNotFound
		}
		return nil, wrapDatabaseError(err)
	}

	return upload, nil
}

func (r *uploadRepository) List(ctx context.Context, since *time.Time) ([]*domain.Upload, error) {
	sqlQuery, args, err := buildListUploads(since)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryUploads(ctx, sqlQuery, args...)
}

func (r *uploadRepository) UpdateMapping(ctx context.Context, id int64, mapping domain.FieldMapping) error {
	sqlQuery, args, err := buildUpdateMapping(id, mapping)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapDatabaseError(err)
	}

	// Verifica se algum registro foi afetado
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUploadNotFound
	}

	return nil
}

// DeleteOlderThan remove os registros criados antes do corte e retorna os removidos,
// para que o chamador apague também os arquivos
func (r *uploadRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Upload, error) {
	sqlQuery, args, err := squirrel.
		Delete(uploadsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		Suffix("RETURNING " + uploadsColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryUploads(ctx, sqlQuery, args...)
}

func (r *uploadRepository) queryUploads(ctx context.Context, sqlQuery string, args ...any) ([]*domain.Upload, error) {
	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	uploads := make([]*domain.Upload, 0)
	for rows.Next() {
		upload, err := deserializeUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar upload: %w", err)
		}
		uploads = append(uploads, upload)
	}

	// Verifica erros de iteração
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return uploads, nil
}

func buildInsertUpload(upload *domain.Upload) (string, []any, error) {
	mapping, err := encodeMapping(upload.Mapping)
	if err != nil {
		return "", nil, err
	}

	return squirrel.StatementBuilder.
		Insert(uploadsTable).
		Columns("filename", "file_path", "mapping").
		Values(upload.Filename, upload.FilePath, mapping).
		Suffix("RETURNING " + uploadsColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildListUploads(since *time.Time) (string, []any, error) {
	queryBuilder := squirrel.
		Select(uploadsColumns).
		From(uploadsTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if since != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *since})
	}

	return queryBuilder.ToSql()
}

func buildUpdateMapping(id int64, mapping domain.FieldMapping) (string, []any, error) {
	encoded, err := encodeMapping(mapping)
	if err != nil {
		return "", nil, err
	}

	return squirrel.
		Update(uploadsTable).
		Set("mapping", encoded).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// encodeMapping grava o mapeamento como JSONB; mapeamento vazio vira NULL
func encodeMapping(mapping domain.FieldMapping) (any, error) {
	if len(mapping) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar mapeamento: %w", err)
	}

	return string(data), nil
}

func decodeMapping(raw []byte) (domain.FieldMapping, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var mapping domain.FieldMapping
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("erro ao ler mapeamento: %w", err)
	}

	return mapping, nil
}

func deserializeUpload(row rowScanner) (*domain.Upload, error) {
	upload := &domain.Upload{}
	var mapping []byte

	if err := row.Scan(
		&upload.ID,
		&upload.Filename,
		&upload.FilePath,
		&mapping,
		&upload.CreatedAt,
	); err != nil {
		return nil, err
	}

	decoded, err := decodeMapping(mapping)
	if err != nil {
		return nil, err
	}
	upload.Mapping = decoded

	return upload, nil
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
