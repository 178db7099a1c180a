package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/domain"
	"github.com/vfg2006/sales-pulse-api/internal/usecases/uploading"
	"github.com/vfg2006/sales-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pulse-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const uploadFormField = "file"

// MappingRequest é o corpo de POST /v1/uploads/:id/mapping
type MappingRequest struct {
	Mapping map[string]string `json:"mapping" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// ColumnsResponse lista as colunas disponíveis para mapeamento
type ColumnsResponse struct {
	Columns []string `json:"columns"`
}

func CreateUpload(service uploading.Uploader, maxSizeBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateUpload")

		r.Body = http.MaxBytesReader(w, r.Body, maxSizeBytes)
		if err := r.ParseMultipartForm(maxSizeBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite permitido", map[string]any{
					"max_bytes": maxSizeBytes,
				})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo multipart inválido: "+err.Error(), nil)
			return
		}

		file, header, err := r.FormFile(uploadFormField)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
			return
		}
		defer file.Close()

		upload, err := service.SaveUpload(r.Context(), header.Filename, file)
		if err != nil {
			logrus.Error("CreateUpload: ", err)
			writeUploadError(w, err, "Erro ao salvar upload")
			return
		}

		writeJSON(w, http.StatusCreated, upload)
	})
}

func ListUploads(service uploading.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var since *time.Time
		if raw := r.URL.Query().Get("since"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro 'since' deve estar no formato YYYY-MM-DD", nil)
				return
			}
			since = parsed
		}

		uploads, err := service.ListUploads(r.Context(), since)
		if err != nil {
			logrus.Error("ListUploads: ", err)
			writeUploadError(w, err, "Erro ao listar uploads")
			return
		}

		writeJSON(w, http.StatusOK, uploads)
	})
}

func GetUpload(service uploading.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := uploadID(w, r)
		if !ok {
			return
		}

		upload, err := service.GetUpload(r.Context(), id)
		if err != nil {
			writeUploadError(w, err, "Erro ao buscar upload")
			return
		}

		writeJSON(w, http.StatusOK, upload)
	})
}

func GetUploadColumns(service uploading.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := uploadID(w, r)
		if !ok {
			return
		}

		columns, err := service.GetColumns(r.Context(), id)
		if err != nil {
			logrus.Error("GetUploadColumns: ", err)
			writeUploadError(w, err, "Erro ao ler colunas do arquivo")
			return
		}

		writeJSON(w, http.StatusOK, ColumnsResponse{Columns: columns})
	})
}

func SaveUploadMapping(service uploading.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SaveUploadMapping")

		id, ok := uploadID(w, r)
		if !ok {
			return
		}

		var request MappingRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := validate.Struct(request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidMapping, "Mapeamento inválido", validationDetails(err))
			return
		}

		upload, err := service.SaveMapping(r.Context(), id, domain.FieldMapping(request.Mapping))
		if err != nil {
			logrus.Error("SaveUploadMapping: ", err)
			writeUploadError(w, err, "Erro ao salvar mapeamento")
			return
		}

		writeJSON(w, http.StatusOK, upload)
	})
}

func GetUploadAnalytics(service uploading.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetUploadAnalytics")

		id, ok := uploadID(w, r)
		if !ok {
			return
		}

		analytics, err := service.GetAnalytics(r.Context(), id)
		if err != nil {
			logrus.Error("GetUploadAnalytics: ", err)
			writeUploadError(w, err, "Erro ao analisar vendas")
			return
		}

		writeJSON(w, http.StatusOK, analytics)
	})
}

func uploadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do upload é obrigatório", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do upload deve ser um inteiro positivo", nil)
		return 0, false
	}

	return id, true
}

// writeUploadError traduz erros do serviço de uploads para a resposta padronizada
func writeUploadError(w http.ResponseWriter, err error, fallback string) {
	var uploadErr *uploading.UploadError
	if pkgerrors.As(err, &uploadErr) {
		var details any
		if uploadErr.Details != "" {
			details = map[string]any{
				"upload_id": uploadErr.UploadID,
				"detail":    uploadErr.Details,
			}
		}
		apiErrors.WriteError(w, uploadErr.Code, uploadErr.Err.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}
