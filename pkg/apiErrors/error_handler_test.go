package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{code: ErrInvalidMapping, want: http.StatusBadRequest},
		{code: ErrUploadNotFound, want: http.StatusNotFound},
		{code: ErrFileTooLarge, want: http.StatusRequestEntityTooLarge},
		{code: ErrMissingMappedField, want: http.StatusUnprocessableEntity},
		{code: ErrTooManyRequests, want: http.StatusTooManyRequests},
		{code: ErrDatabaseOperation, want: http.StatusInternalServerError},
		{code: "XYZ_999", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrMissingMappedField, "Campo ausente", map[string]any{"detail": "price"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"ANL_001","message":"Campo ausente","details":{"detail":"price"}}`, rec.Body.String())
}

func TestFromError(t *testing.T) {
	assert.Equal(t, APIError{Code: ErrFileStorage, Message: "disco cheio"}, FromError(errors.New("disco cheio"), ErrFileStorage))
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrFileStorage).Code)
}
