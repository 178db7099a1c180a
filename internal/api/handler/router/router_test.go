package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/items/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			_, _ = w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("id")))
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("primeiro"), tag("segundo")},
	}))

	t.Run("Rota com middlewares na ordem declarada", func(t *testing.T) {
		order = nil
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/items/42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "42", rec.Body.String())
		assert.Equal(t, []string{"primeiro", "segundo", "handler"}, order)
	})

	t.Run("Rota inexistente", func(t *testing.T) {
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outra", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"code":"SRV_004","message":"Rota não encontrada"}`, rec.Body.String())
	})

	t.Run("Método não permitido", func(t *testing.T) {
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/items/42", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
