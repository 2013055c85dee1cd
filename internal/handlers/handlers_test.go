package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/tests"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type item struct {
	Name string `json:"name"`
}

type itemBody struct {
	Name string `json:"name" validate:"required,max=10"`
}

type itemQuery struct {
	Kind string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestGetOneHandler(t *testing.T) {
	id := uuid.New()
	r := chi.NewRouter()
	r.Get("/items/{id0}", GetOneHandler(func(_ *zap.Logger, ids uuid.UUIDs) (item, error) {
		if ids[0] != id {
			return item{}, apierrors.NewAPIError(404, "ITEM_NOT_FOUND")
		}
		return item{Name: "found"}, nil
	}))

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
		tests.AssertJSONResponse(t, rec, http.StatusOK, item{Name: "found"})
	})

	t.Run("api error keeps its code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil))
		tests.AssertJSONResponse(t, rec, http.StatusNotFound, models.Error{Status: 404, Error: []string{"ITEM_NOT_FOUND"}})
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil))
		tests.AssertJSONResponse(t, rec, http.StatusBadRequest, models.Error{Status: 400, Error: []string{apierrors.ErrInvalidID}})
	})
}

func TestGetListHandler(t *testing.T) {
	t.Run("nil list is encoded as an empty array", func(t *testing.T) {
		handler := GetListHandler(func(_ *zap.Logger, _ uuid.UUIDs) ([]item, error) { return nil, nil })
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unexpected errors are hidden", func(t *testing.T) {
		handler := GetListHandler(func(_ *zap.Logger, _ uuid.UUIDs) ([]item, error) {
			return nil, errors.New("connection refused")
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		tests.AssertJSONResponse(t, rec, http.StatusInternalServerError, models.Error{Status: 500, Error: []string{apierrors.ErrInternal}})
	})
}

func TestCreateHandler(t *testing.T) {
	r := chi.NewRouter()
	r.With(m.Validate[itemBody]).Post("/items", CreateHandler(func(_ *zap.Logger, _ uuid.UUIDs, in itemBody) (item, error) {
		return item{Name: in.Name}, nil
	}))

	t.Run("created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"widget"}`)))
		tests.AssertJSONResponse(t, rec, http.StatusCreated, item{Name: "widget"})
	})

	t.Run("validation failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":""}`)))
		tests.AssertJSONResponse(t, rec, http.StatusBadRequest, models.Error{Status: 400, Error: []string{"NAME_REQUIRED"}})
	})

	t.Run("missing body in context", func(t *testing.T) {
		handler := CreateHandler(func(_ *zap.Logger, _ uuid.UUIDs, in itemBody) (item, error) { return item{}, nil })
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetListWithQueryHandler(t *testing.T) {
	r := chi.NewRouter()
	r.With(m.ValidateQuery[itemQuery]).Get("/items", GetListWithQueryHandler(func(_ *zap.Logger, _ uuid.UUIDs, q itemQuery) ([]item, error) {
		return []item{{Name: "kind-" + q.Kind}}, nil
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?kind=b", nil))
	tests.AssertJSONResponse(t, rec, http.StatusOK, []item{{Name: "kind-b"}})

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?kind=z", nil))
	tests.AssertJSONResponse(t, rec, http.StatusBadRequest, models.Error{Status: 400, Error: []string{"KIND_ONEOF"}})
}

func TestBodyHandlerUsesRequestLogger(t *testing.T) {
	var seen *zap.Logger
	handler := BodyHandler(func(logger *zap.Logger, _ uuid.UUIDs, in itemBody) (item, error) {
		seen = logger
		return item{Name: in.Name}, nil
	})

	logger := zap.NewNop()
	ctx := context.WithValue(context.Background(), models.LoggerKey{}, logger)
	ctx = context.WithValue(ctx, models.BodyKey{}, itemBody{Name: "x"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/", nil).WithContext(ctx))
	tests.AssertJSONResponse(t, rec, http.StatusOK, item{Name: "x"})
	assert.Same(t, logger, seen)
}
