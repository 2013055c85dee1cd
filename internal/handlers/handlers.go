package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/helpers"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	CreateTargetFunc[In any, Out any]   func(*zap.Logger, uuid.UUIDs, In) (Out, error)
	BodyTargetFunc[In any, Out any]     func(*zap.Logger, uuid.UUIDs, In) (Out, error)
	GetOneTargetFunc[Out any]           func(*zap.Logger, uuid.UUIDs) (Out, error)
	GetListTargetFunc[Out any]          func(*zap.Logger, uuid.UUIDs) ([]Out, error)
	QueryTargetFunc[Q any, Out any]     func(*zap.Logger, uuid.UUIDs, Q) (Out, error)
	QueryListTargetFunc[Q any, Out any] func(*zap.Logger, uuid.UUIDs, Q) ([]Out, error)
)

func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		helpers.RespondWithError(w, apiErr.Code, []string{apiErr.Message})
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	helpers.RespondWithError(w, http.StatusInternalServerError, []string{apierrors.ErrInternal})
}

func parseIDs(w http.ResponseWriter, r *http.Request) (uuid.UUIDs, bool) {
	ids, err := helpers.ParseUUIDs(r)
	if err != nil {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.ErrInvalidID})
		return nil, false
	}
	return ids, true
}

func body[In any](w http.ResponseWriter, r *http.Request) (In, bool) {
	in, ok := r.Context().Value(models.BodyKey{}).(In)
	if !ok {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.ErrBadRequest})
	}
	return in, ok
}

func query[Q any](w http.ResponseWriter, r *http.Request) (Q, bool) {
	q, ok := r.Context().Value(models.QueryKey{}).(Q)
	if !ok {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.ErrBadRequest})
	}
	return q, ok
}

// CreateHandler passes the validated body to create and answers 201.
func CreateHandler[In any, Out any](create CreateTargetFunc[In, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}
		in, ok := body[In](w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		resp, err := create(logger, ids, in)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusCreated, resp)
	}
}

// BodyHandler passes the validated body to fn and answers 200.
func BodyHandler[In any, Out any](fn BodyTargetFunc[In, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}
		in, ok := body[In](w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		resp, err := fn(logger, ids, in)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, resp)
	}
}

func GetOneHandler[Out any](get GetOneTargetFunc[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		resp, err := get(logger, ids)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, resp)
	}
}

// GetListHandler answers with a JSON array, never null.
func GetListHandler[Out any](list GetListTargetFunc[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		records, err := list(logger, ids)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		if records == nil {
			records = []Out{}
		}
		helpers.RespondWithJSON(w, http.StatusOK, records)
	}
}

func GetOneWithQueryHandler[Q any, Out any](get QueryTargetFunc[Q, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}
		q, ok := query[Q](w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		resp, err := get(logger, ids, q)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, resp)
	}
}

func GetListWithQueryHandler[Q any, Out any](list QueryListTargetFunc[Q, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := parseIDs(w, r)
		if !ok {
			return
		}
		q, ok := query[Q](w, r)
		if !ok {
			return
		}

		logger := m.GetLogger(r)
		records, err := list(logger, ids, q)
		if err != nil {
			respondWithServiceError(w, logger, err)
			return
		}
		if records == nil {
			records = []Out{}
		}
		helpers.RespondWithJSON(w, http.StatusOK, records)
	}
}

// ActionHandler serves body-less POST actions and answers 200.
func ActionHandler[Out any](action GetOneTargetFunc[Out]) http.HandlerFunc {
	return GetOneHandler(action)
}
