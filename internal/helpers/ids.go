package helpers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxPathIDs bounds the {id0}..{idN} route parameters looked up per request.
const maxPathIDs = 3

// ParseUUIDs collects the {id0}, {id1}, ... route parameters in order.
func ParseUUIDs(r *http.Request) (uuid.UUIDs, error) {
	var ids uuid.UUIDs
	for i := range maxPathIDs {
		raw := chi.URLParam(r, fmt.Sprintf("id%d", i))
		if raw == "" {
			break
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid id%d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
