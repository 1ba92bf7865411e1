package graphql

import (
	"context"
	"errors"
	"net/http"

	"socialfeed/internal/service"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ErrorPresenter classifies workflow failures once and carries the
// status to the response boundary as an error extension, so clients
// see {message, status} regardless of which stage failed.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	e := graphql.DefaultErrorPresenter(ctx, err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}

	if e.Extensions == nil {
		e.Extensions = make(map[string]any)
	}
	e.Extensions["status"] = status
	return e
}
