package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"socialfeed/internal/model"
	"socialfeed/internal/service"

	"github.com/stretchr/testify/require"
)

func TestErrorPresenter_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: title required", service.ErrInvalidRequest), wantStatus: http.StatusUnprocessableEntity},
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: fmt.Errorf("%w: not the post owner", service.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "unauthenticated", err: service.ErrUnauthenticated, wantStatus: http.StatusUnauthorized},
		{name: "unclassified", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ErrorPresenter(context.Background(), tt.err)
			require.NotNil(t, got)
			require.Equal(t, tt.wantStatus, got.Extensions["status"])
		})
	}
}

func TestToFeedEventNode_DeleteCarriesOnlyID(t *testing.T) {
	t.Parallel()

	node := toFeedEventNode(model.FeedEvent{Action: model.FeedActionDelete, PostID: 42})
	require.Equal(t, "delete", node.Action)
	require.Nil(t, node.Post)
	require.Nil(t, node.Creator)
	require.NotNil(t, node.PostID)
	require.Equal(t, "42", *node.PostID)
}
