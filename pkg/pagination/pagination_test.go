package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRequest_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{name: "zero page fails closed to 1", in: PageRequest{Page: 0, PerPage: 2}, want: PageRequest{Page: 1, PerPage: 2}},
		{name: "negative page fails closed to 1", in: PageRequest{Page: -3, PerPage: 2}, want: PageRequest{Page: 1, PerPage: 2}},
		{name: "missing per-page gets default", in: PageRequest{Page: 4}, want: PageRequest{Page: 4, PerPage: 2}},
		{name: "per-page capped", in: PageRequest{Page: 1, PerPage: 9999}, want: PageRequest{Page: 1, PerPage: 100}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Normalize(2, 100))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, PageRequest{Page: 1, PerPage: 2}.Offset())
	require.Equal(t, 6, PageRequest{Page: 4, PerPage: 2}.Offset())
}
