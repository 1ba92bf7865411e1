package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialfeed/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject, name string, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		header       string
		wantIdentity bool
		wantUserID   int64
	}{
		{
			name:         "valid bearer token",
			header:       "Bearer " + signToken(t, "7", "u7", testSecret),
			wantIdentity: true,
			wantUserID:   7,
		},
		{
			name:         "no header continues unauthenticated",
			header:       "",
			wantIdentity: false,
		},
		{
			name:         "wrong secret continues unauthenticated",
			header:       "Bearer " + signToken(t, "7", "u7", []byte("other")),
			wantIdentity: false,
		},
		{
			name:         "garbage token continues unauthenticated",
			header:       "Bearer not-a-jwt",
			wantIdentity: false,
		},
		{
			name:         "non-numeric subject continues unauthenticated",
			header:       "Bearer " + signToken(t, "alice", "alice", testSecret),
			wantIdentity: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotIdentity auth.Identity
			var gotOK bool
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				gotIdentity, gotOK = auth.FromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			Identity(testSecret)(next).ServeHTTP(httptest.NewRecorder(), req)

			require.Equal(t, tt.wantIdentity, gotOK)
			if tt.wantIdentity {
				require.Equal(t, tt.wantUserID, gotIdentity.UserID)
				require.Equal(t, "u7", gotIdentity.Name)
			}
		})
	}
}
