package authclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
)

func TestHTTPClient_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantToken domain.SessionToken
		wantOK    bool
		wantErr   error
	}{
		{
			name:      "accepted",
			status:    http.StatusOK,
			body:      `{"token":"tok-123"}`,
			wantToken: "tok-123",
			wantOK:    true,
		},
		{
			name:   "empty token is a rejection",
			status: http.StatusOK,
			body:   `{"token":""}`,
		},
		{
			name:   "unauthorized is a rejection",
			status: http.StatusUnauthorized,
			body:   "Unauthorized",
		},
		{
			name:   "forbidden is a rejection",
			status: http.StatusForbidden,
		},
		{
			name:   "bad request is a rejection",
			status: http.StatusBadRequest,
		},
		{
			name:    "server error is unavailable",
			status:  http.StatusInternalServerError,
			wantErr: domain.ErrTransportUnavailable,
		},
		{
			name:    "bad gateway is unavailable",
			status:  http.StatusBadGateway,
			wantErr: domain.ErrTransportUnavailable,
		},
		{
			name:    "garbage body is unavailable",
			status:  http.StatusOK,
			body:    "<html>",
			wantErr: domain.ErrTransportUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "bob", r.FormValue("username"))
				assert.Equal(t, "password1", r.FormValue("password"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client := authclient.NewHTTPClient(authclient.HTTPClientConfig{
				LoginURL: srv.URL,
				Timeout:  time.Second,
			}, nil)

			token, ok, err := client.Login(context.Background(), "bob", "password1")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestHTTPClient_LoginUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{LoginURL: addr, Timeout: time.Second}, nil)

	_, ok, err := client.Login(context.Background(), "bob", "password1")
	require.ErrorIs(t, err, domain.ErrTransportUnavailable)
	assert.False(t, ok)
}

func TestHTTPClient_ForwardsTraceID(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get(authclient.TraceIDHeader)
		_, _ = w.Write([]byte(`{"token":"t"}`))
	}))
	t.Cleanup(srv.Close)

	client := authclient.NewHTTPClient(authclient.HTTPClientConfig{LoginURL: srv.URL}, srv.Client())

	ctx := context_.WithTraceID(context.Background(), "trace-42")
	_, ok, err := client.Login(ctx, "bob", "password1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "trace-42", <-got)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "bob",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	info := authclient.Inspect(domain.SessionToken(signed))
	assert.True(t, info.Structured)
	assert.Equal(t, "bob", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))

	assert.Equal(t, authclient.TokenInfo{}, authclient.Inspect("opaque-token"))
}
