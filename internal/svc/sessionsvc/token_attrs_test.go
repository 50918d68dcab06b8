package sessionsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
)

func TestTokenAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info authclient.TokenInfo
		want []any
	}{
		{
			name: "subject and expiry",
			info: authclient.TokenInfo{
				Subject:    "bob",
				ExpiresAt:  time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
				Structured: true,
			},
			want: []any{"sub", "bob", "exp", "2030-01-02T03:04:05Z"},
		},
		{
			name: "no expiry claim",
			info: authclient.TokenInfo{Subject: "bob", Structured: true},
			want: []any{"sub", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tokenAttrs(tt.info))
		})
	}
}
