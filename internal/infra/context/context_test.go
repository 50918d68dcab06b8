package context_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
)

func TestEnsureTraceID(t *testing.T) {
	t.Parallel()

	ctx := context_.EnsureTraceID(context.Background())

	traceID, ok := context_.TraceIDFromContext(ctx)
	require.True(t, ok)

	parsed, err := uuid.Parse(traceID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	again := context_.EnsureTraceID(ctx)
	kept, _ := context_.TraceIDFromContext(again)
	assert.Equal(t, traceID, kept)
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	_, ok := context_.IdentifierFromContext(context.Background())
	assert.False(t, ok)

	ctx := context_.WithIdentifier(context.Background(), "bob")
	identifier, ok := context_.IdentifierFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "bob", identifier)
}
