package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := WithRequestIDContext(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestUsernameContextRoundTrip(t *testing.T) {
	ctx := WithUsernameContext(context.Background(), "admin")
	assert.Equal(t, "admin", GetUsername(ctx))
	assert.Empty(t, GetUsername(context.Background()))
}
