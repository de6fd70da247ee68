package generativeAI

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRateLimited(t *testing.T) {
	assert.False(t, IsRateLimited(nil))
	assert.True(t, IsRateLimited(errors.New("googleapi: Error 429: quota exceeded")))
	assert.True(t, IsRateLimited(errors.New("Rate Limit reached for model")))
	assert.True(t, IsRateLimited(errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED")))
	assert.False(t, IsRateLimited(errors.New("invalid request")))
	assert.False(t, IsRateLimited(errors.New("internal server error")))
}

func TestNewAIClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	_, err := NewAIClient(context.Background(), "", time.Minute)
	assert.Error(t, err)
}

func TestNewAIClient_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "test-key")

	client, err := NewAIClient(context.Background(), "", 45*time.Second)
	require.NoError(t, err)
	assert.Equal(t, defaultModel, client.model)
	assert.Equal(t, 45*time.Second, client.timeout)
}
