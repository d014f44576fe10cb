package recipe

import (
	"context"
	"errors"
	"testing"

	"recipe-agent/internal/core/ai/provider"
	"recipe-agent/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeReturnsReplyContent(t *testing.T) {
	fp := &fakeProvider{reply: &provider.Reply{Content: "hello"}}
	inv := NewModelInvoker(fp)

	text, err := inv.Invoke(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "prompt", fp.lastPrompt)
}

func TestInvokeWrapsTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	fp := &fakeProvider{err: cause}
	inv := NewModelInvoker(fp)

	_, err := inv.Invoke(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, common.IsModelError(err))
	assert.ErrorIs(t, err, cause)
}

func TestInvokeRejectsEmptyReply(t *testing.T) {
	tests := []struct {
		name  string
		reply *provider.Reply
	}{
		{"nil reply", nil},
		{"blank content", &provider.Reply{Content: "   \n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{reply: tt.reply}
			inv := NewModelInvoker(fp)

			_, err := inv.Invoke(context.Background(), "prompt")
			require.Error(t, err)
			assert.True(t, common.IsModelError(err))
		})
	}
}

func TestInvokerModelName(t *testing.T) {
	inv := NewModelInvoker(&fakeProvider{})
	assert.Equal(t, "fake/model", inv.Model())
}
