package recipe

import (
	"context"
	"strings"
	"time"

	"recipe-agent/internal/core/ai/provider"
	"recipe-agent/internal/pkg/common"
)

// ModelInvoker 包裝模型呼叫
// 每次 Invoke 只往返一次，傳輸或回覆格式問題一律收斂為 ModelError
type ModelInvoker struct {
	provider provider.Provider
}

// NewModelInvoker 創建模型調用器
func NewModelInvoker(p provider.Provider) *ModelInvoker {
	return &ModelInvoker{
		provider: p,
	}
}

// Invoke 送出提示詞並回傳模型回覆的純文字
func (m *ModelInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	requestID := common.GenerateUUID()

	start := time.Now()
	reply, err := m.provider.Generate(ctx, prompt)
	common.LogModelCall(time.Since(start), err, requestID)

	if err != nil {
		return "", common.NewModelError("error invoking model", err)
	}

	if reply == nil || strings.TrimSpace(reply.Content) == "" {
		return "", common.NewModelError("model reply does not carry expected content", nil)
	}

	return reply.Content, nil
}

// Model 回傳底層模型名稱
func (m *ModelInvoker) Model() string {
	return m.provider.Model()
}
