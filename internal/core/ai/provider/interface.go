package provider

import (
	"context"
)

// Reply 模型回覆
// Content 為模型輸出的純文字內容
type Reply struct {
	Content string `json:"content"`
}

// Provider 定義生成模型介面
// 每次呼叫只進行一次往返，重試與退避由外部傳輸層自行決定
type Provider interface {
	// Generate 送出提示詞並取得模型回覆
	Generate(ctx context.Context, prompt string) (*Reply, error)

	// Model 獲取當前使用的模型名稱
	Model() string

	// Close 關閉提供者連接
	Close() error
}
