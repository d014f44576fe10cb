package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-agent/internal/core/ai/provider"
	"recipe-agent/internal/infrastructure/config"
	"recipe-agent/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-agent.dev").
		SetHeader("X-Title", "Recipe Agent")

	return &Client{
		config: cfg,
		client: client,
	}
}

// chatMessage 聊天消息
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest 聊天請求
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// chatResponse 聊天回應
// content 可能是純字串，也可能是帶 content/text 的分段物件
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate 送出提示詞並取得模型回覆
func (c *Client) Generate(ctx context.Context, prompt string) (*provider.Reply, error) {
	req := chatRequest{
		Model: c.config.OpenRouter.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.config.OpenRouter.MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	// 解析回應
	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenRouter response")
	}

	content, err := extractContent(result.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	common.LogDebug("OpenRouter 回應完成",
		zap.Duration("耗時", time.Since(start)),
		zap.String("model", c.config.OpenRouter.Model),
		zap.Int("content_length", len(content)),
	)

	return &provider.Reply{Content: content}, nil
}

// extractContent 從 message.content 取出文字
// 只支援兩種形態：純字串，或帶 text/content 欄位的分段陣列
func extractContent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	// 形態一：純字串
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	// 形態二：分段陣列，逐段取出 text 欄位
	var segments []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &segments); err == nil {
		combined := ""
		for _, seg := range segments {
			combined += seg.Text
		}
		if combined != "" {
			return combined, nil
		}
	}

	return "", fmt.Errorf("unsupported content shape in OpenRouter response")
}

// Model 獲取當前使用的模型名稱
func (c *Client) Model() string {
	return c.config.OpenRouter.Model
}

// Close 關閉客戶端連接
func (c *Client) Close() error {
	// resty 客戶端無需顯式關閉
	return nil
}
