package recipe

import (
	"strings"

	"recipe-agent/internal/pkg/common"

	"go.uber.org/zap"
)

// formatInstructions 輸出格式說明，原樣嵌入提示詞模板
// 描述 ResponseParser 預期的 JSON 形狀
const formatInstructions = `The output should be a single JSON object conforming to the following schema: ` +
	`{"recipes": {"recipe_1": {"name": "<string>", "ingredients": [{"name": "<string>", "quantity": "<string>"}], ` +
	`"steps": ["<string>"], "cooking_time": "<string>", "difficulty_level": "<string>"}, "recipe_2": {...}}}. ` +
	`Return only the JSON object without markdown fences or commentary.`

// ResponseParser 將模型回覆解碼為食譜集合
type ResponseParser struct{}

// NewResponseParser 創建回覆解析器
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// FormatInstructions 回傳格式說明字串
func (p *ResponseParser) FormatInstructions() string {
	return formatInstructions
}

// Parse 將模型回覆解析為食譜集合
// 任何解碼或格式錯誤一律降級為空集合，不向上拋出
func (p *ResponseParser) Parse(text string) common.RecipeCollection {
	content := extractJSONObject(text)
	if content == "" {
		common.LogWarn("模型回覆中找不到 JSON 物件",
			zap.Int("reply_length", len(text)),
		)
		return emptyCollection()
	}

	var collection common.RecipeCollection
	if err := common.ParseJSON(content, &collection); err != nil {
		// 補上未加引號的鍵再試一次
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(content), &collection); retryErr != nil {
			common.LogWarn("模型回覆解析失敗",
				zap.Error(err),
				zap.Int("content_length", len(content)),
			)
			return emptyCollection()
		}
	}

	if collection.Recipes == nil {
		collection.Recipes = make(map[string]common.Recipe)
	}

	common.LogInfo("模型回覆解析完成",
		zap.Int("recipe_count", collection.Len()),
	)

	return collection
}

// extractJSONObject 擷取回覆中第一個 { 到最後一個 } 之間的內容
// 模型常在 JSON 前後附加說明文字或 markdown 柵欄
func extractJSONObject(text string) string {
	content := strings.TrimSpace(text)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// emptyCollection 回傳空但非 nil 的集合
func emptyCollection() common.RecipeCollection {
	return common.RecipeCollection{Recipes: make(map[string]common.Recipe)}
}
