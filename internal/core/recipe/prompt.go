package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"recipe-agent/internal/pkg/common"
)

// promptTemplate 固定提示詞模板
// 四個佔位符依序為庫存、喜好、厭惡與輸出格式說明
const promptTemplate = "Generate 5 structured recipes based on the following available ingredients: %s. " +
	"Ensure the recipes include liked ingredients %s " +
	"and avoid using disliked ingredients %s. " +
	"Each recipe should include the following fields: name, ingredients, steps, cooking time, and difficulty level. " +
	"%s"

// PromptBuilder 組合送往模型的提示詞
type PromptBuilder struct {
	formatInstructions string
}

// NewPromptBuilder 創建提示詞組合器
// formatInstructions 由 ResponseParser 的格式契約提供，原樣嵌入模板
func NewPromptBuilder(formatInstructions string) *PromptBuilder {
	return &PromptBuilder{
		formatInstructions: formatInstructions,
	}
}

// Build 將三組食材清單渲染為完整提示詞
// 任一清單含無效元素時回傳 InputError；空清單僅記警告，生成照常進行
func (b *PromptBuilder) Build(available, liked, disliked []string) (string, error) {
	if err := validateNames("available ingredients", available); err != nil {
		return "", err
	}
	if err := validateNames("liked ingredients", liked); err != nil {
		return "", err
	}
	if err := validateNames("disliked ingredients", disliked); err != nil {
		return "", err
	}

	if len(available) == 0 {
		common.LogWarn("未提供庫存食材")
	}
	if len(liked) == 0 {
		common.LogWarn("未提供喜好食材")
	}
	if len(disliked) == 0 {
		common.LogWarn("未提供厭惡食材")
	}

	return fmt.Sprintf(promptTemplate,
		renderList(available),
		renderList(liked),
		renderList(disliked),
		b.formatInstructions,
	), nil
}

// validateNames 確認清單中每個元素都是有效字串
// 靜態型別已排除非字串元素，這裡守住空白與編碼無效的殘餘情況
func validateNames(label string, names []string) error {
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return common.NewInputError("all %s must be non-empty strings (element %d is blank)", label, i)
		}
		if !utf8.ValidString(name) {
			return common.NewInputError("all %s must be valid strings (element %d is malformed)", label, i)
		}
	}
	return nil
}

// renderList 將清單渲染為提示詞中的字面形式
func renderList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[" + strings.Join(items, ", ") + "]"
}
