package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"recipe-agent/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeValidator 食譜驗證器，管線的核心決策引擎
// 以單一請求的偏好資料建構，請求期間不可變
type RecipeValidator struct {
	available      []common.AvailableIngredient
	disliked       map[string]struct{}
	minIngredients int
	hook           DecisionHook
}

// ValidatorOption 驗證器選項
type ValidatorOption func(*RecipeValidator)

// WithDecisionHook 設定決策回呼，由呼叫端持有
func WithDecisionHook(hook DecisionHook) ValidatorOption {
	return func(v *RecipeValidator) {
		v.hook = hook
	}
}

// NewRecipeValidator 創建食譜驗證器
// 設定不合法時回傳 ConfigError：庫存為空或缺欄位、最少食材數非正數
func NewRecipeValidator(available []common.AvailableIngredient, disliked []string, minIngredients int, opts ...ValidatorOption) (*RecipeValidator, error) {
	if len(available) == 0 {
		return nil, common.NewConfigError("available ingredients must be a non-empty list")
	}
	for i, ing := range available {
		if strings.TrimSpace(ing.Name) == "" || strings.TrimSpace(ing.Quantity) == "" {
			return nil, common.NewConfigError("available ingredient %d must carry name and quantity", i)
		}
	}
	if minIngredients <= 0 {
		return nil, common.NewConfigError("min ingredients must be a positive integer, got %d", minIngredients)
	}

	dislikedSet := make(map[string]struct{}, len(disliked))
	for _, name := range disliked {
		dislikedSet[strings.ToLower(name)] = struct{}{}
	}

	v := &RecipeValidator{
		available:      available,
		disliked:       dislikedSet,
		minIngredients: minIngredients,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// ValidateRecipes 驗證集合中的每一道食譜並回傳通過的子集
// 逐食譜依序套用結構、份量與烹飪合理性檢查，首個失敗即淘汰
// 通過的食譜原樣收錄，不做任何欄位改寫
func (v *RecipeValidator) ValidateRecipes(recipes map[string]common.Recipe) []common.Recipe {
	valid := make([]common.Recipe, 0, len(recipes))

	for key, r := range recipes {
		if reason := v.checkStructure(r); reason != "" {
			v.reject(key, r.Name, StageStructure, reason)
			continue
		}

		if reason := v.checkQuantities(key, r.Ingredients); reason != "" {
			v.reject(key, r.Name, StageQuantity, reason)
			continue
		}

		if reason := v.checkCulinarySense(r.Ingredients, r.Steps); reason != "" {
			v.reject(key, r.Name, StageCulinary, reason)
			continue
		}

		v.hook.emit(DecisionEvent{
			RecipeKey:  key,
			RecipeName: r.Name,
			Stage:      StageAccepted,
			Accepted:   true,
		})
		valid = append(valid, r)
	}

	return valid
}

// checkStructure 結構檢查：五個必要欄位缺一不可
// JSON 解碼後缺欄位呈現為零值（空字串或 nil 切片）
func (v *RecipeValidator) checkStructure(r common.Recipe) string {
	switch {
	case r.Name == "":
		return "missing required field: name"
	case r.Ingredients == nil:
		return "missing required field: ingredients"
	case r.Steps == nil:
		return "missing required field: steps"
	case r.CookingTime == "":
		return "missing required field: cooking_time"
	case r.DifficultyLevel == "":
		return "missing required field: difficulty_level"
	}
	return ""
}

// checkQuantities 份量檢查：需求量不得超過庫存量
// 庫存中不存在的食材直接略過（候選食譜可引用未追蹤的常備食材），
// 驗證器只否決觀察得到的短缺
func (v *RecipeValidator) checkQuantities(key string, ingredients []common.RecipeIngredient) string {
	for _, ing := range ingredients {
		stock, ok := v.lookupAvailable(ing.Name)
		if !ok {
			continue
		}

		required, okRequired := parseQuantity(ing.Quantity)
		availableQty, okAvailable := parseQuantity(stock.Quantity)
		if !okRequired || !okAvailable {
			// 數量無法比較時視同未觀察到短缺，略過並通報
			v.hook.emit(DecisionEvent{
				RecipeKey: key,
				Stage:     StageQuantity,
				Accepted:  true,
				Reason:    fmt.Sprintf("quantity for %q is not numeric, comparison skipped", ing.Name),
			})
			continue
		}

		if required > availableQty {
			return fmt.Sprintf("ingredient %q requires %s but only %s is available", ing.Name, ing.Quantity, stock.Quantity)
		}
	}
	return ""
}

// checkCulinarySense 烹飪合理性檢查
// 食材數須達下限，且每個食材名稱須出現在至少一個步驟文字中（不分大小寫）
func (v *RecipeValidator) checkCulinarySense(ingredients []common.RecipeIngredient, steps []string) string {
	if len(ingredients) < v.minIngredients {
		return fmt.Sprintf("recipe contains fewer than %d ingredients", v.minIngredients)
	}

	for _, ing := range ingredients {
		if !mentionedInSteps(ing.Name, steps) {
			return fmt.Sprintf("ingredient %q is not mentioned in the steps", ing.Name)
		}
	}
	return ""
}

// lookupAvailable 以名稱查找庫存食材
func (v *RecipeValidator) lookupAvailable(name string) (common.AvailableIngredient, bool) {
	for _, ing := range v.available {
		if ing.Name == name {
			return ing, true
		}
	}
	return common.AvailableIngredient{}, false
}

// mentionedInSteps 檢查食材名稱是否出現在任一步驟中
func mentionedInSteps(name string, steps []string) bool {
	lowered := strings.ToLower(name)
	for _, step := range steps {
		if strings.Contains(strings.ToLower(step), lowered) {
			return true
		}
	}
	return false
}

// parseQuantity 將數量字串解析為數值
func parseQuantity(quantity string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// reject 記錄並通報淘汰決策
func (v *RecipeValidator) reject(key, name, stage, reason string) {
	common.LogInfo("食譜未通過驗證",
		zap.String("recipe_key", key),
		zap.String("stage", stage),
		zap.String("reason", reason),
	)
	v.hook.emit(DecisionEvent{
		RecipeKey:  key,
		RecipeName: name,
		Stage:      stage,
		Accepted:   false,
		Reason:     reason,
	})
}
