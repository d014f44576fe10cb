package common

import (
	"fmt"
)

// Ingredient 使用者對單一食材的偏好
type Ingredient struct {
	Name  string `json:"name"`
	Liked bool   `json:"liked"`
}

// AvailableIngredient 庫存食材與數量
type AvailableIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// UserPreferences 使用者偏好紀錄
// user_id 為儲存層的文件鍵，必填
type UserPreferences struct {
	UserID               string                `json:"user_id" binding:"required"`
	ClientName           string                `json:"client_name,omitempty"`
	Ingredients          []Ingredient          `json:"ingredients"`
	AvailableIngredients []AvailableIngredient `json:"available_ingredients"`
}

// RecipeIngredient 食譜中列出的食材與需求量
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe 模型產生的候選食譜
// 五個欄位缺一不可，結構檢查在驗證器中進行
type Recipe struct {
	Name            string             `json:"name"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Steps           []string           `json:"steps"`
	CookingTime     string             `json:"cooking_time"`
	DifficultyLevel string             `json:"difficulty_level"`
}

// RecipeCollection 模型單次回覆中的食譜集合
// 鍵只是模型自訂的標籤（recipe_1、recipe_2 ...），不帶語意
type RecipeCollection struct {
	Recipes map[string]Recipe `json:"recipes"`
}

// Len 回傳集合中的食譜數量
func (c RecipeCollection) Len() int {
	return len(c.Recipes)
}

// FormatAvailableIngredient 將庫存食材轉為提示詞顯示字串
func FormatAvailableIngredient(ing AvailableIngredient) string {
	return fmt.Sprintf("%s (%s)", ing.Name, ing.Quantity)
}

// FormatAvailableIngredients 將庫存清單轉為顯示字串切片
func FormatAvailableIngredients(ingredients []AvailableIngredient) []string {
	display := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		display = append(display, FormatAvailableIngredient(ing))
	}
	return display
}
