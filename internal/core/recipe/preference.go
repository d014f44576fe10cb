package recipe

import (
	"recipe-agent/internal/pkg/common"
)

// PreferenceView 從偏好紀錄導出喜好、厭惡與庫存清單
// 純函數，不做任何驗證；假設上游已排除矛盾偏好
func PreferenceView(prefs *common.UserPreferences) (liked []string, disliked []string, available []common.AvailableIngredient) {
	if prefs == nil {
		return nil, nil, nil
	}

	for _, ing := range prefs.Ingredients {
		if ing.Liked {
			liked = append(liked, ing.Name)
		} else {
			disliked = append(disliked, ing.Name)
		}
	}

	return liked, disliked, prefs.AvailableIngredients
}
