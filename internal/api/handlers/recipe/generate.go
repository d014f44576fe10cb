package recipe

import (
	"context"
	"errors"
	"net/http"

	"recipe-agent/internal/pkg/common"
	"recipe-agent/internal/storage/preference"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generator 食譜生成管線介面
type Generator interface {
	GenerateRecipes(ctx context.Context, prefs *common.UserPreferences) ([]common.Recipe, error)
}

// PreferenceReader 偏好讀取介面
type PreferenceReader interface {
	Get(ctx context.Context, userID string) (*common.UserPreferences, error)
}

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// GenerateResponse 食譜生成響應
type GenerateResponse struct {
	Recipes []common.Recipe `json:"recipes"`
	Count   int             `json:"count"`
	Message string          `json:"message,omitempty"`
}

// HandleGenerate 依使用者偏好生成並驗證食譜
// 模型或解析失敗仍回 200 與空清單；輸入與偏好設定缺陷回 400
func HandleGenerate(generator Generator, store PreferenceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "Invalid request format",
			})
			return
		}

		prefs, err := store.Get(c.Request.Context(), req.UserID)
		if err != nil {
			if errors.Is(err, preference.ErrNotFound) {
				c.JSON(http.StatusNotFound, common.ErrorResponse{
					Code:    common.ErrPreferenceNotFound.Code,
					Message: "No preferences found for user_id: " + req.UserID,
				})
				return
			}
			common.LogError("偏好查詢失敗",
				zap.Error(err),
				zap.String("user_id", req.UserID),
			)
			c.JSON(http.StatusInternalServerError, common.ErrorResponse{
				Code:    common.ErrCodeInternalError,
				Message: "Failed to retrieve user preferences",
			})
			return
		}

		recipes, err := generator.GenerateRecipes(c.Request.Context(), prefs)
		if err != nil {
			switch {
			case common.IsInputError(err):
				c.JSON(http.StatusBadRequest, common.ErrorResponse{
					Code:    common.ErrCodeInvalidRequest,
					Message: err.Error(),
				})
			case common.IsConfigError(err):
				// 偏好紀錄無法構成有效的驗證設定，屬呼叫端資料缺陷
				c.JSON(http.StatusBadRequest, common.ErrorResponse{
					Code:    "INVALID_PREFERENCES",
					Message: err.Error(),
				})
			default:
				common.LogError("食譜生成失敗",
					zap.Error(err),
					zap.String("user_id", req.UserID),
				)
				c.JSON(http.StatusInternalServerError, common.ErrorResponse{
					Code:    common.ErrCodeInternalError,
					Message: "Recipe generation failed",
				})
			}
			return
		}

		response := GenerateResponse{
			Recipes: recipes,
			Count:   len(recipes),
		}
		if len(recipes) == 0 {
			response.Message = "No valid recipes found."
		}

		c.JSON(http.StatusOK, response)
	}
}
