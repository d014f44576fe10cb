package preference

import (
	"context"
	"errors"
	"net/http"

	"recipe-agent/internal/pkg/common"
	"recipe-agent/internal/storage/preference"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store 偏好儲存介面
type Store interface {
	Insert(ctx context.Context, prefs *common.UserPreferences) error
	Get(ctx context.Context, userID string) (*common.UserPreferences, error)
	Delete(ctx context.Context, userID string) (bool, error)
}

// UserRequest 以 user_id 查詢的請求
type UserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// HandleInsert 新增使用者偏好
func HandleInsert(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs common.UserPreferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			common.LogWarn("偏好請求格式無效",
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "Invalid request format",
			})
			return
		}

		if err := store.Insert(c.Request.Context(), &prefs); err != nil {
			switch {
			case common.IsValidationError(err):
				c.JSON(http.StatusBadRequest, common.ErrorResponse{
					Code:    common.ErrCodeInvalidRequest,
					Message: err.Error(),
				})
			case errors.Is(err, preference.ErrDuplicateUser):
				c.JSON(http.StatusConflict, common.ErrorResponse{
					Code:    common.ErrPreferenceConflict.Code,
					Message: "Preferences already exist for this user",
				})
			default:
				common.LogError("偏好寫入失敗",
					zap.Error(err),
					zap.String("user_id", prefs.UserID),
				)
				c.JSON(http.StatusInternalServerError, common.ErrorResponse{
					Code:    common.ErrCodeInternalError,
					Message: "Failed to insert user preferences",
				})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User preferences inserted",
			"user_id": prefs.UserID,
		})
	}
}

// HandleQuery 查詢使用者偏好
func HandleQuery(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
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

		c.JSON(http.StatusOK, gin.H{
			"preferences": prefs,
		})
	}
}

// HandleDelete 刪除使用者偏好
func HandleDelete(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		found, err := store.Delete(c.Request.Context(), userID)
		if err != nil {
			common.LogError("偏好刪除失敗",
				zap.Error(err),
				zap.String("user_id", userID),
			)
			c.JSON(http.StatusInternalServerError, common.ErrorResponse{
				Code:    common.ErrCodeInternalError,
				Message: "Failed to delete user preferences",
			})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, common.ErrorResponse{
				Code:    common.ErrPreferenceNotFound.Code,
				Message: "No preferences found for user_id: " + userID,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "User preferences deleted",
			"user_id": userID,
		})
	}
}
