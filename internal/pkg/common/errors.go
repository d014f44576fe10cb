package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// InputError 呼叫端輸入錯誤
// 請求立即失敗，不會進行任何模型呼叫
type InputError struct {
	Message string
}

// Error 實現 error 介面
func (e *InputError) Error() string {
	return e.Message
}

// NewInputError 創建新的輸入錯誤
func NewInputError(format string, args ...interface{}) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// IsInputError 檢查是否為輸入錯誤
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ConfigError 驗證器設定錯誤
// 表示呼叫端提供的設定有缺陷，於驗證器建構時拋出
type ConfigError struct {
	Message string
}

// Error 實現 error 介面
func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError 創建新的設定錯誤
func NewConfigError(format string, args ...interface{}) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// IsConfigError 檢查是否為設定錯誤
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// ModelError 模型傳輸或回覆格式錯誤，攜帶底層原因
// 管線將其吸收為空結果，不向呼叫端拋出
type ModelError struct {
	Message string
	Err     error
}

// Error 實現 error 介面
func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 回傳底層錯誤
func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError 創建新的模型錯誤
func NewModelError(message string, err error) error {
	return &ModelError{Message: message, Err: err}
}

// IsModelError 檢查是否為模型錯誤
func IsModelError(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr)
}

// ValidationError 表示資料驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "資源衝突", http.StatusConflict, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrPreferenceNotFound = NewError("PREFERENCE_NOT_FOUND", "找不到使用者偏好", http.StatusNotFound, nil)
	ErrPreferenceConflict = NewError("PREFERENCE_CONFLICT", "使用者偏好已存在", http.StatusConflict, nil)
	ErrModelServiceError  = NewError("MODEL_SERVICE_ERROR", "模型服務錯誤", http.StatusServiceUnavailable, nil)
)
