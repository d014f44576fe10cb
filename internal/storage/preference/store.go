package preference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-agent/internal/infrastructure/config"
	"recipe-agent/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrNotFound 查無此使用者的偏好紀錄
	ErrNotFound = errors.New("preference not found")

	// ErrDuplicateUser user_id 已存在
	ErrDuplicateUser = errors.New("duplicate user_id")
)

// Store Redis 偏好資料儲存
// 以 user_id 為文件鍵，每位使用者一份 JSON 文件
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 創建偏好儲存並驗證連線
func NewStore(cfg *config.StoreConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("偏好儲存已初始化",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	return &Store{
		client: client,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Insert 新增偏好紀錄
// user_id 已存在時回傳 ErrDuplicateUser，寫入前先做文件驗證
func (s *Store) Insert(ctx context.Context, prefs *common.UserPreferences) error {
	if err := ValidatePreferences(prefs); err != nil {
		return err
	}

	data, err := common.ToJSON(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(prefs.UserID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to insert preferences: %w", err)
	}
	if !ok {
		return ErrDuplicateUser
	}

	common.LogInfo("偏好紀錄已新增",
		zap.String("user_id", prefs.UserID),
	)
	return nil
}

// Save 新增或覆寫偏好紀錄
func (s *Store) Save(ctx context.Context, prefs *common.UserPreferences) error {
	if err := ValidatePreferences(prefs); err != nil {
		return err
	}

	data, err := common.ToJSON(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := s.client.Set(ctx, s.key(prefs.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	common.LogInfo("偏好紀錄已儲存",
		zap.String("user_id", prefs.UserID),
	)
	return nil
}

// Get 以 user_id 取得偏好紀錄，查無資料回傳 ErrNotFound
func (s *Store) Get(ctx context.Context, userID string) (*common.UserPreferences, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}

	var prefs common.UserPreferences
	if err := common.ParseJSON(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return &prefs, nil
}

// Delete 刪除偏好紀錄，回傳是否有刪到資料
func (s *Store) Delete(ctx context.Context, userID string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete preferences: %w", err)
	}
	return deleted > 0, nil
}

// Ping 檢查儲存連線狀態
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉儲存連線
func (s *Store) Close() error {
	return s.client.Close()
}

// key 組合文件鍵
func (s *Store) key(userID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, userID)
}

// ValidatePreferences 儲存邊界的文件驗證
// 文件必須攜帶 user_id，且同一食材（不分大小寫）不得同時被標記為喜好與厭惡
func ValidatePreferences(prefs *common.UserPreferences) error {
	if prefs == nil || strings.TrimSpace(prefs.UserID) == "" {
		return common.NewValidationError("preference document must carry a user_id")
	}

	seen := make(map[string]bool, len(prefs.Ingredients))
	for _, ing := range prefs.Ingredients {
		name := strings.ToLower(ing.Name)
		if liked, exists := seen[name]; exists && liked != ing.Liked {
			return common.NewValidationError(fmt.Sprintf("contradictory preference for ingredient: %s", ing.Name))
		}
		seen[name] = ing.Liked
	}

	return nil
}
