package preference

import (
	"context"
	"os"
	"testing"
	"time"

	"recipe-agent/internal/infrastructure/config"
	"recipe-agent/internal/pkg/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name    string
		prefs   *common.UserPreferences
		wantErr bool
	}{
		{
			name:    "nil document",
			prefs:   nil,
			wantErr: true,
		},
		{
			name:    "missing user_id",
			prefs:   &common.UserPreferences{UserID: "  "},
			wantErr: true,
		},
		{
			name: "valid document",
			prefs: &common.UserPreferences{
				UserID: "user-1",
				Ingredients: []common.Ingredient{
					{Name: "butter", Liked: true},
					{Name: "egg", Liked: false},
				},
			},
			wantErr: false,
		},
		{
			name: "contradictory preference",
			prefs: &common.UserPreferences{
				UserID: "user-1",
				Ingredients: []common.Ingredient{
					{Name: "butter", Liked: true},
					{Name: "butter", Liked: false},
				},
			},
			wantErr: true,
		},
		{
			name: "contradiction is case-insensitive",
			prefs: &common.UserPreferences{
				UserID: "user-1",
				Ingredients: []common.Ingredient{
					{Name: "Butter", Liked: true},
					{Name: "butter", Liked: false},
				},
			},
			wantErr: true,
		},
		{
			name: "repeated consistent preference",
			prefs: &common.UserPreferences{
				UserID: "user-1",
				Ingredients: []common.Ingredient{
					{Name: "butter", Liked: true},
					{Name: "Butter", Liked: true},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreferences(tt.prefs)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// newTestStore 需要可連線的 Redis，未設定 REDIS_ADDR 時跳過
func newTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping store integration tests")
	}

	store, err := NewStore(&config.StoreConfig{
		Addr:        addr,
		KeyPrefix:   "pref_test",
		DialTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testDocument() *common.UserPreferences {
	return &common.UserPreferences{
		UserID: "test-" + uuid.NewString(),
		Ingredients: []common.Ingredient{
			{Name: "butter", Liked: true},
			{Name: "egg", Liked: false},
		},
		AvailableIngredients: []common.AvailableIngredient{
			{Name: "flour", Quantity: "500", Unit: "g"},
		},
	}
}

func TestStoreInsertGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs := testDocument()
	require.NoError(t, store.Insert(ctx, prefs))
	t.Cleanup(func() { _, _ = store.Delete(ctx, prefs.UserID) })

	got, err := store.Get(ctx, prefs.UserID)
	require.NoError(t, err)
	assert.Equal(t, prefs.UserID, got.UserID)
	assert.Equal(t, prefs.Ingredients, got.Ingredients)
	assert.Equal(t, prefs.AvailableIngredients, got.AvailableIngredients)

	found, err := store.Delete(ctx, prefs.UserID)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = store.Get(ctx, prefs.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreInsertRejectsDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs := testDocument()
	require.NoError(t, store.Insert(ctx, prefs))
	t.Cleanup(func() { _, _ = store.Delete(ctx, prefs.UserID) })

	err := store.Insert(ctx, prefs)
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs := testDocument()
	require.NoError(t, store.Insert(ctx, prefs))
	t.Cleanup(func() { _, _ = store.Delete(ctx, prefs.UserID) })

	prefs.Ingredients = []common.Ingredient{{Name: "milk", Liked: true}}
	require.NoError(t, store.Save(ctx, prefs))

	got, err := store.Get(ctx, prefs.UserID)
	require.NoError(t, err)
	assert.Equal(t, prefs.Ingredients, got.Ingredients)
}

func TestStoreDeleteMissingUser(t *testing.T) {
	store := newTestStore(t)

	found, err := store.Delete(context.Background(), "no-such-user-"+uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}
