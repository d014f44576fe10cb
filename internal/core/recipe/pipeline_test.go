package recipe

import (
	"context"
	"errors"
	"testing"

	"recipe-agent/internal/core/ai/provider"
	"recipe-agent/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 測試替身，記錄呼叫次數與最後送出的提示詞
type fakeProvider struct {
	reply      *provider.Reply
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string) (*provider.Reply, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Model() string { return "fake/model" }

func (f *fakeProvider) Close() error { return nil }

func testPreferences() *common.UserPreferences {
	return &common.UserPreferences{
		UserID: "user-1",
		Ingredients: []common.Ingredient{
			{Name: "butter", Liked: true},
			{Name: "egg", Liked: false},
		},
		AvailableIngredients: []common.AvailableIngredient{
			{Name: "flour", Quantity: "500", Unit: "g"},
			{Name: "sugar", Quantity: "200", Unit: "g"},
			{Name: "butter", Quantity: "100", Unit: "g"},
		},
	}
}

func TestGenerateRecipesHappyPath(t *testing.T) {
	fp := &fakeProvider{reply: &provider.Reply{Content: sampleReply}}
	p := NewPipeline(fp, 2)

	valid, err := p.GenerateRecipes(context.Background(), testPreferences())
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, "Pancakes", valid[0].Name)

	assert.Equal(t, 1, fp.calls)
	assert.Contains(t, fp.lastPrompt, "available ingredients: [flour (500), sugar (200), butter (100)]")
	assert.Contains(t, fp.lastPrompt, "liked ingredients [butter]")
	assert.Contains(t, fp.lastPrompt, "disliked ingredients [egg]")
}

func TestGenerateRecipesModelFailureDegradesToEmpty(t *testing.T) {
	fp := &fakeProvider{err: errors.New("connection refused")}
	p := NewPipeline(fp, 2)

	valid, err := p.GenerateRecipes(context.Background(), testPreferences())
	require.NoError(t, err)
	require.NotNil(t, valid)
	assert.Empty(t, valid)
}

func TestGenerateRecipesGarbageReplyDegradesToEmpty(t *testing.T) {
	fp := &fakeProvider{reply: &provider.Reply{Content: "no json here"}}
	p := NewPipeline(fp, 2)

	valid, err := p.GenerateRecipes(context.Background(), testPreferences())
	require.NoError(t, err)
	require.NotNil(t, valid)
	assert.Empty(t, valid)
}

func TestGenerateRecipesBlankIngredientIsInputError(t *testing.T) {
	fp := &fakeProvider{reply: &provider.Reply{Content: sampleReply}}
	p := NewPipeline(fp, 2)

	prefs := testPreferences()
	prefs.Ingredients = append(prefs.Ingredients, common.Ingredient{Name: "  ", Liked: true})

	_, err := p.GenerateRecipes(context.Background(), prefs)
	require.Error(t, err)
	assert.True(t, common.IsInputError(err))
	// 輸入錯誤必須在任何模型呼叫之前攔截
	assert.Equal(t, 0, fp.calls)
}

func TestGenerateRecipesEmptyInventoryIsConfigError(t *testing.T) {
	fp := &fakeProvider{reply: &provider.Reply{Content: sampleReply}}
	p := NewPipeline(fp, 2)

	prefs := testPreferences()
	prefs.AvailableIngredients = nil

	_, err := p.GenerateRecipes(context.Background(), prefs)
	require.Error(t, err)
	assert.True(t, common.IsConfigError(err))
	// 驗證器於生成後建構，模型仍會被呼叫一次
	assert.Equal(t, 1, fp.calls)
}

func TestGenerateRecipesEmitsDecisionEvents(t *testing.T) {
	var events []DecisionEvent
	fp := &fakeProvider{reply: &provider.Reply{Content: sampleReply}}
	p := NewPipeline(fp, 2, WithPipelineDecisionHook(func(e DecisionEvent) {
		events = append(events, e)
	}))

	prefs := testPreferences()
	prefs.AvailableIngredients = []common.AvailableIngredient{
		{Name: "flour", Quantity: "500", Unit: "g"},
		{Name: "milk", Quantity: "500", Unit: "ml"},
	}

	valid, err := p.GenerateRecipes(context.Background(), prefs)
	require.NoError(t, err)
	require.Len(t, valid, 1)

	require.NotEmpty(t, events)
	assert.Equal(t, StageAccepted, events[len(events)-1].Stage)
}

func TestGenerateRecipesReportsEmptyPromptLists(t *testing.T) {
	var promptEvents []DecisionEvent
	fp := &fakeProvider{reply: &provider.Reply{Content: sampleReply}}
	p := NewPipeline(fp, 2, WithPipelineDecisionHook(func(e DecisionEvent) {
		if e.Stage == StagePrompt {
			promptEvents = append(promptEvents, e)
		}
	}))

	prefs := testPreferences()
	prefs.Ingredients = []common.Ingredient{{Name: "butter", Liked: true}} // 無厭惡食材

	_, err := p.GenerateRecipes(context.Background(), prefs)
	require.NoError(t, err)

	require.Len(t, promptEvents, 1)
	assert.True(t, promptEvents[0].Accepted)
	assert.Contains(t, promptEvents[0].Reason, "disliked")
}

func TestPreferenceViewSplitsByLiked(t *testing.T) {
	liked, disliked, available := PreferenceView(testPreferences())

	assert.Equal(t, []string{"butter"}, liked)
	assert.Equal(t, []string{"egg"}, disliked)
	assert.Len(t, available, 3)
}

func TestPreferenceViewNilPreferences(t *testing.T) {
	liked, disliked, available := PreferenceView(nil)

	assert.Nil(t, liked)
	assert.Nil(t, disliked)
	assert.Nil(t, available)
}
