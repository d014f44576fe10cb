package recipe

import (
	"context"

	"recipe-agent/internal/core/ai/provider"
	"recipe-agent/internal/pkg/common"

	"go.uber.org/zap"
)

// Pipeline 食譜生成管線
// 串接偏好視圖、提示詞、模型呼叫、回覆解析與驗證
// 模型與解析失敗吸收為空結果；輸入與設定錯誤原樣向上拋出
type Pipeline struct {
	builder        *PromptBuilder
	invoker        *ModelInvoker
	parser         *ResponseParser
	minIngredients int
	hook           DecisionHook
}

// PipelineOption 管線選項
type PipelineOption func(*Pipeline)

// WithPipelineDecisionHook 設定管線層的決策回呼
func WithPipelineDecisionHook(hook DecisionHook) PipelineOption {
	return func(p *Pipeline) {
		p.hook = hook
	}
}

// NewPipeline 創建食譜生成管線
func NewPipeline(p provider.Provider, minIngredients int, opts ...PipelineOption) *Pipeline {
	parser := NewResponseParser()

	pipeline := &Pipeline{
		builder:        NewPromptBuilder(parser.FormatInstructions()),
		invoker:        NewModelInvoker(p),
		parser:         parser,
		minIngredients: minIngredients,
	}
	for _, opt := range opts {
		opt(pipeline)
	}

	return pipeline
}

// GenerateCandidates 依三組食材清單產生未經驗證的候選食譜集合
// 模型或解析失敗回傳空集合與 nil 錯誤；無效輸入回傳 InputError，
// 且保證不會觸發任何模型呼叫
func (p *Pipeline) GenerateCandidates(ctx context.Context, available, liked, disliked []string) (common.RecipeCollection, error) {
	prompt, err := p.builder.Build(available, liked, disliked)
	if err != nil {
		return common.RecipeCollection{}, err
	}

	for label, list := range map[string][]string{
		"available": available,
		"liked":     liked,
		"disliked":  disliked,
	} {
		if len(list) == 0 {
			p.hook.emit(DecisionEvent{
				Stage:    StagePrompt,
				Accepted: true,
				Reason:   "no " + label + " ingredients provided",
			})
		}
	}

	text, err := p.invoker.Invoke(ctx, prompt)
	if err != nil {
		common.LogError("食譜生成失敗，回傳空結果",
			zap.Error(err),
		)
		return emptyCollection(), nil
	}

	return p.parser.Parse(text), nil
}

// GenerateRecipes 依偏好紀錄產生並驗證食譜
// 回傳通過驗證的食譜清單，可能為空但絕不為 nil
// InputError 與 ConfigError 向上拋出，模型與解析失敗降級為空清單
func (p *Pipeline) GenerateRecipes(ctx context.Context, prefs *common.UserPreferences) ([]common.Recipe, error) {
	liked, disliked, available := PreferenceView(prefs)

	candidates, err := p.GenerateCandidates(ctx, common.FormatAvailableIngredients(available), liked, disliked)
	if err != nil {
		return nil, err
	}

	// 驗證器於生成後建構，設定缺陷原樣向上拋出
	validator, err := NewRecipeValidator(available, disliked, p.minIngredients, WithDecisionHook(p.hook))
	if err != nil {
		return nil, err
	}

	valid := validator.ValidateRecipes(candidates.Recipes)

	common.LogInfo("食譜生成完成",
		zap.Int("candidate_count", candidates.Len()),
		zap.Int("valid_count", len(valid)),
	)

	return valid, nil
}
