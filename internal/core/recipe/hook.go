package recipe

// 驗證階段名稱
const (
	StagePrompt    = "prompt"
	StageStructure = "structure"
	StageQuantity  = "quantity"
	StageCulinary  = "culinary"
	StageAccepted  = "accepted"
)

// DecisionEvent 管線對單一食譜的決策事件
// 由呼叫端透過 DecisionHook 接收，管線本身不保存任何決策狀態
type DecisionEvent struct {
	RecipeKey  string `json:"recipe_key"`
	RecipeName string `json:"recipe_name,omitempty"`
	Stage      string `json:"stage"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason,omitempty"`
}

// DecisionHook 呼叫端提供的決策回呼
// 為 nil 時表示呼叫端不關心決策過程
type DecisionHook func(event DecisionEvent)

// emit 發送決策事件
func (h DecisionHook) emit(event DecisionEvent) {
	if h != nil {
		h(event)
	}
}
