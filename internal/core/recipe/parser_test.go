package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `{
	"recipes": {
		"recipe_1": {
			"name": "Pancakes",
			"ingredients": [{"name": "flour", "quantity": "200"}, {"name": "milk", "quantity": "300"}],
			"steps": ["Whisk flour into milk", "Fry until golden"],
			"cooking_time": "20 minutes",
			"difficulty_level": "easy"
		}
	}
}`

func TestParseValidReply(t *testing.T) {
	p := NewResponseParser()

	col := p.Parse(sampleReply)
	require.Len(t, col.Recipes, 1)

	r, ok := col.Recipes["recipe_1"]
	require.True(t, ok)
	assert.Equal(t, "Pancakes", r.Name)
	assert.Len(t, r.Ingredients, 2)
	assert.Len(t, r.Steps, 2)
	assert.Equal(t, "20 minutes", r.CookingTime)
	assert.Equal(t, "easy", r.DifficultyLevel)
}

func TestParseReplyWithFencesAndProse(t *testing.T) {
	p := NewResponseParser()

	col := p.Parse("Here are your recipes!\n```json\n" + sampleReply + "\n```\nEnjoy!")
	assert.Len(t, col.Recipes, 1)
}

func TestParseGarbageDegradesToEmptyCollection(t *testing.T) {
	p := NewResponseParser()

	tests := []struct {
		name string
		text string
	}{
		{"plain prose", "I am sorry, I cannot produce recipes today."},
		{"truncated json", `{"recipes": {"recipe_1": {"name": "Panc`},
		{"empty reply", ""},
		{"wrong shape", `{"recipes": ["not", "a", "map"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := p.Parse(tt.text)
			require.NotNil(t, col.Recipes)
			assert.Empty(t, col.Recipes)
		})
	}
}

func TestParseRepairsUnquotedKeys(t *testing.T) {
	p := NewResponseParser()

	col := p.Parse(`{recipes: {recipe_1: {name: "Toast", ingredients: [{name: "bread", quantity: "2"}], steps: ["Toast the bread"], cooking_time: "5 minutes", difficulty_level: "easy"}}}`)
	assert.Len(t, col.Recipes, 1)
}

func TestFormatInstructionsDescribeSchema(t *testing.T) {
	p := NewResponseParser()

	instructions := p.FormatInstructions()
	assert.Contains(t, instructions, `"recipes"`)
	assert.Contains(t, instructions, `"ingredients"`)
	assert.Contains(t, instructions, `"steps"`)
	assert.Contains(t, instructions, `"cooking_time"`)
	assert.Contains(t, instructions, `"difficulty_level"`)
}
