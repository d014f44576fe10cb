package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1} {"b": 2}`, &v)
	assert.Error(t, err)
}

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	var r Recipe
	err := ParseJSONStrict(`{"name": "Toast", "surprise": true}`, &r)
	assert.Error(t, err)
}

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"unquoted object keys",
			`{name: "Toast", cooking_time: "5 minutes"}`,
			`{"name": "Toast", "cooking_time": "5 minutes"}`,
		},
		{
			"already quoted keys untouched",
			`{"name": "Toast"}`,
			`{"name": "Toast"}`,
		},
		{
			"colon inside string value untouched",
			`{"steps": ["note: keep warm"]}`,
			`{"steps": ["note: keep warm"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteJSONKeys(tt.in))
		})
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	data, err := ToJSON(Recipe{Name: "Toast"})
	require.NoError(t, err)
	assert.Contains(t, data, `"name":"Toast"`)
}

func TestFormatAvailableIngredients(t *testing.T) {
	got := FormatAvailableIngredients([]AvailableIngredient{
		{Name: "flour", Quantity: "500", Unit: "g"},
		{Name: "sugar", Quantity: "200"},
	})
	assert.Equal(t, []string{"flour (500)", "sugar (200)"}, got)
}

func TestStringSliceToString(t *testing.T) {
	assert.Equal(t, "", StringSliceToString(nil))
	assert.Equal(t, "a, b", StringSliceToString([]string{"a", "b"}))
}
