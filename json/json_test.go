package json

import (
	encjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	dict := map[string]interface{}{
		"n":        float64(2500),
		"yamlInt":  42,
		"int64":    int64(-3),
		"seed":     "18446744073709551615",
		"ratio":    " 0.25 ",
		"type":     "Normal(0, 1)",
		"plot":     true,
		"report":   "false",
		"density":  map[string]interface{}{"type": "Beta(2, 5)"},
		"yamlDict": map[interface{}]interface{}{"type": "exp"},
		"bad":      "many",
		"bigInt":   9007199254740993,
		"number":   encjson.Number("9007199254740995"),
	}

	assert.Equal(t, 2500.0, Float("n", dict, 0))
	assert.Equal(t, 42.0, Float("yamlInt", dict, 0))
	assert.Equal(t, -3.0, Float("int64", dict, 0))
	assert.Equal(t, 0.25, Float("ratio", dict, 0))
	assert.Equal(t, 7.5, Float("missing", dict, 7.5))
	assert.Equal(t, 1.5, Float("bad", dict, 1.5))

	assert.Equal(t, 2500, Int("n", dict, 0))
	assert.Equal(t, 9, Int("missing", dict, 9))

	assert.Equal(t, uint64(2500), Uint("n", dict))
	assert.Equal(t, uint64(18446744073709551615), Uint("seed", dict))
	assert.Equal(t, uint64(0), Uint("int64", dict))
	assert.Equal(t, uint64(0), Uint("missing", dict))
	assert.Equal(t, uint64(42), Uint("yamlInt", dict))
	assert.Equal(t, uint64(9007199254740993), Uint("bigInt", dict))
	assert.Equal(t, uint64(9007199254740995), Uint("number", dict))
	assert.Equal(t, 9007199254740995.0, Float("number", dict, 0))

	assert.Equal(t, "Normal(0, 1)", String("type", dict))
	assert.Equal(t, "", String("n", dict))

	assert.True(t, Boolean("plot", dict))
	assert.False(t, Boolean("report", dict))
	assert.False(t, Boolean("missing", dict))

	assert.Equal(t, "Beta(2, 5)", String("type", Map("density", dict)))
	assert.Equal(t, "exp", String("type", Map("yamlDict", dict)))
	assert.Nil(t, Map("type", dict))
	assert.Nil(t, Map("missing", dict))
}
