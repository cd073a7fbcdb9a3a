package json

import (
	encjson "encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float returns the numeric value at key. Numbers decoded by encoding/json,
// YAML integers and numeric strings are all accepted. Missing or
// unparseable values return defaultValue.
func Float(key string, dict map[string]interface{}, defaultValue float64) float64 {
	curVal, curValOk := dict[key]
	if !curValOk {
		return defaultValue
	}
	switch typedVal := curVal.(type) {
	case float64:
		return typedVal
	case float32:
		return float64(typedVal)
	case int:
		return float64(typedVal)
	case int64:
		return float64(typedVal)
	case uint64:
		return float64(typedVal)
	case encjson.Number:
		parsed, parsedErr := typedVal.Float64()
		if parsedErr == nil {
			return parsed
		}
	case string:
		parsed, parsedErr := strconv.ParseFloat(strings.TrimSpace(typedVal), 64)
		if parsedErr == nil {
			return parsed
		}
	}
	return defaultValue
}

func Int(key string, dict map[string]interface{}, defaultValue int) int {
	floatVal := Float(key, dict, math.NaN())
	if math.IsNaN(floatVal) {
		return defaultValue
	}
	return int(floatVal)
}

// Uint returns the unsigned integer at key. Integers and integer strings
// convert exactly; other numbers go through Float and may round above 2^53.
func Uint(key string, dict map[string]interface{}) uint64 {
	curVal, curValOk := dict[key]
	if !curValOk {
		curVal = 0
	}
	switch typedVal := curVal.(type) {
	case uint64:
		return typedVal
	case uint:
		return uint64(typedVal)
	case int:
		if typedVal > 0 {
			return uint64(typedVal)
		}
		return 0
	case int64:
		if typedVal > 0 {
			return uint64(typedVal)
		}
		return 0
	case encjson.Number:
		parsed, parsedErr := strconv.ParseUint(typedVal.String(), 10, 64)
		if parsedErr == nil {
			return parsed
		}
	case string:
		// Seeds don't survive a float64 round trip, so strings are parsed
		// as integers first.
		parsed, parsedErr := strconv.ParseUint(strings.TrimSpace(typedVal), 10, 64)
		if parsedErr == nil {
			return parsed
		}
	}
	f64 := Float(key, dict, 0)
	if f64 > 0 {
		return uint64(f64)
	}
	return 0
}

func String(key string, dict map[string]interface{}) string {
	curVal, curValOk := dict[key]
	if !curValOk {
		curVal = ""
	}
	strVal, _ := curVal.(string)
	return strVal
}

func Boolean(key string, dict map[string]interface{}) bool {
	// By default, an empty string is false
	boolVal := false
	curVal, curValOk := dict[key]
	if !curValOk {
		curVal = ""
	}
	boolVal, _ = strconv.ParseBool(fmt.Sprintf("%v", curVal))
	return boolVal
}

// Map returns the nested dictionary at key, or nil.
func Map(key string, dict map[string]interface{}) map[string]interface{} {
	curVal, curValOk := dict[key]
	if !curValOk {
		return nil
	}
	switch typedVal := curVal.(type) {
	case map[string]interface{}:
		return typedVal
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(typedVal))
		for eachKey, eachValue := range typedVal {
			converted[fmt.Sprintf("%v", eachKey)] = eachValue
		}
		return converted
	}
	return nil
}
