package richtext

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Attribute values arrive as decoded JSON, so numbers are float64 and
// absent keys are nil.

func attrString(attrs map[string]interface{}, key string) string {
	switch v := attrs[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func attrInt(attrs map[string]interface{}, key string) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}
