package actions

import "fmt"

// The model sends JSON, so numbers arrive as float64 and everything may be
// missing or mistyped. These helpers normalize access so handlers stay flat.

func getString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func getInt(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("missing required argument %q", key)
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T", key, v)
	}
}

func getFloat(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
