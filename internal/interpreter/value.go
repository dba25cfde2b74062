package interpreter

import (
	"fmt"
	"math"
	"strconv"
)

// isTruthy follows the language rule: nil and false are falsey,
// everything else is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual compares primitives by value and objects by identity.
// nil equals only nil, and NaN is not equal to itself.
func isEqual(a any, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return a == b
}

// stringify renders a value the way print shows it.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

// formatNumber drops the decimal point for integral values, so 2.0
// prints as "2" while 2.5 keeps its shortest exact form.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
