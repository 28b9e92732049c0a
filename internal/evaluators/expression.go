package evaluators

import (
	"strconv"
	"strings"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/internal/hostctx"
)

// Expr builds a GuardFunc from a simple "key op value" expression (e.g.
// "temp > 30", "loggedIn == true"), evaluated against the *hostctx.Context
// returned by the bound Evaluator's GetContext. A malformed expression, a
// missing key, or a type mismatch all evaluate to false — unregistered or
// broken guards fail closed, never open.
func Expr(expression string) hscx.GuardFunc {
	parts := strings.Fields(expression)
	if len(parts) != 3 {
		return func(ctx *hscx.GuardContext) bool { return false }
	}
	key, op, valStr := parts[0], parts[1], parts[2]

	return func(ctx *hscx.GuardContext) bool {
		hc, ok := ctx.Context().(*hostctx.Context)
		if !ok {
			return false
		}
		v, hasKey := hc.Get(key)
		if !hasKey {
			return false
		}
		return evalOp(v, op, valStr)
	}
}

func evalOp(v any, op, valStr string) bool {
	switch op {
	case "==":
		eq, ok := evalEq(v, valStr)
		return ok && eq
	case "!=":
		eq, ok := evalEq(v, valStr)
		return ok && !eq
	case ">":
		fVal, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return false
		}
		f, ok := v.(float64)
		return ok && f > fVal
	case "<":
		fVal, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return false
		}
		f, ok := v.(float64)
		return ok && f < fVal
	default:
		return false
	}
}

// evalEq reports whether v equals valStr and whether the two were of
// comparable types at all.
func evalEq(v any, valStr string) (equal, comparable bool) {
	switch valStr {
	case "true", "false":
		b, ok := v.(bool)
		return ok && b == (valStr == "true"), ok
	case "nil":
		return v == nil, true
	default:
		if fVal, err := strconv.ParseFloat(valStr, 64); err == nil {
			if f, ok := v.(float64); ok {
				return f == fVal, true
			}
		}
		if s, ok := v.(string); ok {
			return s == valStr, true
		}
		return false, false
	}
}
