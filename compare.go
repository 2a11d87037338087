package session

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Operator identifies one of the relational checks supported by claim guards.
type Operator string

const (
	OpEqual          Operator = "=="
	OpStrictEqual    Operator = "==="
	OpNotEqual       Operator = "!="
	OpStrictNotEqual Operator = "!=="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

// ParseOperator validates an operator eagerly so a misconfigured guard fails
// at construction time, never mid-request.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEqual, OpStrictEqual, OpNotEqual, OpStrictNotEqual,
		OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return op, nil
	}
	return "", newConfigError(fmt.Sprintf("unknown claim operator: %q", s))
}

// Compare evaluates a single relational check between a claim value and an
// expected value.
//
// Coercion contract: loose equality compares numerically when both sides
// coerce to float64 (any Go numeric, a numeric string, or a bool as 0/1) and
// otherwise compares the fmt.Sprint forms. Strict equality additionally
// requires both sides to be of the same kind after numbers are unified to
// float64; claims round-trip through JSON, so int64(3) and float64(3) are
// strictly equal on purpose. Ordering operators compare numerically when both
// sides coerce and lexicographically when both are strings; anything else is
// incomparable and yields false.
func Compare(actual any, op Operator, expected any) bool {
	switch op {
	case OpEqual:
		return looseEqual(actual, expected)
	case OpNotEqual:
		return !looseEqual(actual, expected)
	case OpStrictEqual:
		return strictEqual(actual, expected)
	case OpStrictNotEqual:
		return !strictEqual(actual, expected)
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		cmp, ok := order(actual, expected)
		if !ok {
			return false
		}
		switch op {
		case OpLess:
			return cmp < 0
		case OpLessOrEqual:
			return cmp <= 0
		case OpGreater:
			return cmp > 0
		default:
			return cmp >= 0
		}
	}
	return false
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		return an == bn
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if isNumeric(a) || isNumeric(b) {
		return isNumeric(a) && isNumeric(b) && aok && bok && an == bn
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// order reports -1, 0, or 1 for a against b, with ok=false when the pair is
// incomparable under the documented contract.
func order(a, b any) (int, bool) {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// toNumber coerces a value to float64 using the documented contract: Go
// numerics directly, bools as 0/1, strings through strconv.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
