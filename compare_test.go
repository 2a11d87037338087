package session_test

import (
	"testing"

	session "github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	for _, valid := range []string{"==", "===", "!=", "!==", "<", "<=", ">", ">="} {
		op, err := session.ParseOperator(valid)
		require.NoError(t, err, "operator %q", valid)
		assert.Equal(t, session.Operator(valid), op)
	}

	for _, invalid := range []string{"", "=", "=>", "~", "gte", "equals"} {
		_, err := session.ParseOperator(invalid)
		require.Error(t, err, "operator %q", invalid)
		assert.True(t, session.IsConfigError(err))
	}
}

func TestCompareLooseEquality(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{"bool true", true, true, true},
		{"bool false vs true", false, true, false},
		{"missing claim vs true", nil, true, false},
		{"number vs numeric string", 5, "5", true},
		{"int vs float", 3, 3.0, true},
		{"bool vs one", true, 1, true},
		{"string match", "admin", "admin", true},
		{"string mismatch", "admin", "user", false},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.Compare(tc.actual, session.OpEqual, tc.expected))
			assert.Equal(t, !tc.want, session.Compare(tc.actual, session.OpNotEqual, tc.expected))
		})
	}
}

func TestCompareStrictEquality(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{"same string", "admin", "admin", true},
		{"same bool", true, true, true},
		{"bool vs number", true, 1, false},
		{"number vs numeric string", 5, "5", false},
		// claims round-trip through JSON, so numeric kinds are unified
		{"int vs float same value", int64(3), 3.0, true},
		{"int vs float different value", int64(3), 4.0, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs false", nil, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.Compare(tc.actual, session.OpStrictEqual, tc.expected))
			assert.Equal(t, !tc.want, session.Compare(tc.actual, session.OpStrictNotEqual, tc.expected))
		})
	}
}

func TestCompareOrdering(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		op       session.Operator
		expected any
		want     bool
	}{
		{"greater passes", 4, session.OpGreater, 3, true},
		{"greater equal boundary fails", 3, session.OpGreater, 3, false},
		{"greater or equal boundary", 3, session.OpGreaterOrEqual, 3, true},
		{"less", 2, session.OpLess, 3, true},
		{"less fails", 5, session.OpLess, 3, false},
		{"less or equal", 3, session.OpLessOrEqual, 3, true},
		{"float claim from json", 4.0, session.OpGreater, 3, true},
		{"numeric strings compare numerically", "10", session.OpGreater, "9", true},
		{"plain strings compare lexicographically", "beta", session.OpGreater, "alpha", true},
		{"incomparable pair", "alpha", session.OpGreater, 3, false},
		{"missing claim", nil, session.OpGreater, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.Compare(tc.actual, tc.op, tc.expected))
		})
	}
}
