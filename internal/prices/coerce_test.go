package prices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "BOPF", CoerceString("  BOPF "))
	assert.Equal(t, "", CoerceString(" \t "))
	assert.Equal(t, "A B", CoerceString("A B"))
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1200", 1200},
		{"1,200", 1200},
		{" 1,234,567.5 ", 1234567.5},
		{"0", 0},
		{"-12.25", -12.25},
		{"0.000125", 0.000125},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		got := CoerceNumber(tt.input)
		require.NotNil(t, got, "CoerceNumber(%q)", tt.input)
		assert.Equal(t, tt.expected, *got, "CoerceNumber(%q)", tt.input)
	}
}

func TestCoerceNumber_SeparatorFreeFormsAgree(t *testing.T) {
	for _, pair := range [][2]string{{"1,200", "1200"}, {"12,345.67", "12345.67"}, {"1,0,0", "100"}} {
		a, b := CoerceNumber(pair[0]), CoerceNumber(pair[1])
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, *b, *a)
	}
}

func TestCoerceNumber_AbsentNotZero(t *testing.T) {
	for _, in := range []string{"", "   ", ",", "n/a", "abc", "-", "NaN", "Inf", "Infinity", "1e400", "12kg"} {
		assert.Nil(t, CoerceNumber(in), "CoerceNumber(%q) should be absent", in)
	}
}
