package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBigDecimal struct {
	digits   []int
	exponent int
	sign     int
}

func (f fakeBigDecimal) Digits() []int   { return f.digits }
func (f fakeBigDecimal) Exponent() int   { return f.exponent }
func (f fakeBigDecimal) Sign() int       { return f.sign }
func (f fakeBigDecimal) ToFixed() string { return "" }

// =============================================================================
// IsValidDecimalInput
// =============================================================================

func TestIsValidDecimalInput(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{"int", 42, true},
		{"negative int64", int64(-7), true},
		{"uint8", uint8(3), true},
		{"float", 19.99, true},
		{"float infinity", math.Inf(1), true},
		{"float NaN", math.NaN(), true},
		{"json number", json.Number("12.50"), true},
		{"plain string", "12.50", true},
		{"leading dot", ".5", true},
		{"negative exponent", "-1.5e-3", true},
		{"binary", "0b1011", true},
		{"octal", "0o17", true},
		{"hex with fraction and exponent", "0x1.8p1", true},
		{"Infinity", "Infinity", true},
		{"negative Infinity", "-Infinity", true},
		{"NaN", "NaN", true},
		{"shopspring decimal", decimal.RequireFromString("3.14"), true},
		{"decimal-like value", fakeBigDecimal{digits: []int{1, 5}, exponent: 0, sign: 1}, true},
		{"decoded object", map[string]any{"digits": []any{1.0, 5.0}, "exponent": 0.0, "sign": -1.0}, true},
		{"bool", true, false},
		{"nil", nil, false},
		{"array", []any{1, 2}, false},
		{"object without digits", map[string]any{"exponent": 0.0, "sign": 1.0}, false},
		{"object with bad digit", map[string]any{"digits": []any{12.0}, "exponent": 0.0, "sign": 1.0}, false},
		{"object with zero sign", map[string]any{"digits": []any{1.0}, "exponent": 0.0, "sign": 0.0}, false},
		{"empty string", "", false},
		{"word", "twelve", false},
		{"trailing dot", "12.", false},
		{"json number with hex", json.Number("0x10"), false},
		{"decimal-like with no digits", fakeBigDecimal{sign: 1}, false},
		{"struct without ToFixed", struct{ Digits []int }{Digits: []int{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.IsValidDecimalInput(tt.input))
		})
	}
}

// =============================================================================
// Conversion
// =============================================================================

func TestDecimal_BigDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"plain", "12.50", "12.5"},
		{"leading dot", ".25", "0.25"},
		{"scientific", "1.5e3", "1500"},
		{"negative", "-0.001", "-0.001"},
		{"binary", "0b1011", "11"},
		{"binary fraction", "0b0.1", "0.5"},
		{"octal", "0o17", "15"},
		{"hex", "0xff", "255"},
		{"hex with exponent", "0x1.8p1", "3"},
		{"hex with negative exponent", "0x1p-3", "0.125"},
		{"negative hex", "-0x10", "-16"},
		{"object", fakeBigDecimal{digits: []int{1, 9, 9, 9}, exponent: 1, sign: 1}, "19.99"},
		{"negative object", fakeBigDecimal{digits: []int{2, 5}, exponent: -1, sign: -1}, "-0.25"},
		{"int", 1200, "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := domain.NewDecimalFromInput(tt.input)
			require.NoError(t, err)
			v, err := d.BigDecimal()
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(v), "got %s", v)
		})
	}
}

func TestDecimal_NonFinite(t *testing.T) {
	for _, s := range []string{"Infinity", "-Infinity", "NaN"} {
		d, err := domain.ParseDecimalString(s)
		require.NoError(t, err)
		assert.True(t, d.IsValid())
		assert.False(t, d.IsFinite())

		_, err = d.BigDecimal()
		assert.ErrorIs(t, err, domain.ErrNonFiniteDecimal)
		assert.Equal(t, s, d.ToFixed())
	}
}

func TestDecimal_ZeroValueIsInvalid(t *testing.T) {
	var d domain.Decimal
	assert.False(t, d.IsValid())
	assert.Equal(t, domain.DecimalInvalid, d.Kind())
	_, err := d.BigDecimal()
	assert.ErrorIs(t, err, domain.ErrInvalidDecimal)
}

func TestDecimal_Equal(t *testing.T) {
	a := domain.MustDecimal("1.50")
	b, err := domain.NewDecimalObject([]int{1, 5}, 0, 1)
	require.NoError(t, err)
	c, err := domain.NewDecimalNumber("1.5")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(c))
	assert.False(t, a.Equal(domain.MustDecimal("1.51")))
	assert.False(t, a.Equal(domain.Decimal{}))
}

// =============================================================================
// JSON
// =============================================================================

func TestDecimal_JSONKeepsEncoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind domain.DecimalKind
	}{
		{"number", `12.5`, domain.DecimalNumber},
		{"string", `"0x1f"`, domain.DecimalString},
		{"object", `{"digits":[1,2,5],"exponent":1,"sign":1}`, domain.DecimalObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d domain.Decimal
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.Equal(t, tt.kind, d.Kind())

			out, err := json.Marshal(d)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestDecimal_UnmarshalInvalidLeavesZero(t *testing.T) {
	for _, raw := range []string{`true`, `[1]`, `"abc"`, `{"digits":[1]}`, `null`} {
		d := domain.MustDecimal("1")
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.False(t, d.IsValid(), raw)

		_, err := domain.ParseDecimalJSON([]byte(raw))
		assert.ErrorIs(t, err, domain.ErrInvalidDecimal, raw)
	}
}

// =============================================================================
// SQL
// =============================================================================

func TestDecimal_ValueAndScan(t *testing.T) {
	obj, err := domain.NewDecimalObject([]int{4, 2}, 0, -1)
	require.NoError(t, err)

	v, err := obj.Value()
	require.NoError(t, err)
	assert.Equal(t, "-4.2", v)

	var scanned domain.Decimal
	require.NoError(t, scanned.Scan("-4.20"))
	assert.True(t, scanned.Equal(obj))
	assert.Equal(t, domain.DecimalNumber, scanned.Kind())

	_, err = domain.MustDecimal("NaN").Value()
	assert.ErrorIs(t, err, domain.ErrNonFiniteDecimal)
}

func TestDecimal_ScanKeepsPrecision(t *testing.T) {
	const long = "12345678901234567890.123456789012345678901"

	v, err := domain.MustDecimal(long).Value()
	require.NoError(t, err)
	assert.Equal(t, long, v)

	for _, src := range []any{long, []byte(long)} {
		var d domain.Decimal
		require.NoError(t, d.Scan(src))
		assert.Equal(t, long, d.String())
	}

	var whole domain.Decimal
	require.NoError(t, whole.Scan(int64(42)))
	assert.Equal(t, "42", whole.String())

	var widened domain.Decimal
	assert.ErrorIs(t, widened.Scan(12.5), domain.ErrInvalidDecimal)
	assert.ErrorIs(t, widened.Scan(nil), domain.ErrInvalidDecimal)
}
