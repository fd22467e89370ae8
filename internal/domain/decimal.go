package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Decimal errors
var (
	ErrInvalidDecimal    = errors.New("invalid decimal input")
	ErrNonFiniteDecimal  = errors.New("decimal is not finite")
	ErrDecimalOutOfRange = errors.New("decimal exponent out of range")
)

// maxBinaryExponent bounds the p-exponent of radix literals
const maxBinaryExponent = 100000

// decimalPattern is the literal grammar accepted for string-encoded decimals:
// Infinity, NaN, binary/octal/hex literals with optional fraction and binary
// exponent, and plain decimals with optional fraction and decimal exponent.
var decimalPattern = regexp.MustCompile(
	`^(?:-?Infinity|NaN|-?(?:0[bB][01]+(?:\.[01]+)?(?:[pP][-+]?\d+)?|0[oO][0-7]+(?:\.[0-7]+)?(?:[pP][-+]?\d+)?|0[xX][\da-fA-F]+(?:\.[\da-fA-F]+)?(?:[pP][-+]?\d+)?|(?:\d+|\d*\.\d+)(?:[eE][-+]?\d+)?))$`,
)

// DecimalKind identifies which input encoding a Decimal was built from
type DecimalKind int

const (
	DecimalInvalid DecimalKind = iota
	DecimalNumber
	DecimalString
	DecimalObject
)

func (k DecimalKind) String() string {
	switch k {
	case DecimalNumber:
		return "number"
	case DecimalString:
		return "string"
	case DecimalObject:
		return "object"
	}
	return "invalid"
}

// DecimalLike is implemented by arbitrary-precision values that expose their
// digits/exponent/sign representation. Digits are base-10, most significant
// first; exponent is the power of ten of the first digit.
type DecimalLike interface {
	Digits() []int
	Exponent() int
	Sign() int
	ToFixed() string
}

// Decimal is a monetary value accepted as a JSON number, a numeric string or
// a structured digits/exponent/sign object. The zero value is invalid.
type Decimal struct {
	kind     DecimalKind
	text     string
	digits   []int
	exponent int
	sign     int
}

// decimalObject is the wire form of the structured encoding
type decimalObject struct {
	Digits   *[]int `json:"digits"`
	Exponent *int   `json:"exponent"`
	Sign     *int   `json:"sign"`
}

// NewDecimalNumber builds a Decimal from a JSON number literal
func NewDecimalNumber(n json.Number) (Decimal, error) {
	s := n.String()
	if s == "" || !decimalPattern.MatchString(s) || strings.ContainsAny(s, "xXbBoOpPIN") {
		return Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidDecimal, s)
	}
	return Decimal{kind: DecimalNumber, text: s}, nil
}

// ParseDecimalString builds a Decimal from a numeric string
func ParseDecimalString(s string) (Decimal, error) {
	if !decimalPattern.MatchString(s) {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return Decimal{kind: DecimalString, text: s}, nil
}

// NewDecimalObject builds a Decimal from its structured representation
func NewDecimalObject(digits []int, exponent, sign int) (Decimal, error) {
	if len(digits) == 0 {
		return Decimal{}, fmt.Errorf("%w: digits must not be empty", ErrInvalidDecimal)
	}
	for _, d := range digits {
		if d < 0 || d > 9 {
			return Decimal{}, fmt.Errorf("%w: digit %d out of range", ErrInvalidDecimal, d)
		}
	}
	if sign != 1 && sign != -1 {
		return Decimal{}, fmt.Errorf("%w: sign must be 1 or -1", ErrInvalidDecimal)
	}
	if exponent > maxBinaryExponent || exponent < -maxBinaryExponent {
		return Decimal{}, ErrDecimalOutOfRange
	}
	cp := make([]int, len(digits))
	copy(cp, digits)
	return Decimal{kind: DecimalObject, digits: cp, exponent: exponent, sign: sign}, nil
}

// NewDecimalFromInput converts any accepted input shape into a Decimal
func NewDecimalFromInput(v any) (Decimal, error) {
	switch x := v.(type) {
	case nil:
		return Decimal{}, ErrInvalidDecimal
	case Decimal:
		if !x.IsValid() {
			return Decimal{}, ErrInvalidDecimal
		}
		return x, nil
	case *Decimal:
		if x == nil || !x.IsValid() {
			return Decimal{}, ErrInvalidDecimal
		}
		return *x, nil
	case decimal.Decimal:
		return Decimal{kind: DecimalNumber, text: x.String()}, nil
	case *decimal.Decimal:
		if x == nil {
			return Decimal{}, ErrInvalidDecimal
		}
		return Decimal{kind: DecimalNumber, text: x.String()}, nil
	case json.Number:
		return NewDecimalNumber(x)
	case string:
		return ParseDecimalString(x)
	case DecimalLike:
		return NewDecimalObject(x.Digits(), x.Exponent(), x.Sign())
	case map[string]any:
		return decimalFromMap(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Decimal{kind: DecimalNumber, text: strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Decimal{kind: DecimalNumber, text: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return decimalFromFloat(rv.Float(), rv.Type().Bits())
	}
	return Decimal{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDecimal, v)
}

// IsValidDecimalInput reports whether v is one of the accepted decimal
// encodings. A decoded map needs only digits, exponent and sign: JSON cannot
// carry a toFixed method, so that requirement applies to Go values, which
// must implement DecimalLike. Any other object is rejected.
func IsValidDecimalInput(v any) bool {
	_, err := NewDecimalFromInput(v)
	return err == nil
}

// MustDecimal parses s and panics on failure. Intended for constants and tests.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimalString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decimalFromFloat(f float64, bits int) (Decimal, error) {
	switch {
	case math.IsNaN(f):
		return Decimal{kind: DecimalNumber, text: "NaN"}, nil
	case math.IsInf(f, 1):
		return Decimal{kind: DecimalNumber, text: "Infinity"}, nil
	case math.IsInf(f, -1):
		return Decimal{kind: DecimalNumber, text: "-Infinity"}, nil
	}
	return Decimal{kind: DecimalNumber, text: strconv.FormatFloat(f, 'g', -1, bits)}, nil
}

func decimalFromMap(m map[string]any) (Decimal, error) {
	rawDigits, ok := m["digits"].([]any)
	if !ok {
		return Decimal{}, fmt.Errorf("%w: object requires digits", ErrInvalidDecimal)
	}
	exponent, ok := integerOf(m["exponent"])
	if !ok {
		return Decimal{}, fmt.Errorf("%w: object requires exponent", ErrInvalidDecimal)
	}
	sign, ok := integerOf(m["sign"])
	if !ok {
		return Decimal{}, fmt.Errorf("%w: object requires sign", ErrInvalidDecimal)
	}
	digits := make([]int, 0, len(rawDigits))
	for _, rd := range rawDigits {
		d, ok := integerOf(rd)
		if !ok {
			return Decimal{}, fmt.Errorf("%w: digits must be integers", ErrInvalidDecimal)
		}
		digits = append(digits, d)
	}
	return NewDecimalObject(digits, exponent, sign)
}

func integerOf(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != float64(int(x)) {
			return 0, false
		}
		return int(x), true
	case json.Number:
		i, err := x.Int64()
		return int(i), err == nil
	}
	return 0, false
}

// Kind returns the encoding the Decimal was built from
func (d Decimal) Kind() DecimalKind {
	return d.kind
}

// IsValid reports whether d holds a value
func (d Decimal) IsValid() bool {
	return d.kind != DecimalInvalid
}

// IsFinite reports whether d converts to a finite arbitrary-precision value
func (d Decimal) IsFinite() bool {
	if !d.IsValid() {
		return false
	}
	return !strings.HasSuffix(d.text, "Infinity") && d.text != "NaN"
}

// BigDecimal converts any finite encoding into a shopspring decimal
func (d Decimal) BigDecimal() (decimal.Decimal, error) {
	switch d.kind {
	case DecimalObject:
		coef := new(big.Int)
		for _, digit := range d.digits {
			coef.Mul(coef, big.NewInt(10))
			coef.Add(coef, big.NewInt(int64(digit)))
		}
		if d.sign < 0 {
			coef.Neg(coef)
		}
		return decimal.NewFromBigInt(coef, int32(d.exponent-len(d.digits)+1)), nil
	case DecimalNumber, DecimalString:
		if !d.IsFinite() {
			return decimal.Decimal{}, ErrNonFiniteDecimal
		}
		return parseFiniteLiteral(d.text)
	}
	return decimal.Decimal{}, ErrInvalidDecimal
}

func parseFiniteLiteral(s string) (decimal.Decimal, error) {
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")

	if len(body) > 1 && body[0] == '0' {
		var base int
		var bits int
		switch body[1] {
		case 'b', 'B':
			base, bits = 2, 1
		case 'o', 'O':
			base, bits = 8, 3
		case 'x', 'X':
			base, bits = 16, 4
		}
		if base != 0 {
			v, err := parseRadixLiteral(body[2:], base, bits)
			if err != nil {
				return decimal.Decimal{}, err
			}
			if neg {
				v = v.Neg()
			}
			return v, nil
		}
	}

	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	v, err := decimal.NewFromString(body)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

// parseRadixLiteral converts mantissa[.fraction][p exponent] in a power-of-two
// base. Every such value has a finite decimal expansion, so the result is exact.
func parseRadixLiteral(s string, base, bits int) (decimal.Decimal, error) {
	binExp := 0
	if i := strings.IndexAny(s, "pP"); i >= 0 {
		p, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		if p > maxBinaryExponent || p < -maxBinaryExponent {
			return decimal.Decimal{}, ErrDecimalOutOfRange
		}
		binExp = p
		s = s[:i]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	mantissa, ok := new(big.Int).SetString(intPart+fracPart, base)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: bad base-%d digits", ErrInvalidDecimal, base)
	}
	binExp -= len(fracPart) * bits

	if binExp >= 0 {
		return decimal.NewFromBigInt(mantissa.Lsh(mantissa, uint(binExp)), 0), nil
	}
	n := -binExp
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
	return decimal.NewFromBigInt(mantissa.Mul(mantissa, five), int32(-n)), nil
}

// ToFixed renders the value in plain decimal notation. Non-finite values
// render as their literal.
func (d Decimal) ToFixed() string {
	if !d.IsValid() {
		return ""
	}
	if !d.IsFinite() {
		return d.text
	}
	v, err := d.BigDecimal()
	if err != nil {
		return d.text
	}
	return v.String()
}

// String returns the literal the Decimal was built from
func (d Decimal) String() string {
	if d.kind == DecimalObject {
		return d.ToFixed()
	}
	return d.text
}

// Equal reports whether two decimals denote the same value regardless of encoding
func (d Decimal) Equal(other Decimal) bool {
	if !d.IsValid() || !other.IsValid() {
		return d.IsValid() == other.IsValid()
	}
	if !d.IsFinite() || !other.IsFinite() {
		return d.text == other.text
	}
	a, errA := d.BigDecimal()
	b, errB := other.BigDecimal()
	if errA != nil || errB != nil {
		return false
	}
	return a.Equal(b)
}

// MarshalJSON writes the Decimal back in the encoding it was read from
func (d Decimal) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case DecimalNumber:
		if !d.IsFinite() {
			return json.Marshal(d.text)
		}
		return []byte(d.text), nil
	case DecimalString:
		return json.Marshal(d.text)
	case DecimalObject:
		digits := d.digits
		exponent := d.exponent
		sign := d.sign
		return json.Marshal(decimalObject{Digits: &digits, Exponent: &exponent, Sign: &sign})
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a number, a numeric string or a structured object.
// Any other input decodes to an invalid Decimal so that validation can report
// it alongside the other field errors.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	parsed, err := decodeDecimal(bytes.TrimSpace(data))
	if err != nil {
		*d = Decimal{}
		return nil
	}
	*d = parsed
	return nil
}

// ParseDecimalJSON decodes a JSON value strictly, returning ErrInvalidDecimal
// for anything that is not an accepted encoding
func ParseDecimalJSON(data []byte) (Decimal, error) {
	return decodeDecimal(bytes.TrimSpace(data))
}

func decodeDecimal(data []byte) (Decimal, error) {
	if len(data) == 0 {
		return Decimal{}, ErrInvalidDecimal
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		return ParseDecimalString(s)
	case '{':
		var obj decimalObject
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&obj); err != nil {
			return Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		if obj.Digits == nil || obj.Exponent == nil || obj.Sign == nil {
			return Decimal{}, fmt.Errorf("%w: object requires digits, exponent and sign", ErrInvalidDecimal)
		}
		return NewDecimalObject(*obj.Digits, *obj.Exponent, *obj.Sign)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		return NewDecimalNumber(n)
	}
	return Decimal{}, fmt.Errorf("%w: unsupported JSON value %s", ErrInvalidDecimal, data)
}

// GormDataType keeps prices out of fixed-scale columns
func (Decimal) GormDataType() string { return "decimal" }

// GormDBDataType is an unscaled NUMERIC on postgres. Other dialects store
// the canonical text, since sqlite's NUMERIC affinity converts to REAL.
func (Decimal) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "NUMERIC"
	}
	return "TEXT"
}

// Value writes the canonical decimal text. Infinity and NaN are rejected.
func (d Decimal) Value() (driver.Value, error) {
	v, err := d.BigDecimal()
	if err != nil {
		return nil, err
	}
	return v.String(), nil
}

// Scan reads a NUMERIC or TEXT column. Floating point sources are refused
// so a value is never widened on the way in.
func (d *Decimal) Scan(src any) error {
	var text string
	switch x := src.(type) {
	case string:
		text = x
	case []byte:
		text = string(x)
	case int64:
		text = strconv.FormatInt(x, 10)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDecimal, src)
	}

	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
	}
	*d = Decimal{kind: DecimalNumber, text: v.String()}
	return nil
}
