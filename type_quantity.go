package finlit

import "github.com/shopspring/decimal"

// newDecimal converts any supported numeric type to a decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case decimal.Decimal:
		return v
	}
	panic("unsupported type")
}

// Quantity represents a number of stock units.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) String() string                  { return q.value.String() }
func (q Quantity) IsZero() bool                    { return q.value.IsZero() }
func (q Quantity) IsPositive() bool                { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool                { return q.value.IsNegative() }
func (q Quantity) Equal(r Quantity) bool           { return q.value.Equal(r.value) }
func (q Quantity) LessThan(r Quantity) bool        { return q.value.LessThan(r.value) }
func (q Quantity) GreaterThan(r Quantity) bool     { return q.value.GreaterThan(r.value) }
func (q Quantity) Add(r Quantity) Quantity         { return Quantity{value: q.value.Add(r.value)} }
func (q Quantity) Sub(r Quantity) Quantity         { return Quantity{value: q.value.Sub(r.value)} }
func (q Quantity) Neg() Quantity                   { return Quantity{value: q.value.Neg()} }
func (q Quantity) IntPart() int64                  { return q.value.IntPart() }

func (q Quantity) MarshalJSON() ([]byte, error)  { return q.value.MarshalJSON() }
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
