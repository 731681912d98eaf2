package storable

// IntStorable wraps Storable[int] with convenience methods for integer operations.
type IntStorable struct {
	*Storable[int]
}

// NewInt creates a new IntStorable with the given initial value.
func NewInt(initial int) *IntStorable {
	return &IntStorable{New(initial)}
}

// Inc increments the value by 1.
func (s *IntStorable) Inc() {
	s.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (s *IntStorable) Dec() {
	s.Update(func(n int) int { return n - 1 })
}

// Add adds the given value.
func (s *IntStorable) Add(n int) {
	s.Update(func(v int) int { return v + n })
}

// Sub subtracts the given value.
func (s *IntStorable) Sub(n int) {
	s.Update(func(v int) int { return v - n })
}

// Mul multiplies by the given value.
func (s *IntStorable) Mul(n int) {
	s.Update(func(v int) int { return v * n })
}

// Div divides by the given value.
// Note: Integer division truncates toward zero.
func (s *IntStorable) Div(n int) {
	s.Update(func(v int) int { return v / n })
}

// Int64Storable wraps Storable[int64] with convenience methods for integer operations.
type Int64Storable struct {
	*Storable[int64]
}

// NewInt64 creates a new Int64Storable with the given initial value.
func NewInt64(initial int64) *Int64Storable {
	return &Int64Storable{New(initial)}
}

// Inc increments the value by 1.
func (s *Int64Storable) Inc() {
	s.Update(func(n int64) int64 { return n + 1 })
}

// Dec decrements the value by 1.
func (s *Int64Storable) Dec() {
	s.Update(func(n int64) int64 { return n - 1 })
}

// Add adds the given value.
func (s *Int64Storable) Add(n int64) {
	s.Update(func(v int64) int64 { return v + n })
}

// Sub subtracts the given value.
func (s *Int64Storable) Sub(n int64) {
	s.Update(func(v int64) int64 { return v - n })
}

// Mul multiplies by the given value.
func (s *Int64Storable) Mul(n int64) {
	s.Update(func(v int64) int64 { return v * n })
}

// Div divides by the given value.
// Note: Integer division truncates toward zero.
func (s *Int64Storable) Div(n int64) {
	s.Update(func(v int64) int64 { return v / n })
}

// Float64Storable wraps Storable[float64] with convenience methods for float operations.
type Float64Storable struct {
	*Storable[float64]
}

// NewFloat64 creates a new Float64Storable with the given initial value.
func NewFloat64(initial float64) *Float64Storable {
	return &Float64Storable{New(initial)}
}

// Add adds the given value.
func (s *Float64Storable) Add(n float64) {
	s.Update(func(v float64) float64 { return v + n })
}

// Sub subtracts the given value.
func (s *Float64Storable) Sub(n float64) {
	s.Update(func(v float64) float64 { return v - n })
}

// Mul multiplies by the given value.
func (s *Float64Storable) Mul(n float64) {
	s.Update(func(v float64) float64 { return v * n })
}

// Div divides by the given value.
func (s *Float64Storable) Div(n float64) {
	s.Update(func(v float64) float64 { return v / n })
}
