package storable

// BoolStorable wraps Storable[bool] with convenience methods for boolean operations.
type BoolStorable struct {
	*Storable[bool]
}

// NewBool creates a new BoolStorable with the given initial value.
func NewBool(initial bool) *BoolStorable {
	return &BoolStorable{New(initial)}
}

// Toggle inverts the boolean value.
func (s *BoolStorable) Toggle() {
	s.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (s *BoolStorable) SetTrue() {
	s.Set(true)
}

// SetFalse sets the value to false.
func (s *BoolStorable) SetFalse() {
	s.Set(false)
}
