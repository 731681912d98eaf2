package storable

// StringStorable wraps Storable[string] with convenience methods for string operations.
type StringStorable struct {
	*Storable[string]
}

// NewString creates a new StringStorable with the given initial value.
func NewString(initial string) *StringStorable {
	return &StringStorable{New(initial)}
}

// Append adds the given string to the end.
func (s *StringStorable) Append(suffix string) {
	s.Update(func(v string) string { return v + suffix })
}

// Prepend adds the given string to the beginning.
func (s *StringStorable) Prepend(prefix string) {
	s.Update(func(v string) string { return prefix + v })
}

// Clear sets the value to an empty string.
func (s *StringStorable) Clear() {
	s.Set("")
}

// Len returns the length of the string.
func (s *StringStorable) Len() int {
	return len(s.Get())
}

// IsEmpty returns true if the string is empty.
func (s *StringStorable) IsEmpty() bool {
	return s.Get() == ""
}
