// Package optional distinguishes an omitted JSON key from one explicitly set to null.
package optional

import "encoding/json"

// String tracks whether a JSON key was present. Value is nil for an explicit null.
type String struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the key is present, including for null.
func (s *String) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = nil
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.Value = &v
	return nil
}

// MarshalJSON renders the value, or null when unset.
func (s String) MarshalJSON() ([]byte, error) {
	if !s.Set || s.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*s.Value)
}

// Or returns the provided value when the key was present, else fallback.
func (s String) Or(fallback *string) *string {
	if s.Set {
		return s.Value
	}
	return fallback
}

// Of builds a present value.
func Of(v string) String {
	return String{Set: true, Value: &v}
}
