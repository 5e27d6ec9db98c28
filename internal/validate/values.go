package validate

// Values is the normalized output of a successful Validate. Absent optional
// fields without defaults have no key.
type Values map[string]any

// Has reports whether key holds a value.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns the string at key or "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the integer at key or 0.
func (v Values) Int(key string) int64 {
	n, _ := v[key].(int64)
	return n
}

// Float returns the number at key or 0. Integer fields are widened.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// FloatPtr returns the number at key, or nil when absent.
func (v Values) FloatPtr(key string) *float64 {
	if !v.Has(key) {
		return nil
	}
	f := v.Float(key)
	return &f
}

// Bool returns the boolean at key or false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// BoolPtr returns the boolean at key, or nil when absent.
func (v Values) BoolPtr(key string) *bool {
	b, ok := v[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// Strings returns the list at key or nil.
func (v Values) Strings(key string) []string {
	s, _ := v[key].([]string)
	return s
}

// Object returns the nested values at key or an empty Values.
func (v Values) Object(key string) Values {
	o, ok := v[key].(Values)
	if !ok {
		return Values{}
	}
	return o
}
