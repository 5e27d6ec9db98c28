package validate

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"
)

// Schema is an ordered set of top-level fields.
type Schema struct {
	fields []*Field
}

// New builds a schema. Field order decides which error is "first".
func New(fields ...*Field) *Schema {
	return &Schema{fields: fields}
}

// Validate checks raw (the output of a generic JSON decode) against the
// schema. The returned error, when non-nil, is always *Errors.
func (s *Schema) Validate(raw any) (Values, error) {
	errs := &Errors{}
	obj, ok := raw.(map[string]any)
	if !ok {
		errs.Add(RootPath, "Invalid request body")
		return nil, errs
	}
	out := validateObject(s.fields, obj, "", errs)
	if errs.Len() > 0 {
		return nil, errs
	}
	return out, nil
}

func validateObject(fields []*Field, obj map[string]any, prefix string, errs *Errors) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		path := f.name
		if prefix != "" {
			path = prefix + "." + f.name
		}
		v, ok := f.check(obj[f.name], path, errs)
		if ok {
			out[f.name] = v
		}
	}
	return out
}

// check returns the normalized value and whether it should be stored.
func (f *Field) check(raw any, path string, errs *Errors) (any, bool) {
	if isAbsent(raw) {
		if f.required {
			errs.Add(path, f.requiredMsg)
			return nil, false
		}
		if f.hasDef {
			return f.def, true
		}
		return nil, false
	}

	switch f.kind {
	case KindString, KindEmail, KindPhone, KindEnum:
		s, ok := raw.(string)
		if !ok {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		return f.checkString(strings.TrimSpace(s), path, errs)
	case KindInt, KindNumber:
		n, ok := toNumber(raw)
		if !ok || (f.kind == KindInt && n != math.Trunc(n)) {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		if f.hasMin && n < f.min {
			errs.Add(path, f.minMsg)
			return nil, false
		}
		if f.hasMax && n > f.max {
			errs.Add(path, f.maxMsg)
			return nil, false
		}
		if f.kind == KindInt {
			return int64(n), true
		}
		return n, true
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		return b, true
	case KindList:
		return f.checkList(raw, path, errs)
	case KindObject:
		obj, ok := raw.(map[string]any)
		if !ok {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		before := errs.Len()
		vals := validateObject(f.fields, obj, path, errs)
		return vals, errs.Len() == before
	}
	errs.Add(path, f.invalidMsg)
	return nil, false
}

func (f *Field) checkString(s, path string, errs *Errors) (any, bool) {
	n := utf8.RuneCountInString(s)
	if f.minLen > 0 && n < f.minLen {
		errs.Add(path, f.minLenMsg)
		return nil, false
	}
	if f.maxLen > 0 && n > f.maxLen {
		errs.Add(path, f.maxLenMsg)
		return nil, false
	}
	if f.pattern != nil && !f.pattern.MatchString(s) {
		errs.Add(path, f.patternMsg)
		return nil, false
	}

	switch f.kind {
	case KindEmail:
		s = strings.ToLower(s)
		if !emailPattern.MatchString(s) {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
	case KindPhone:
		if !phonePattern.MatchString(s) {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		s = normalizePhone(s)
	case KindEnum:
		if !contains(f.enum, s) {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
	}
	return s, true
}

func (f *Field) checkList(raw any, path string, errs *Errors) (any, bool) {
	items, ok := raw.([]any)
	if !ok {
		errs.Add(path, f.invalidMsg)
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			errs.Add(path, f.invalidMsg)
			return nil, false
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) < f.minItems {
		errs.Add(path, f.itemsMsg)
		return nil, false
	}
	if f.maxItems > 0 && len(out) > f.maxItems {
		errs.Add(path, "Too many items")
		return nil, false
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case float64:
		n = t
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
