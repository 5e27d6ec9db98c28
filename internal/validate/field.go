package validate

import "regexp"

// Kind is the declared type of a field.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindPhone
	KindInt
	KindNumber
	KindBool
	KindEnum
	KindList
	KindObject
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?)*\.[a-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-()+.]+$`)
)

// Field declares one key of a JSON object. Build fields with the
// constructors below and chain rule methods; each rule method returns the
// same *Field.
type Field struct {
	name     string
	kind     Kind
	required bool

	requiredMsg string
	invalidMsg  string

	minLen, maxLen       int
	minLenMsg, maxLenMsg string

	hasMin, hasMax bool
	min, max       float64
	minMsg, maxMsg string

	pattern    *regexp.Regexp
	patternMsg string

	enum     []string
	def      any
	hasDef   bool
	minItems int
	itemsMsg string
	maxItems int

	fields []*Field
}

func newField(name string, kind Kind, invalid string) *Field {
	return &Field{name: name, kind: kind, requiredMsg: "Required", invalidMsg: invalid}
}

// String declares a free-text field.
func String(name string) *Field { return newField(name, KindString, "Expected text") }

// Email declares an address field. Values are trimmed and lower-cased.
func Email(name string) *Field {
	f := newField(name, KindEmail, "Please enter a valid email address")
	f.requiredMsg = "Email is required"
	f.maxLen, f.maxLenMsg = 254, "Please enter a valid email address"
	return f
}

// Phone declares a phone number. Values are reduced to digits and '+'.
func Phone(name string) *Field {
	f := newField(name, KindPhone, "Please enter a valid phone number")
	f.requiredMsg = "Phone number is required"
	return f
}

// Int declares an integer-valued number.
func Int(name string) *Field { return newField(name, KindInt, "Please enter a number") }

// Number declares any finite JSON number.
func Number(name string) *Field { return newField(name, KindNumber, "Please enter a number") }

// Bool declares a JSON boolean.
func Bool(name string) *Field { return newField(name, KindBool, "Expected true or false") }

// Enum declares a string restricted to values.
func Enum(name string, values ...string) *Field {
	f := newField(name, KindEnum, "Invalid option")
	f.enum = values
	return f
}

// List declares an array of strings. Blank items are dropped.
func List(name string) *Field {
	f := newField(name, KindList, "Expected a list")
	f.maxItems = 50
	return f
}

// Object declares a nested object validated against fields.
func Object(name string, fields ...*Field) *Field {
	f := newField(name, KindObject, "Expected an object")
	f.fields = fields
	return f
}

// Name returns the JSON key of the field.
func (f *Field) Name() string { return f.name }

// Required marks the field mandatory. An empty msg keeps the default.
func (f *Field) Required(msg string) *Field {
	f.required = true
	if msg != "" {
		f.requiredMsg = msg
	}
	return f
}

// Invalid overrides the wrong-type / bad-format message.
func (f *Field) Invalid(msg string) *Field {
	f.invalidMsg = msg
	return f
}

// MinLen enforces a minimum length in characters.
func (f *Field) MinLen(n int, msg string) *Field {
	f.minLen, f.minLenMsg = n, msg
	return f
}

// MaxLen enforces a maximum length in characters.
func (f *Field) MaxLen(n int, msg string) *Field {
	f.maxLen, f.maxLenMsg = n, msg
	return f
}

// Min enforces an inclusive lower bound on numeric fields.
func (f *Field) Min(v float64, msg string) *Field {
	f.hasMin, f.min, f.minMsg = true, v, msg
	return f
}

// Max enforces an inclusive upper bound on numeric fields.
func (f *Field) Max(v float64, msg string) *Field {
	f.hasMax, f.max, f.maxMsg = true, v, msg
	return f
}

// Match requires string values to match re.
func (f *Field) Match(re *regexp.Regexp, msg string) *Field {
	f.pattern, f.patternMsg = re, msg
	return f
}

// MinItems requires at least n non-blank list items.
func (f *Field) MinItems(n int, msg string) *Field {
	f.minItems, f.itemsMsg = n, msg
	return f
}

// Default substitutes v when an optional field is absent or empty.
func (f *Field) Default(v any) *Field {
	f.def, f.hasDef = v, true
	return f
}
