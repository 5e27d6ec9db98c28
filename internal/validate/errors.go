package validate

import "strings"

// RootPath is the path used when the body itself is not a JSON object.
const RootPath = "_"

// Errors maps field paths to their first failure message, remembering the
// order in which paths failed.
type Errors struct {
	order  []string
	fields map[string]string
}

// Add records msg for path unless path already has a message.
func (e *Errors) Add(path, msg string) {
	if e.fields == nil {
		e.fields = make(map[string]string)
	}
	if _, ok := e.fields[path]; ok {
		return
	}
	e.fields[path] = msg
	e.order = append(e.order, path)
}

// Len reports how many paths failed.
func (e *Errors) Len() int { return len(e.order) }

// First returns the message of the earliest failing path in schema order.
func (e *Errors) First() string {
	if len(e.order) == 0 {
		return ""
	}
	return e.fields[e.order[0]]
}

// Get returns the message recorded for path.
func (e *Errors) Get(path string) (string, bool) {
	msg, ok := e.fields[path]
	return msg, ok
}

// Fields returns a copy of the path → message map.
func (e *Errors) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, p := range e.order {
		parts = append(parts, p+": "+e.fields[p])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
