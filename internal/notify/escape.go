package notify

import (
	"fmt"
	"strings"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var newlineReplacer = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// Escape entity-encodes ampersands, angle brackets and both quote styles.
func Escape(s string) string { return htmlReplacer.Replace(s) }

// EscapeMultiline escapes s and then turns line breaks into <br>.
func EscapeMultiline(s string) string { return newlineReplacer.Replace(Escape(s)) }

// escapeBindings returns a deep copy of data with every string escaped.
func escapeBindings(data map[string]any, multiline []string) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = escapeValue(v)
	}
	for _, k := range multiline {
		if s, ok := data[k].(string); ok {
			out[k] = EscapeMultiline(s)
		}
	}
	return out
}

func escapeValue(v any) any {
	switch t := v.(type) {
	case nil, bool, int, int64, float64:
		return t
	case string:
		return Escape(t)
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = Escape(s)
		}
		return out
	case map[string]any:
		return escapeBindings(t, nil)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, m := range t {
			out[i] = escapeBindings(m, nil)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = escapeValue(e)
		}
		return out
	default:
		return Escape(fmt.Sprint(t))
	}
}
