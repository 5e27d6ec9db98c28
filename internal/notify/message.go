package notify

import (
	"context"
	"strings"
)

// Message is a fully rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender hands a rendered message to an email provider. Delivery is not
// guaranteed once Send returns nil.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notice describes an email before rendering. Subject is plain text and is
// not HTML-escaped; line breaks are stripped from it.
type Notice struct {
	Template  string
	To        string
	ReplyTo   string
	Subject   string
	Data      map[string]any
	Multiline []string
}

// Field is one label/value line in an operator notification.
func Field(label string, value any) map[string]any {
	return map[string]any{"label": label, "value": value}
}

func cleanSubject(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
