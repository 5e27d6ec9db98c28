package intake

import "errors"

// ErrNotification wraps any failure to render or send a notification.
var ErrNotification = errors.New("notification failed")
