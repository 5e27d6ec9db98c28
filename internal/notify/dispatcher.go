package notify

import (
	"context"
	"fmt"

	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/tenant"
)

// Dispatcher renders notices and sends them in order.
type Dispatcher struct {
	renderer *Renderer
	sender   Sender
}

// NewDispatcher pairs a renderer with a sender.
func NewDispatcher(renderer *Renderer, sender Sender) *Dispatcher {
	return &Dispatcher{renderer: renderer, sender: sender}
}

// Notify renders and sends each notice sequentially and stops at the first
// failure. Notices with no recipient are skipped.
func (d *Dispatcher) Notify(ctx context.Context, t tenant.Config, notices ...Notice) error {
	for _, n := range notices {
		if n.To == "" {
			continue
		}
		msg, err := d.renderer.Render(t, n)
		if err != nil {
			return err
		}
		if err := d.sender.Send(ctx, msg); err != nil {
			logger.Error("notify: send failed", "template", n.Template, "to", n.To, "error", err)
			return fmt.Errorf("send %s: %w", n.Template, err)
		}
	}
	return nil
}
