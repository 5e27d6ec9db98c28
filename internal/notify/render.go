package notify

import (
	"fmt"

	"github.com/osteele/liquid"

	"github.com/pawsnclaws/intake-api/internal/tenant"
)

// Renderer turns Notices into Messages. Templates are compiled once; a
// Renderer is safe for concurrent use.
type Renderer struct {
	envelope *liquid.Template
	bodies   map[string]*liquid.Template
}

// NewRenderer compiles the envelope and every body template.
func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()

	env, err := engine.ParseString(envelopeTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	r := &Renderer{envelope: env, bodies: make(map[string]*liquid.Template, len(bodyTemplates))}
	for name, src := range bodyTemplates {
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.bodies[name] = tpl
	}
	return r, nil
}

// Render escapes n.Data, renders the body template and wraps it in the
// tenant's envelope.
func (r *Renderer) Render(t tenant.Config, n Notice) (Message, error) {
	body, ok := r.bodies[n.Template]
	if !ok {
		return Message{}, fmt.Errorf("unknown template %q", n.Template)
	}

	bindings := escapeBindings(n.Data, n.Multiline)
	bindings["tenant"] = escapeBindings(tenantBindings(t), nil)

	content, err := body.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render %s: %w", n.Template, err)
	}

	html, err := r.envelope.RenderString(liquid.Bindings{
		"tenant":  bindings["tenant"],
		"content": content,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render envelope: %w", err)
	}

	return Message{
		To:      n.To,
		Subject: cleanSubject(n.Subject),
		HTML:    html,
		ReplyTo: n.ReplyTo,
	}, nil
}

func tenantBindings(t tenant.Config) map[string]any {
	return map[string]any{
		"slug":       t.Slug,
		"name":       t.Name,
		"short_name": t.ShortName,
		"city":       t.City,
		"state":      t.State,
		"site_url":   t.SiteURL,
	}
}
