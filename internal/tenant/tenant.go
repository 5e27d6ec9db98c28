// Package tenant resolves the city a submission belongs to.
//
// The registry is built once at startup and is read-only afterwards, so it
// is safe to share across request goroutines without locking.
package tenant

import "strings"

// Config is one city's branding and routing data.
type Config struct {
	Slug              string `yaml:"slug"`
	Name              string `yaml:"name"`
	ShortName         string `yaml:"short_name"`
	City              string `yaml:"city"`
	State             string `yaml:"state"`
	NotificationEmail string `yaml:"notification_email"`
	SiteURL           string `yaml:"site_url"`
}

// Builtin returns the cities the organization operates in.
func Builtin() []Config {
	return []Config{
		{
			Slug:              "austin",
			Name:              "PawsNClaws ATX",
			ShortName:         "ATX",
			City:              "Austin",
			State:             "TX",
			NotificationEmail: "hello@pawsandclawsatx.com",
			SiteURL:           "https://pawsnclaws.org",
		},
		{
			Slug:              "charlotte",
			Name:              "PawsNClaws CLT",
			ShortName:         "CLT",
			City:              "Charlotte",
			State:             "NC",
			NotificationEmail: "charlotte@pawsandclawsatx.com",
			SiteURL:           "https://pawsnclaws.org/charlotte",
		},
	}
}

// Registry maps slugs to tenant configs.
type Registry struct {
	bySlug map[string]Config
	order  []string
	def    Config
}

// NewRegistry builds a registry from tenants. Entries without a slug are
// ignored and later duplicates override earlier ones. If defaultSlug does not
// name a tenant, the first tenant becomes the default. An empty list falls
// back to Builtin.
func NewRegistry(tenants []Config, defaultSlug string) *Registry {
	if len(tenants) == 0 {
		tenants = Builtin()
	}
	r := &Registry{bySlug: make(map[string]Config, len(tenants))}
	for _, t := range tenants {
		key := normalize(t.Slug)
		if key == "" {
			continue
		}
		t.Slug = key
		if _, seen := r.bySlug[key]; !seen {
			r.order = append(r.order, key)
		}
		r.bySlug[key] = t
	}
	if len(r.order) == 0 {
		return NewRegistry(nil, defaultSlug)
	}
	def, ok := r.bySlug[normalize(defaultSlug)]
	if !ok {
		def = r.bySlug[r.order[0]]
	}
	r.def = def
	return r
}

// Resolve never fails: unknown, empty or blank slugs yield the default.
func (r *Registry) Resolve(slug string) Config {
	if t, ok := r.bySlug[normalize(slug)]; ok {
		return t
	}
	return r.def
}

// Default returns the fallback tenant.
func (r *Registry) Default() Config { return r.def }

// All returns tenants in registration order.
func (r *Registry) All() []Config {
	out := make([]Config, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.bySlug[k])
	}
	return out
}

func normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
