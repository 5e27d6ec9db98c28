// Package donation starts hosted checkout sessions and records the
// donations and subscriptions reported by payment webhooks.
package donation
