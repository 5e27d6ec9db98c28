// Package payment talks to the Stripe REST API: it creates hosted checkout
// sessions and verifies and decodes signed webhook events.
package payment
