// Package newsletter manages newsletter subscriptions: subscribe with a
// welcome email, non-enumerable unsubscribe, and the admin subscriber list.
package newsletter
