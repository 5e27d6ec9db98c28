// Package validate checks untrusted JSON bodies against declarative schemas.
//
// A Schema is an ordered list of Fields. Validate never panics on malformed
// input: every problem becomes an entry in *Errors keyed by the dot-joined
// field path, and only the first message per path is kept. Successful runs
// return Values holding the normalized data (trimmed strings, lower-cased
// emails, digits-only phones, defaults substituted).
//
// Fields are independent. There are no cross-field rules.
package validate
