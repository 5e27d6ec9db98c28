// Package httputil provides the JSON request/response helpers shared by all
// intake handlers.
//
// Handlers never write raw http.ResponseWriter bodies. Success bodies, error
// envelopes and validation failures all go through this package so every
// endpoint answers with the same shape.
package httputil
