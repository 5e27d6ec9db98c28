package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 64 << 10

// ErrInvalidBody is returned for unreadable, oversized or malformed JSON.
var ErrInvalidBody = errors.New("Invalid request body")

// DecodeBody reads the request body as generic JSON. Numbers are kept as
// json.Number so integer fields can be told apart from fractional ones.
func DecodeBody(r *http.Request) (any, error) {
	body, err := ReadBody(r)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, ErrInvalidBody
	}
	if dec.More() {
		return nil, ErrInvalidBody
	}
	return raw, nil
}

// ReadBody returns the raw body, capped at MaxBodyBytes.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, ErrInvalidBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil || len(body) > MaxBodyBytes {
		return nil, ErrInvalidBody
	}
	return body, nil
}

// Decode reads JSON into dst. Returns false and writes a 400 response if
// parsing fails.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := ReadBody(r)
	if err == nil {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		BadRequest(w, ErrInvalidBody.Error())
		return false
	}
	return true
}
