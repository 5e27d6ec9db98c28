package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the webhook signature.
const SignatureHeader = "Stripe-Signature"

// Verifier checks webhook signatures with a shared secret.
type Verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier creates a verifier. A zero tolerance disables the age check.
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{secret: secret, tolerance: tolerance, now: time.Now}
}

// Configured reports whether a webhook secret is set.
func (v *Verifier) Configured() bool { return v != nil && v.secret != "" }

// ConstructEvent verifies header against payload and decodes the event.
// The header has the form "t=<unix>,v1=<hex>[,v1=<hex>...]"; any matching
// v1 signature is accepted.
func (v *Verifier) ConstructEvent(payload []byte, header string) (Event, error) {
	if !v.Configured() {
		return Event{}, ErrNotConfigured
	}
	if header == "" {
		return Event{}, ErrMissingSignature
	}

	var ts int64
	var sigs [][]byte
	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return Event{}, ErrInvalidSignature
			}
			ts = n
		case "v1":
			if sig, err := hex.DecodeString(val); err == nil {
				sigs = append(sigs, sig)
			}
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return Event{}, ErrInvalidSignature
	}

	expected := v.sign(ts, payload)
	matched := false
	for _, sig := range sigs {
		if hmac.Equal(sig, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return Event{}, ErrInvalidSignature
	}

	if v.tolerance > 0 {
		age := v.now().Sub(time.Unix(ts, 0))
		if age > v.tolerance || age < -v.tolerance {
			return Event{}, ErrStaleSignature
		}
	}

	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	return evt, nil
}

func (v *Verifier) sign(ts int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload builds a valid signature header for payload. It is used by
// tests and local tooling that replays events.
func SignPayload(secret string, ts time.Time, payload []byte) string {
	v := &Verifier{secret: secret}
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(v.sign(ts.Unix(), payload)))
}
