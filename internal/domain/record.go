package domain

import "time"

// RecordKind names a durable table. The set is closed: table names reach SQL
// only through Table, never from user input.
type RecordKind string

const (
	KindContactMessage      RecordKind = "contact"
	KindNewsletter          RecordKind = "newsletter"
	KindColony              RecordKind = "colonies"
	KindEventSignup         RecordKind = "event-signups"
	KindVolunteer           RecordKind = "volunteers"
	KindFoster              RecordKind = "foster"
	KindSponsorInquiry      RecordKind = "sponsors"
	KindLostFound           RecordKind = "lost-found"
	KindVetFund             RecordKind = "vet-fund"
	KindDepositAssistance   RecordKind = "deposit-assistance"
	KindSurrenderPrevention RecordKind = "surrender-prevention"
	KindDonation            RecordKind = "donations"
	KindSubscription        RecordKind = "subscriptions"
)

type kindInfo struct {
	table    string
	statuses []string
}

var kinds = map[RecordKind]kindInfo{
	KindContactMessage:      {"contact_messages", []string{"new", "read", "replied", "archived"}},
	KindNewsletter:          {"newsletter_subscribers", []string{"active", "unsubscribed"}},
	KindColony:              {"colony_submissions", []string{"pending", "approved", "rejected", "archived"}},
	KindEventSignup:         {"event_signups", []string{"registered", "attended", "cancelled"}},
	KindVolunteer:           {"volunteers", []string{"pending", "approved", "active", "inactive"}},
	KindFoster:              {"foster_applications", []string{"pending", "approved", "rejected"}},
	KindSponsorInquiry:      {"sponsor_inquiries", []string{"pending", "approved", "declined"}},
	KindLostFound:           {"lost_found", []string{"active", "reunited", "closed"}},
	KindVetFund:             {"vet_fund_requests", []string{"pending", "approved", "denied", "paid"}},
	KindDepositAssistance:   {"deposit_assistance", []string{"pending", "approved", "denied", "paid"}},
	KindSurrenderPrevention: {"surrender_prevention", []string{"new", "in_progress", "resolved", "closed"}},
	KindDonation:            {"donations", []string{"completed", "refunded"}},
	KindSubscription:        {"subscriptions", []string{"active", "paused", "cancelled"}},
}

// ParseRecordKind returns the kind for an admin URL segment.
func ParseRecordKind(s string) (RecordKind, bool) {
	k := RecordKind(s)
	_, ok := kinds[k]
	return k, ok
}

// Valid reports whether k is one of the declared kinds.
func (k RecordKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Table returns the storage table for k, or "" for an unknown kind.
func (k RecordKind) Table() string { return kinds[k].table }

// Statuses lists the workflow states an admin may set on k.
func (k RecordKind) Statuses() []string {
	return append([]string(nil), kinds[k].statuses...)
}

// AllowsStatus reports whether status is a workflow state of k.
func (k RecordKind) AllowsStatus(status string) bool {
	for _, s := range kinds[k].statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Record is one stored row as returned to the admin area.
type Record map[string]any

// Submission is a validated, normalized form payload.
type Submission interface {
	Kind() RecordKind
	// Row returns column → value for the insert. Nil values become NULL.
	Row() map[string]any
}

// nullable maps "" to nil so optional text lands as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nowUTC() time.Time { return time.Now().UTC() }
