package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRecordKind_TablesAreClosed(t *testing.T) {
	if k, ok := ParseRecordKind("contact"); !ok || k.Table() != "contact_messages" {
		t.Fatalf("contact kind = %q, %v", k.Table(), ok)
	}
	if _, ok := ParseRecordKind("users; DROP TABLE x"); ok {
		t.Error("expected unknown kind to be rejected")
	}
	if RecordKind("nope").Table() != "" {
		t.Error("unknown kind must have no table")
	}
}

func TestRecordKind_AllowsStatus(t *testing.T) {
	if !KindNewsletter.AllowsStatus("unsubscribed") {
		t.Error("newsletter should allow unsubscribed")
	}
	if KindNewsletter.AllowsStatus("approved") {
		t.Error("newsletter should not allow approved")
	}
}

func TestCheckoutMetadata(t *testing.T) {
	req := DonationCheckoutRequest{
		Amount:       2500,
		DonationType: "one-time",
		Message:      strings.Repeat("é", 800),
		CampaignID:   "spring-tnr",
	}
	md := req.Metadata()

	if md["donor_name"] != "Anonymous" {
		t.Errorf("donor_name = %q, want Anonymous", md["donor_name"])
	}
	if md["cover_fees"] != "false" {
		t.Errorf("cover_fees = %q", md["cover_fees"])
	}
	if n := utf8.RuneCountInString(md["message"]); n != MaxMetadataMessageLen {
		t.Errorf("message length = %d, want %d", n, MaxMetadataMessageLen)
	}
	if md["campaign_id"] != "spring-tnr" {
		t.Errorf("campaign_id = %q", md["campaign_id"])
	}
}

func TestSurrenderReasonText(t *testing.T) {
	s := SurrenderPreventionRequest{Reasons: []string{"housing", "other", "cost"}, OtherReason: "allergies"}
	if got := s.ReasonText(); got != "housing, cost, allergies" {
		t.Errorf("ReasonText = %q", got)
	}
	s.OtherReason = ""
	if got := s.ReasonText(); got != "housing, other, cost" {
		t.Errorf("ReasonText without free text = %q", got)
	}
}

func TestLostFoundRow_SplitsLocation(t *testing.T) {
	row := LostFoundReport{Type: "found", Location: "Zilker Park"}.Row()
	if row["location_found"] != "Zilker Park" || row["location_last_seen"] != nil {
		t.Errorf("found row locations = %v / %v", row["location_found"], row["location_last_seen"])
	}
}
