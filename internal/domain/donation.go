package domain

// Donation amounts are in minor currency units (cents).
const (
	MinDonationCents      = 100
	MaxDonationCents      = 10_000_000
	MaxMetadataMessageLen = 500
)

// DonationCheckoutRequest starts a hosted checkout. It is not persisted; the
// payment webhook records the resulting Donation.
type DonationCheckoutRequest struct {
	Amount       int64  `json:"amount"`
	DonationType string `json:"donationType"`
	CoverFees    bool   `json:"coverFees"`
	DonorName    string `json:"donorName"`
	DonorEmail   string `json:"donorEmail"`
	Message      string `json:"message"`
	CampaignID   string `json:"campaignId"`
	City         string `json:"city"`
}

// Monthly reports whether the checkout creates a recurring subscription.
func (d DonationCheckoutRequest) Monthly() bool { return d.DonationType == "monthly" }

// Metadata is the string map attached to the checkout session. The message
// is capped at MaxMetadataMessageLen characters.
func (d DonationCheckoutRequest) Metadata() map[string]string {
	name := d.DonorName
	if name == "" {
		name = "Anonymous"
	}
	md := map[string]string{
		"donor_name":    name,
		"cover_fees":    "false",
		"donation_type": d.DonationType,
	}
	if d.CoverFees {
		md["cover_fees"] = "true"
	}
	if d.Message != "" {
		md["message"] = truncateRunes(d.Message, MaxMetadataMessageLen)
	}
	if d.CampaignID != "" {
		md["campaign_id"] = d.CampaignID
	}
	if d.City != "" {
		md["city"] = d.City
	}
	return md
}

// Donation is a completed payment recorded from a processor event.
type Donation struct {
	Amount               int64  `json:"amount"`
	DonationType         string `json:"donation_type"`
	PaymentMethod        string `json:"payment_method"`
	StripePaymentID      string `json:"stripe_payment_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	DonorName            string `json:"donor_name"`
	DonorEmail           string `json:"donor_email"`
	IsAnonymous          bool   `json:"is_anonymous"`
	Message              string `json:"message"`
	FeeCovered           bool   `json:"fee_covered"`
	CampaignID           string `json:"campaign_id"`
	City                 string `json:"city"`
}

func (Donation) Kind() RecordKind { return KindDonation }

func (d Donation) Row() map[string]any {
	return map[string]any{
		"amount":                 d.Amount,
		"donation_type":          d.DonationType,
		"payment_method":         d.PaymentMethod,
		"stripe_payment_id":      nullable(d.StripePaymentID),
		"stripe_subscription_id": nullable(d.StripeSubscriptionID),
		"donor_name":             nullable(d.DonorName),
		"donor_email":            nullable(d.DonorEmail),
		"is_anonymous":           d.IsAnonymous,
		"message":                nullable(d.Message),
		"fee_covered":            d.FeeCovered,
		"campaign_id":            nullable(d.CampaignID),
		"status":                 "completed",
		"city":                   nullable(d.City),
	}
}

// RecurringSubscription mirrors a processor subscription.
type RecurringSubscription struct {
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	StripeCustomerID     string `json:"stripe_customer_id"`
	Amount               int64  `json:"amount"`
	Interval             string `json:"interval"`
	Status               string `json:"status"`
	Tier                 string `json:"tier"`
	ColonyID             string `json:"colony_id"`
	AnimalID             string `json:"animal_id"`
}

func (RecurringSubscription) Kind() RecordKind { return KindSubscription }

func (s RecurringSubscription) Row() map[string]any {
	return map[string]any{
		"stripe_subscription_id": s.StripeSubscriptionID,
		"stripe_customer_id":     s.StripeCustomerID,
		"amount":                 s.Amount,
		"interval":               s.Interval,
		"status":                 s.Status,
		"tier":                   nullable(s.Tier),
		"colony_id":              nullable(s.ColonyID),
		"animal_id":              nullable(s.AnimalID),
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
