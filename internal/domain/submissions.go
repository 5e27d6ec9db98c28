package domain

import "strings"

// ContactMessage is a general inquiry from the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	City    string `json:"city"`
}

func (ContactMessage) Kind() RecordKind { return KindContactMessage }

func (c ContactMessage) Row() map[string]any {
	return map[string]any{
		"name":    c.Name,
		"email":   c.Email,
		"reason":  c.Reason,
		"message": c.Message,
		"status":  "new",
		"city":    c.City,
	}
}

// NewsletterSubscriber is a newsletter signup.
type NewsletterSubscriber struct {
	Email  string `json:"email"`
	Source string `json:"source"`
	City   string `json:"city"`
}

func (NewsletterSubscriber) Kind() RecordKind { return KindNewsletter }

func (n NewsletterSubscriber) Row() map[string]any {
	return map[string]any{
		"email":         n.Email,
		"source":        n.Source,
		"status":        "active",
		"subscribed_at": nowUTC(),
		"city":          n.City,
	}
}

// ColonySubmission reports a community cat colony for TNR triage.
// Latitude and longitude are independent and unbounded.
type ColonySubmission struct {
	ColonyName          string   `json:"colonyName"`
	LocationDescription string   `json:"locationDescription"`
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	EstimatedCats       int64    `json:"estimatedCats"`
	TNRStatus           string   `json:"tnrStatus"`
	HasCaretaker        *bool    `json:"hasCaretaker"`
	CaretakerContact    string   `json:"caretakerContact"`
	FeedingSchedule     string   `json:"feedingSchedule"`
	UrgentNeeds         string   `json:"urgentNeeds"`
	AdditionalInfo      string   `json:"additionalInfo"`
	SubmitterName       string   `json:"submitterName"`
	SubmitterEmail      string   `json:"submitterEmail"`
	SubmitterPhone      string   `json:"submitterPhone"`
	SubmitterRelation   string   `json:"submitterRelation"`
	City                string   `json:"city"`
}

func (ColonySubmission) Kind() RecordKind { return KindColony }

func (c ColonySubmission) Row() map[string]any {
	return map[string]any{
		"colony_name":          nullable(c.ColonyName),
		"location_description": c.LocationDescription,
		"address":              nullable(c.Address),
		"latitude":             nullableFloat(c.Latitude),
		"longitude":            nullableFloat(c.Longitude),
		"estimated_cats":       c.EstimatedCats,
		"tnr_status":           nullable(c.TNRStatus),
		"has_caretaker":        nullableBool(c.HasCaretaker),
		"caretaker_contact":    nullable(c.CaretakerContact),
		"feeding_schedule":     nullable(c.FeedingSchedule),
		"urgent_needs":         nullable(c.UrgentNeeds),
		"additional_info":      nullable(c.AdditionalInfo),
		"submitter_name":       c.SubmitterName,
		"submitter_email":      c.SubmitterEmail,
		"submitter_phone":      nullable(c.SubmitterPhone),
		"submitter_relation":   nullable(c.SubmitterRelation),
		"status":               "pending",
		"city":                 c.City,
	}
}

// DisplayName is the colony name, or "Unnamed colony" when none was given.
func (c ColonySubmission) DisplayName() string {
	if c.ColonyName == "" {
		return "Unnamed colony"
	}
	return c.ColonyName
}

// EventSignup registers a person for a community event.
type EventSignup struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	EventDate  string `json:"eventDate"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
	City       string `json:"city"`
}

func (EventSignup) Kind() RecordKind { return KindEventSignup }

func (e EventSignup) Row() map[string]any {
	return map[string]any{
		"event_id": e.EventID,
		"name":     e.Name,
		"email":    e.Email,
		"phone":    nullable(e.Phone),
		"notes":    nullable(e.Notes),
		"status":   "registered",
		"city":     e.City,
	}
}

// VolunteerApplication is a volunteer signup.
type VolunteerApplication struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Roles        []string `json:"roles"`
	Experience   string   `json:"experience"`
	Availability string   `json:"availability"`
	HasVehicle   *bool    `json:"hasVehicle"`
	CanFoster    *bool    `json:"canFoster"`
	Message      string   `json:"message"`
	HowHeard     string   `json:"howHeard"`
	City         string   `json:"city"`
}

func (VolunteerApplication) Kind() RecordKind { return KindVolunteer }

func (v VolunteerApplication) Row() map[string]any {
	return map[string]any{
		"name":         v.Name,
		"email":        v.Email,
		"phone":        nullable(v.Phone),
		"skills":       v.Roles,
		"availability": nullable(v.Availability),
		"status":       "pending",
		"notes": map[string]any{
			"experience": v.Experience,
			"hasVehicle": v.HasVehicle,
			"canFoster":  v.CanFoster,
			"message":    v.Message,
			"howHeard":   v.HowHeard,
		},
		"city": v.City,
	}
}

// FosterApplication asks to join the foster network.
type FosterApplication struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	FosterTypes  []string `json:"fosterTypes"`
	HasOtherPets string   `json:"hasOtherPets"`
	HasKids      string   `json:"hasKids"`
	HousingType  string   `json:"housingType"`
	Experience   string   `json:"experience"`
	WhyFoster    string   `json:"whyFoster"`
	City         string   `json:"city"`
}

func (FosterApplication) Kind() RecordKind { return KindFoster }

func (f FosterApplication) Row() map[string]any {
	return map[string]any{
		"name":           f.Name,
		"email":          f.Email,
		"phone":          f.Phone,
		"foster_types":   f.FosterTypes,
		"has_other_pets": nullable(f.HasOtherPets),
		"has_kids":       nullable(f.HasKids),
		"housing_type":   nullable(f.HousingType),
		"experience":     nullable(f.Experience),
		"why_foster":     nullable(f.WhyFoster),
		"status":         "pending",
		"city":           f.City,
	}
}

// SponsorInquiry is a business asking about corporate sponsorship.
type SponsorInquiry struct {
	CompanyName  string   `json:"companyName"`
	ContactName  string   `json:"contactName"`
	ContactEmail string   `json:"contactEmail"`
	ContactPhone string   `json:"contactPhone"`
	Website      string   `json:"website"`
	Tier         string   `json:"tier"`
	Interests    []string `json:"interests"`
	Message      string   `json:"message"`
	City         string   `json:"city"`
}

func (SponsorInquiry) Kind() RecordKind { return KindSponsorInquiry }

func (s SponsorInquiry) Row() map[string]any {
	return map[string]any{
		"company_name":  s.CompanyName,
		"contact_name":  s.ContactName,
		"contact_email": s.ContactEmail,
		"contact_phone": nullable(s.ContactPhone),
		"website":       nullable(s.Website),
		"tier":          s.Tier,
		"interests":     s.Interests,
		"message":       nullable(s.Message),
		"status":        "pending",
		"city":          s.City,
	}
}

// LostFoundReport is a lost or found pet listing.
type LostFoundReport struct {
	Type         string `json:"type"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	PetName      string `json:"name"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Date         string `json:"date"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`
	MicrochipID  string `json:"microchipId"`
	City         string `json:"city"`
}

func (LostFoundReport) Kind() RecordKind { return KindLostFound }

// Lost reports whether the listing is for a missing pet.
func (l LostFoundReport) Lost() bool { return l.Type == "lost" }

func (l LostFoundReport) Row() map[string]any {
	row := map[string]any{
		"type":               l.Type,
		"species":            l.Species,
		"breed":              nullable(l.Breed),
		"name":               nullable(l.PetName),
		"color":              l.Color,
		"description":        l.Description,
		"event_date":         l.Date,
		"location_last_seen": nil,
		"location_found":     nil,
		"contact_name":       l.ContactName,
		"contact_phone":      l.ContactPhone,
		"contact_email":      l.ContactEmail,
		"microchip_id":       nullable(l.MicrochipID),
		"status":             "active",
		"city":               l.City,
	}
	if l.Lost() {
		row["location_last_seen"] = l.Location
	} else {
		row["location_found"] = l.Location
	}
	return row
}

// VetFundRequest asks the emergency vet fund for help. EstimatedCost is in
// whole dollars as entered; the stored amount is in cents.
type VetFundRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	PetName             string `json:"petName"`
	PetSpecies          string `json:"petSpecies"`
	VetClinic           string `json:"vetClinic"`
	Diagnosis           string `json:"diagnosis"`
	EstimatedCost       int64  `json:"estimatedCost"`
	IsEmergency         bool   `json:"isEmergency"`
	Situation           string `json:"situation"`
	HasAppliedElsewhere *bool  `json:"hasAppliedElsewhere"`
	OtherFunding        string `json:"otherFunding"`
	City                string `json:"city"`
}

func (VetFundRequest) Kind() RecordKind { return KindVetFund }

func (v VetFundRequest) Row() map[string]any {
	return map[string]any{
		"requestor_name":        v.Name,
		"requestor_email":       v.Email,
		"requestor_phone":       v.Phone,
		"pet_name":              v.PetName,
		"pet_species":           v.PetSpecies,
		"vet_clinic":            v.VetClinic,
		"diagnosis":             v.Diagnosis,
		"estimated_cost":        v.EstimatedCost * 100,
		"is_emergency":          v.IsEmergency,
		"notes":                 v.Situation,
		"has_applied_elsewhere": nullableBool(v.HasAppliedElsewhere),
		"other_funding":         nullable(v.OtherFunding),
		"status":                "pending",
		"city":                  v.City,
	}
}

// DepositAssistanceRequest asks for help with a pet deposit. Amounts are
// whole dollars as entered; the stored deposit is in cents.
type DepositAssistanceRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	PetName       string   `json:"petName"`
	PetSpecies    string   `json:"petSpecies"`
	LandlordName  string   `json:"landlordName"`
	DepositAmount int64    `json:"depositAmount"`
	MonthlyIncome *float64 `json:"monthlyIncome"`
	Situation     string   `json:"situation"`
	CanRepay      bool     `json:"canRepay"`
	City          string   `json:"city"`
}

func (DepositAssistanceRequest) Kind() RecordKind { return KindDepositAssistance }

func (d DepositAssistanceRequest) Row() map[string]any {
	return map[string]any{
		"applicant_name":  d.Name,
		"applicant_email": d.Email,
		"applicant_phone": d.Phone,
		"pet_name":        d.PetName,
		"pet_species":     d.PetSpecies,
		"landlord_name":   d.LandlordName,
		"deposit_amount":  d.DepositAmount * 100,
		"status":          "pending",
		"notes": map[string]any{
			"monthlyIncome": d.MonthlyIncome,
			"canRepay":      d.CanRepay,
			"situation":     d.Situation,
		},
		"city": d.City,
	}
}

// SurrenderPreventionRequest is a family at risk of giving up a pet.
type SurrenderPreventionRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	PetInfo       string   `json:"petInfo"`
	Reasons       []string `json:"reasons"`
	OtherReason   string   `json:"otherReason"`
	Timeline      string   `json:"timeline"`
	WhatWouldHelp string   `json:"whatWouldHelp"`
	TriedOptions  string   `json:"triedOptions"`
	City          string   `json:"city"`
}

func (SurrenderPreventionRequest) Kind() RecordKind { return KindSurrenderPrevention }

// Urgent reports whether the family needs help right away.
func (s SurrenderPreventionRequest) Urgent() bool { return s.Timeline == "urgent" }

// ReasonText joins the selected reasons, replacing "other" with the free-text
// reason when one was given.
func (s SurrenderPreventionRequest) ReasonText() string {
	out := make([]string, 0, len(s.Reasons)+1)
	other := false
	for _, r := range s.Reasons {
		if r == "other" && s.OtherReason != "" {
			other = true
			continue
		}
		out = append(out, r)
	}
	if other {
		out = append(out, s.OtherReason)
	}
	return strings.Join(out, ", ")
}

func (s SurrenderPreventionRequest) Row() map[string]any {
	return map[string]any{
		"contact_name":      s.Name,
		"contact_email":     s.Email,
		"contact_phone":     nullable(s.Phone),
		"pet_info":          s.PetInfo,
		"reason":            s.ReasonText(),
		"assistance_needed": nullable(s.WhatWouldHelp),
		"status":            "new",
		"notes": map[string]any{
			"timeline":     s.Timeline,
			"triedOptions": s.TriedOptions,
			"rawReasons":   s.Reasons,
		},
		"city": s.City,
	}
}
