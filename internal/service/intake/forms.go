package intake

import (
	"fmt"
	"strings"

	"github.com/pawsnclaws/intake-api/internal/domain"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/tenant"
	"github.com/pawsnclaws/intake-api/internal/validate"
)

// ContactReasons is the closed set of contact form topics.
var ContactReasons = []string{"general", "adoption", "volunteer", "foster", "donation", "sponsorship", "help", "media", "other"}

// ContactForm handles the general contact form.
var ContactForm = Form[domain.ContactMessage]{
	Name: "contact",
	Schema: validate.New(
		validate.String("name").Required("Name is required").MaxLen(100, "Name must be less than 100 characters"),
		validate.Email("email").Required(""),
		validate.Enum("reason", ContactReasons...).Invalid("Please select a valid reason").Default("general"),
		validate.String("message").Required("Message is required").MaxLen(5000, "Message must be less than 5000 characters"),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.ContactMessage {
		return domain.ContactMessage{
			Name:    v.String("name"),
			Email:   v.String("email"),
			Reason:  v.String("reason"),
			Message: v.String("message"),
			City:    t.Slug,
		}
	},
	Notices: func(c domain.ContactMessage, t tenant.Config) []notify.Notice {
		return []notify.Notice{
			{
				Template: notify.TemplateContactNotification,
				To:       t.NotificationEmail,
				ReplyTo:  c.Email,
				Subject:  fmt.Sprintf("[Contact] %s - from %s", c.Reason, c.Name),
				Data: map[string]any{
					"name": c.Name, "email": c.Email, "reason": c.Reason, "message": c.Message,
				},
				Multiline: []string{"message"},
			},
			{
				Template: notify.TemplateContactConfirmation,
				To:       c.Email,
				Subject:  "We received your message - " + t.Name,
				Data:     map[string]any{"name": c.Name},
			},
		}
	},
}

// ColonyForm handles community cat colony reports.
var ColonyForm = Form[domain.ColonySubmission]{
	Name: "colony",
	Schema: validate.New(
		text("colonyName", 200),
		validate.String("locationDescription").Required("Location description is required").
			MaxLen(1000, "Location description must be less than 1000 characters"),
		text("address", 300),
		validate.Number("latitude").Invalid("Invalid latitude"),
		validate.Number("longitude").Invalid("Invalid longitude"),
		validate.Int("estimatedCats").Required("Please enter a number").
			Min(1, "Must be at least 1 cat").
			Max(500, "For very large colonies, please contact us directly"),
		validate.Enum("tnrStatus", "all", "partial", "none", "unknown"),
		validate.Bool("hasCaretaker"),
		text("caretakerContact", 200),
		text("feedingSchedule", 500),
		text("urgentNeeds", 2000),
		text("additionalInfo", 5000),
		personName("submitterName"),
		validate.Email("submitterEmail").Required(""),
		validate.Phone("submitterPhone"),
		validate.Enum("submitterRelation", "observer", "caretaker", "neighbor", "property-owner", "other"),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.ColonySubmission {
		return domain.ColonySubmission{
			ColonyName:          v.String("colonyName"),
			LocationDescription: v.String("locationDescription"),
			Address:             v.String("address"),
			Latitude:            v.FloatPtr("latitude"),
			Longitude:           v.FloatPtr("longitude"),
			EstimatedCats:       v.Int("estimatedCats"),
			TNRStatus:           v.String("tnrStatus"),
			HasCaretaker:        v.BoolPtr("hasCaretaker"),
			CaretakerContact:    v.String("caretakerContact"),
			FeedingSchedule:     v.String("feedingSchedule"),
			UrgentNeeds:         v.String("urgentNeeds"),
			AdditionalInfo:      v.String("additionalInfo"),
			SubmitterName:       v.String("submitterName"),
			SubmitterEmail:      v.String("submitterEmail"),
			SubmitterPhone:      v.String("submitterPhone"),
			SubmitterRelation:   v.String("submitterRelation"),
			City:                t.Slug,
		}
	},
	Notices: func(c domain.ColonySubmission, t tenant.Config) []notify.Notice {
		return []notify.Notice{{
			Template: notify.TemplateColonySubmission,
			To:       t.NotificationEmail,
			ReplyTo:  c.SubmitterEmail,
			Subject:  fmt.Sprintf("[Colony] New submission - %s (%d cats)", c.DisplayName(), c.EstimatedCats),
			Data: map[string]any{
				"colony_name":        c.DisplayName(),
				"location":           c.LocationDescription,
				"address":            c.Address,
				"estimated_cats":     c.EstimatedCats,
				"tnr_status":         c.TNRStatus,
				"submitter_name":     c.SubmitterName,
				"submitter_email":    c.SubmitterEmail,
				"submitter_relation": c.SubmitterRelation,
				"urgent_needs":       c.UrgentNeeds,
			},
			Multiline: []string{"urgent_needs"},
		}}
	},
}

// EventSignupForm registers attendees for events.
var EventSignupForm = Form[domain.EventSignup]{
	Name: "event_signup",
	Schema: validate.New(
		validate.String("eventId").Required("Event ID is required").MaxLen(100, "Invalid event"),
		text("eventTitle", 200),
		text("eventDate", 100),
		validate.String("name").Required("Name is required").MaxLen(100, "Name must be less than 100 characters"),
		validate.Email("email").Required(""),
		validate.Phone("phone"),
		text("notes", 1000),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.EventSignup {
		title := v.String("eventTitle")
		if title == "" {
			title = "Community Event"
		}
		return domain.EventSignup{
			EventID:    v.String("eventId"),
			EventTitle: title,
			EventDate:  v.String("eventDate"),
			Name:       v.String("name"),
			Email:      v.String("email"),
			Phone:      v.String("phone"),
			Notes:      v.String("notes"),
			City:       t.Slug,
		}
	},
	Notices: func(e domain.EventSignup, _ tenant.Config) []notify.Notice {
		return []notify.Notice{{
			Template: notify.TemplateEventConfirmation,
			To:       e.Email,
			Subject:  "You're Registered: " + e.EventTitle,
			Data:     map[string]any{"name": e.Name, "event_title": e.EventTitle, "event_date": e.EventDate},
		}}
	},
}

// VolunteerForm handles volunteer signups.
var VolunteerForm = Form[domain.VolunteerApplication]{
	Name: "volunteer",
	Schema: validate.New(
		personName("name"),
		validate.Email("email").Required(""),
		validate.Phone("phone"),
		validate.List("roles").Required("Please select at least one role").MinItems(1, "Please select at least one role"),
		text("experience", 2000),
		text("availability", 500),
		validate.Bool("hasVehicle"),
		validate.Bool("canFoster"),
		text("message", 5000),
		text("howHeard", 200),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.VolunteerApplication {
		return domain.VolunteerApplication{
			Name:         v.String("name"),
			Email:        v.String("email"),
			Phone:        v.String("phone"),
			Roles:        v.Strings("roles"),
			Experience:   v.String("experience"),
			Availability: v.String("availability"),
			HasVehicle:   v.BoolPtr("hasVehicle"),
			CanFoster:    v.BoolPtr("canFoster"),
			Message:      v.String("message"),
			HowHeard:     v.String("howHeard"),
			City:         t.Slug,
		}
	},
	Notices: func(a domain.VolunteerApplication, t tenant.Config) []notify.Notice {
		return []notify.Notice{
			summary(t, a.Email, "[Volunteer] New signup - "+a.Name, "New Volunteer Signup",
				notify.Field("Name", a.Name),
				notify.Field("Email", a.Email),
				notify.Field("Phone", a.Phone),
				notify.Field("Roles", strings.Join(a.Roles, ", ")),
				notify.Field("Availability", a.Availability),
				notify.Field("Has vehicle", yesNo(a.HasVehicle)),
				notify.Field("Can foster", yesNo(a.CanFoster)),
				notify.Field("Experience", a.Experience),
				notify.Field("Message", a.Message),
			),
			{
				Template: notify.TemplateVolunteerWelcome,
				To:       a.Email,
				Subject:  "Welcome to " + t.Name + " Volunteers!",
				Data:     map[string]any{"name": a.Name, "roles": a.Roles},
			},
		}
	},
}

// FosterForm handles foster applications.
var FosterForm = Form[domain.FosterApplication]{
	Name: "foster",
	Schema: validate.New(
		personName("name"),
		validate.Email("email").Required(""),
		validate.Phone("phone").Required(""),
		validate.List("fosterTypes").Required("Please select at least one foster type").
			MinItems(1, "Please select at least one foster type"),
		text("hasOtherPets", 200),
		text("hasKids", 200),
		text("housingType", 100),
		text("experience", 2000),
		text("whyFoster", 5000),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.FosterApplication {
		return domain.FosterApplication{
			Name:         v.String("name"),
			Email:        v.String("email"),
			Phone:        v.String("phone"),
			FosterTypes:  v.Strings("fosterTypes"),
			HasOtherPets: v.String("hasOtherPets"),
			HasKids:      v.String("hasKids"),
			HousingType:  v.String("housingType"),
			Experience:   v.String("experience"),
			WhyFoster:    v.String("whyFoster"),
			City:         t.Slug,
		}
	},
	Notices: func(a domain.FosterApplication, t tenant.Config) []notify.Notice {
		return []notify.Notice{
			summary(t, a.Email, "[Foster] New application - "+a.Name, "New Foster Application",
				notify.Field("Name", a.Name),
				notify.Field("Email", a.Email),
				notify.Field("Phone", a.Phone),
				notify.Field("Foster types", strings.Join(a.FosterTypes, ", ")),
				notify.Field("Housing", a.HousingType),
				notify.Field("Other pets", a.HasOtherPets),
				notify.Field("Kids", a.HasKids),
				notify.Field("Why foster", a.WhyFoster),
			),
			{
				Template: notify.TemplateFosterWelcome,
				To:       a.Email,
				Subject:  "Foster Application Received - " + t.Name,
				Data:     map[string]any{"name": a.Name, "foster_types": a.FosterTypes},
			},
		}
	},
}

// SponsorForm handles corporate sponsorship inquiries.
var SponsorForm = Form[domain.SponsorInquiry]{
	Name: "sponsor_inquiry",
	Schema: validate.New(
		validate.String("companyName").Required("Company name is required").MaxLen(200, "Company name must be less than 200 characters"),
		personName("contactName"),
		validate.Email("contactEmail").Required(""),
		validate.Phone("contactPhone"),
		text("website", 300),
		validate.Enum("tier", "bronze", "silver", "gold", "platinum").Default("bronze"),
		validate.List("interests"),
		text("message", 5000),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.SponsorInquiry {
		return domain.SponsorInquiry{
			CompanyName:  v.String("companyName"),
			ContactName:  v.String("contactName"),
			ContactEmail: v.String("contactEmail"),
			ContactPhone: v.String("contactPhone"),
			Website:      v.String("website"),
			Tier:         v.String("tier"),
			Interests:    v.Strings("interests"),
			Message:      v.String("message"),
			City:         t.Slug,
		}
	},
	Notices: func(s domain.SponsorInquiry, t tenant.Config) []notify.Notice {
		return []notify.Notice{
			summary(t, s.ContactEmail, "[Sponsor] Inquiry from "+s.CompanyName, "New Sponsorship Inquiry",
				notify.Field("Company", s.CompanyName),
				notify.Field("Contact", s.ContactName),
				notify.Field("Email", s.ContactEmail),
				notify.Field("Phone", s.ContactPhone),
				notify.Field("Website", s.Website),
				notify.Field("Tier", s.Tier),
				notify.Field("Interests", strings.Join(s.Interests, ", ")),
				notify.Field("Message", s.Message),
			),
			{
				Template: notify.TemplateSponsorConfirmation,
				To:       s.ContactEmail,
				Subject:  "Partnership Inquiry Received - " + t.Name,
				Data:     map[string]any{"company_name": s.CompanyName},
			},
		}
	},
}

// LostFoundForm handles lost and found pet reports.
var LostFoundForm = Form[domain.LostFoundReport]{
	Name: "lost_found",
	Schema: validate.New(
		validate.Enum("type", "lost", "found").Required("Please select lost or found").Invalid("Please select lost or found"),
		validate.Enum("species", petSpecies...).Required("Please select the animal type").Invalid("Please select the animal type"),
		text("breed", 100),
		validate.String("color").Required("Color/markings are required").MaxLen(200, "Must be less than 200 characters"),
		text("name", 100),
		details("description", "Message is required"),
		validate.String("location").Required("Location is required").MaxLen(300, "Must be less than 300 characters"),
		validate.String("date").Required("Date is required").MaxLen(50, "Invalid date"),
		personName("contactName"),
		validate.Phone("contactPhone").Required(""),
		validate.Email("contactEmail").Required(""),
		text("microchipId", 50),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.LostFoundReport {
		return domain.LostFoundReport{
			Type:         v.String("type"),
			Species:      v.String("species"),
			Breed:        v.String("breed"),
			PetName:      v.String("name"),
			Color:        v.String("color"),
			Description:  v.String("description"),
			Location:     v.String("location"),
			Date:         v.String("date"),
			ContactName:  v.String("contactName"),
			ContactPhone: v.String("contactPhone"),
			ContactEmail: v.String("contactEmail"),
			MicrochipID:  v.String("microchipId"),
			City:         t.Slug,
		}
	},
	Notices: func(l domain.LostFoundReport, t tenant.Config) []notify.Notice {
		petName := l.PetName
		if petName == "" {
			petName = "unnamed " + l.Species
		}
		return []notify.Notice{{
			Template: notify.TemplateLostPetAlert,
			To:       t.NotificationEmail,
			ReplyTo:  l.ContactEmail,
			Subject:  fmt.Sprintf("[Lost & Found] %s %s - %s", strings.ToUpper(l.Type), l.Species, l.Location),
			Data: map[string]any{
				"lost":          l.Lost(),
				"pet_name":      petName,
				"species":       l.Species,
				"location":      l.Location,
				"date":          l.Date,
				"description":   l.Description,
				"contact_name":  l.ContactName,
				"contact_email": l.ContactEmail,
			},
			Multiline: []string{"description"},
		}}
	},
}

// VetFundForm handles emergency vet fund applications.
var VetFundForm = Form[domain.VetFundRequest]{
	Name: "vet_fund",
	Schema: validate.New(
		personName("name"),
		validate.Email("email").Required(""),
		validate.Phone("phone").Required(""),
		validate.String("petName").Required("Pet name is required").MaxLen(100, "Must be less than 100 characters"),
		validate.Enum("petSpecies", petSpecies...).Required("Please select pet type").Invalid("Please select pet type"),
		validate.String("vetClinic").Required("Vet clinic name is required").MaxLen(200, "Must be less than 200 characters"),
		validate.String("diagnosis").Required("Please describe the diagnosis").MaxLen(2000, "Must be less than 2000 characters"),
		validate.Int("estimatedCost").Required("Please enter the estimated cost").Invalid("Please enter the estimated cost").
			Min(50, "Minimum request is $50").
			Max(5000, "Maximum request is $5,000. For higher amounts, please contact us."),
		validate.Bool("isEmergency").Required("Please tell us if this is an emergency"),
		details("situation", "Please describe your situation"),
		validate.Bool("hasAppliedElsewhere"),
		text("otherFunding", 500),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.VetFundRequest {
		return domain.VetFundRequest{
			Name:                v.String("name"),
			Email:               v.String("email"),
			Phone:               v.String("phone"),
			PetName:             v.String("petName"),
			PetSpecies:          v.String("petSpecies"),
			VetClinic:           v.String("vetClinic"),
			Diagnosis:           v.String("diagnosis"),
			EstimatedCost:       v.Int("estimatedCost"),
			IsEmergency:         v.Bool("isEmergency"),
			Situation:           v.String("situation"),
			HasAppliedElsewhere: v.BoolPtr("hasAppliedElsewhere"),
			OtherFunding:        v.String("otherFunding"),
			City:                t.Slug,
		}
	},
	Notices: func(r domain.VetFundRequest, t tenant.Config) []notify.Notice {
		subject := fmt.Sprintf("[Vet Fund] %s - %s ($%s)", r.Name, r.PetName, dollars(r.EstimatedCost))
		if r.IsEmergency {
			subject = "URGENT " + subject
		}
		return []notify.Notice{
			summary(t, r.Email, subject, "New Vet Fund Request",
				notify.Field("Name", r.Name),
				notify.Field("Email", r.Email),
				notify.Field("Phone", r.Phone),
				notify.Field("Pet", r.PetName+" ("+r.PetSpecies+")"),
				notify.Field("Clinic", r.VetClinic),
				notify.Field("Diagnosis", r.Diagnosis),
				notify.Field("Estimated cost", "$"+dollars(r.EstimatedCost)),
				notify.Field("Emergency", yesNo(&r.IsEmergency)),
				notify.Field("Situation", r.Situation),
			),
			{
				Template: notify.TemplateVetFundConfirmation,
				To:       r.Email,
				Subject:  "Emergency Vet Fund Application Received",
				Data:     map[string]any{"name": r.Name, "pet_name": r.PetName},
			},
		}
	},
}

// DepositForm handles pet deposit assistance applications.
var DepositForm = Form[domain.DepositAssistanceRequest]{
	Name: "deposit_assistance",
	Schema: validate.New(
		personName("name"),
		validate.Email("email").Required(""),
		validate.Phone("phone").Required(""),
		validate.String("petName").Required("Pet name is required").MaxLen(100, "Must be less than 100 characters"),
		validate.Enum("petSpecies", petSpecies...).Required("Please select pet type").Invalid("Please select pet type"),
		validate.String("landlordName").Required("Landlord/property manager name is required").MaxLen(200, "Must be less than 200 characters"),
		validate.Int("depositAmount").Required("Please enter a valid amount").Invalid("Please enter a valid amount").
			Min(50, "Minimum request is $50").
			Max(2000, "Maximum request is $2,000"),
		validate.Number("monthlyIncome").Invalid("Please enter your monthly income").Min(0, "Income cannot be negative"),
		details("situation", "Please describe your situation"),
		validate.Bool("canRepay").Required("Please tell us if you can repay"),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.DepositAssistanceRequest {
		return domain.DepositAssistanceRequest{
			Name:          v.String("name"),
			Email:         v.String("email"),
			Phone:         v.String("phone"),
			PetName:       v.String("petName"),
			PetSpecies:    v.String("petSpecies"),
			LandlordName:  v.String("landlordName"),
			DepositAmount: v.Int("depositAmount"),
			MonthlyIncome: v.FloatPtr("monthlyIncome"),
			Situation:     v.String("situation"),
			CanRepay:      v.Bool("canRepay"),
			City:          t.Slug,
		}
	},
	Notices: func(d domain.DepositAssistanceRequest, t tenant.Config) []notify.Notice {
		return []notify.Notice{
			summary(t, d.Email, fmt.Sprintf("[Deposit] %s - $%s", d.Name, dollars(d.DepositAmount)), "New Deposit Assistance Application",
				notify.Field("Name", d.Name),
				notify.Field("Email", d.Email),
				notify.Field("Phone", d.Phone),
				notify.Field("Pet", d.PetName+" ("+d.PetSpecies+")"),
				notify.Field("Landlord", d.LandlordName),
				notify.Field("Amount", "$"+dollars(d.DepositAmount)),
				notify.Field("Can repay", yesNo(&d.CanRepay)),
				notify.Field("Situation", d.Situation),
			),
			{
				Template: notify.TemplateDepositConfirmation,
				To:       d.Email,
				Subject:  "Deposit Assistance Application Received",
				Data:     map[string]any{"name": d.Name, "amount": dollars(d.DepositAmount)},
			},
		}
	},
}

// SurrenderForm handles surrender prevention requests.
var SurrenderForm = Form[domain.SurrenderPreventionRequest]{
	Name: "surrender_prevention",
	Schema: validate.New(
		personName("name"),
		validate.Email("email").Required(""),
		validate.Phone("phone"),
		validate.String("petInfo").Required("Please describe your pet(s)").MaxLen(2000, "Must be less than 2000 characters"),
		validate.List("reasons").Required("Please select at least one reason").MinItems(1, "Please select at least one reason"),
		text("otherReason", 500),
		validate.String("timeline").Required("Please select a timeline").MaxLen(50, "Please select a timeline"),
		text("whatWouldHelp", 2000),
		text("triedOptions", 2000),
		cityField(),
	),
	Decode: func(v validate.Values, t tenant.Config) domain.SurrenderPreventionRequest {
		return domain.SurrenderPreventionRequest{
			Name:          v.String("name"),
			Email:         v.String("email"),
			Phone:         v.String("phone"),
			PetInfo:       v.String("petInfo"),
			Reasons:       v.Strings("reasons"),
			OtherReason:   v.String("otherReason"),
			Timeline:      v.String("timeline"),
			WhatWouldHelp: v.String("whatWouldHelp"),
			TriedOptions:  v.String("triedOptions"),
			City:          t.Slug,
		}
	},
	Notices: func(s domain.SurrenderPreventionRequest, t tenant.Config) []notify.Notice {
		subject := "[Surrender Prevention] " + s.Name
		if s.Urgent() {
			subject = "URGENT " + subject
		}
		return []notify.Notice{
			summary(t, s.Email, subject, "New Surrender Prevention Case",
				notify.Field("Name", s.Name),
				notify.Field("Email", s.Email),
				notify.Field("Phone", s.Phone),
				notify.Field("Pet(s)", s.PetInfo),
				notify.Field("Reasons", s.ReasonText()),
				notify.Field("Timeline", s.Timeline),
				notify.Field("What would help", s.WhatWouldHelp),
				notify.Field("Already tried", s.TriedOptions),
			),
			{
				Template: notify.TemplateSurrenderResources,
				To:       s.Email,
				Subject:  "We're Here to Help - " + t.Name,
				Data:     map[string]any{"name": s.Name, "pet_info": s.PetInfo, "urgent": s.Urgent()},
			},
		}
	},
}

// summary builds an operator notification listing non-empty fields.
func summary(t tenant.Config, replyTo, subject, title string, fields ...map[string]any) notify.Notice {
	kept := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		if s, ok := f["value"].(string); ok && s == "" {
			continue
		}
		kept = append(kept, f)
	}
	return notify.Notice{
		Template: notify.TemplateSubmissionSummary,
		To:       t.NotificationEmail,
		ReplyTo:  replyTo,
		Subject:  subject,
		Data:     map[string]any{"title": title, "fields": kept},
	}
}
