package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pawsnclaws/intake-api/internal/auth"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/service/intake"
)

// SetupRoutes configures all routes. Public form endpoints carry no auth;
// listings and status changes require an admin session.
func SetupRoutes(h *Handlers, health *HealthChecker, authManager *auth.Manager, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// Credentials are allowed so the admin cookie survives cross-origin calls
	// from the site.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if health != nil {
		r.Get("/health", health.HandleHealth)
		r.Get("/health/live", health.HandleLiveness)
		r.Get("/health/ready", health.HandleReadiness)
	}

	if authManager != nil {
		r.Get("/auth/login", authManager.HandleLogin)
		r.Get("/auth/callback", authManager.HandleCallback)
		r.Post("/auth/password", authManager.HandlePasswordLogin)
		r.Get("/auth/logout", authManager.HandleLogout)
		r.Get("/auth/user", authManager.HandleUserInfo)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", submitForm(h.intake, intake.ContactForm, "Message received", "Failed to send message"))
		r.Post("/colonies/submit", submitForm(h.intake, intake.ColonyForm, "Colony submitted for review", "Failed to submit colony"))
		r.Post("/events/signup", submitForm(h.intake, intake.EventSignupForm, "Successfully signed up for event!", "Failed to sign up. Please try again."))
		r.Post("/volunteer", submitForm(h.intake, intake.VolunteerForm, "Volunteer signup received", "Failed to process signup"))
		r.Post("/foster", submitForm(h.intake, intake.FosterForm, "Foster application received", "Failed to submit application"))
		r.Post("/sponsors/inquiry", submitForm(h.intake, intake.SponsorForm, "Inquiry received", "Failed to submit inquiry"))

		r.Route("/lost-found", func(r chi.Router) {
			r.Get("/", h.ListLostFound)
			r.Post("/", submitForm(h.intake, intake.LostFoundForm, "Report submitted", "Failed to submit report"))
		})

		r.Route("/help", func(r chi.Router) {
			r.Post("/vet-fund", submitForm(h.intake, intake.VetFundForm, "Application received", "Failed to submit application"))
			r.Post("/deposit-assistance", submitForm(h.intake, intake.DepositForm, "Application received", "Failed to submit application"))
			r.Post("/surrender-prevention", submitForm(h.intake, intake.SurrenderForm, "Case submitted", "Failed to submit case"))
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/", h.Subscribe)
			r.Post("/unsubscribe", h.Unsubscribe)
			r.With(requireAdmin(authManager)).Get("/", h.ListSubscribers)
		})

		r.Post("/donations/create-checkout", h.CreateCheckout)
		r.Post("/webhooks/stripe", h.StripeWebhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin(authManager))
			if health != nil {
				r.Get("/db-stats", health.HandleDBStats)
			}
			r.Get("/{kind}", h.ListRecords)
			r.Patch("/{kind}/{id}/status", h.UpdateRecordStatus)
		})
	})

	return r
}

// requireAdmin guards admin routes. Without an auth manager every request
// is rejected.
func requireAdmin(am *auth.Manager) func(http.Handler) http.Handler {
	if am != nil {
		return am.RequireAdmin
	}
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			httputil.Unauthorized(w)
		})
	}
}
