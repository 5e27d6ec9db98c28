package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pawsnclaws/intake-api/internal/config"
	"github.com/pawsnclaws/intake-api/internal/pkg/httputil"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
)

const (
	stateCookie       = "oauth_state"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	passwordSubject   = "admin"
)

// GoogleUserInfo represents the user info returned by Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	HD            string `json:"hd"`
}

// Manager issues and checks admin sessions. Google OAuth and password login
// both produce the same server-side session behind an HttpOnly cookie.
type Manager struct {
	cfg          config.AuthConfig
	oauth2Config *oauth2.Config
	sessions     SessionStore
	appURL       string
	userInfoURL  string
	now          func() time.Time
}

// NewManager creates an authentication manager. appURL is where the admin
// UI lives; OAuth redirects land there.
func NewManager(cfg config.AuthConfig, appURL string, sessions SessionStore) *Manager {
	appURL = strings.TrimRight(appURL, "/")
	redirect := cfg.RedirectURL
	if redirect == "" {
		redirect = appURL + "/auth/callback"
	}
	return &Manager{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  redirect,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		sessions:    sessions,
		appURL:      appURL,
		userInfoURL: googleUserInfoURL,
		now:         time.Now,
	}
}

// GoogleEnabled reports whether OAuth credentials are configured.
func (am *Manager) GoogleEnabled() bool {
	return am.cfg.GoogleClientID != "" && am.cfg.GoogleClientSecret != ""
}

// allowed reports whether email may administer the site.
func (am *Manager) allowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range am.cfg.AdminEmails {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	if am.cfg.AllowedDomain == "" {
		return false
	}
	_, domain, ok := strings.Cut(email, "@")
	return ok && domain == strings.ToLower(am.cfg.AllowedDomain)
}

func (am *Manager) fail(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, am.appURL+"/admin/login?error="+reason, http.StatusTemporaryRedirect)
}

// HandleLogin initiates the Google OAuth flow
func (am *Manager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !am.GoogleEnabled() {
		am.fail(w, r, "oauth_disabled")
		return
	}
	state, err := generateToken()
	if err != nil {
		httputil.InternalError(w, err, "Failed to start login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   am.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	if am.cfg.AllowedDomain != "" {
		opts = append(opts, oauth2.SetAuthURLParam("hd", am.cfg.AllowedDomain))
	}
	http.Redirect(w, r, am.oauth2Config.AuthCodeURL(state, opts...), http.StatusTemporaryRedirect)
}

// HandleCallback processes the OAuth callback from Google
func (am *Manager) HandleCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || r.URL.Query().Get("state") != state.Value {
		logger.Warn("auth: oauth state mismatch")
		am.fail(w, r, "invalid_state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		logger.Warn("auth: google returned error", "error", errMsg)
		am.fail(w, r, "access_denied")
		return
	}

	token, err := am.oauth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		logger.Error("auth: code exchange failed", "error", err)
		am.fail(w, r, "exchange_failed")
		return
	}

	info, err := am.getUserInfo(r.Context(), token)
	if err != nil {
		logger.Error("auth: userinfo failed", "error", err)
		am.fail(w, r, "userinfo_failed")
		return
	}
	if !info.VerifiedEmail || !am.allowed(info.Email) {
		logger.Warn("auth: account not allowed", "email", info.Email)
		am.fail(w, r, "not_allowed")
		return
	}

	if err := am.startSession(w, r, &Session{
		Email:   strings.ToLower(info.Email),
		Name:    info.Name,
		Picture: info.Picture,
		Method:  MethodGoogle,
	}); err != nil {
		logger.Error("auth: session create failed", "error", err)
		am.fail(w, r, "session_failed")
		return
	}
	http.Redirect(w, r, am.appURL+"/admin", http.StatusTemporaryRedirect)
}

type passwordLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandlePasswordLogin accepts {email?, password} and checks the password
// against the configured bcrypt hash.
func (am *Manager) HandlePasswordLogin(w http.ResponseWriter, r *http.Request) {
	var req passwordLogin
	if !httputil.Decode(w, r, &req) {
		return
	}
	if !CheckPassword(am.cfg.AdminPasswordHash, req.Password) {
		logger.Warn("auth: password login rejected", "email", req.Email)
		httputil.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = passwordSubject
	}
	if err := am.startSession(w, r, &Session{Email: email, Name: "Administrator", Method: MethodPassword}); err != nil {
		httputil.InternalError(w, err, "Failed to create session")
		return
	}
	httputil.Success(w, "Logged in")
}

func (am *Manager) startSession(w http.ResponseWriter, r *http.Request, s *Session) error {
	id, err := generateToken()
	if err != nil {
		return err
	}
	now := am.now()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(am.cfg.SessionTTL())
	if err := am.sessions.Save(r.Context(), id, s); err != nil {
		return err
	}
	logger.Info("auth: admin logged in", "email", s.Email, "method", s.Method)

	http.SetCookie(w, &http.Cookie{
		Name:     am.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   am.cfg.CookieMaxAge,
		HttpOnly: true,
		Secure:   am.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// HandleLogout ends the session. It answers JSON so the admin UI can call it
// with fetch.
func (am *Manager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(am.cfg.CookieName); err == nil {
		if err := am.sessions.Delete(r.Context(), cookie.Value); err != nil {
			logger.Warn("auth: session delete failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: am.cfg.CookieName, Value: "", Path: "/", MaxAge: -1})
	httputil.Success(w, "Logged out")
}

// HandleUserInfo returns the current admin as JSON
func (am *Manager) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	s := am.GetSession(r)
	if s == nil {
		httputil.JSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}
	httputil.OK(w, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"email":      s.Email,
			"name":       s.Name,
			"picture":    s.Picture,
			"method":     s.Method,
			"expires_at": s.ExpiresAt,
		},
	})
}

// GetSession returns the session for the current request, or nil if not authenticated
func (am *Manager) GetSession(r *http.Request) *Session {
	cookie, err := r.Cookie(am.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	s, err := am.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			logger.Warn("auth: session lookup failed", "error", err)
		}
		return nil
	}
	return s
}

type sessionKey struct{}

// SessionFrom returns the admin session attached by RequireAdmin.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}

// RequireAdmin is middleware that rejects requests without a valid session.
func (am *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := am.GetSession(r)
		if s == nil {
			httputil.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
	})
}

// getUserInfo fetches the user's profile from Google
func (am *Manager) getUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := am.oauth2Config.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, am.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google API error (status %d): %s", resp.StatusCode, string(body))
	}

	var info GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &info, nil
}

// ValidateCredentials probes Google's token endpoint with a dummy code so
// rotated or wrong OAuth credentials show up at boot instead of at first login.
func (am *Manager) ValidateCredentials(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := am.oauth2Config.Exchange(ctx, "validation_probe")
	if err == nil {
		return nil
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant", "invalid_request", "redirect_uri_mismatch":
			return nil
		case "invalid_client":
			return fmt.Errorf("google oauth credentials rejected (invalid_client)")
		}
		return fmt.Errorf("unexpected token endpoint response (HTTP %d): %s", re.Response.StatusCode, re.ErrorCode)
	}
	return fmt.Errorf("token endpoint unreachable: %w", err)
}
