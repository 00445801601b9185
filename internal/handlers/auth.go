package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"reelpress/internal/apperr"
	"reelpress/internal/middleware"
	"reelpress/internal/session"
	"reelpress/internal/store"
)

// Auth groups all authentication-related HTTP handlers. The admin
// front-end is a JSON client, so every endpoint returns the standard
// envelope instead of rendering pages.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{sessions: sessions, userStore: userStore}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Needs2FA    bool   `json:"needs_2fa"`
	NeedsSetup  bool   `json:"needs_2fa_setup"`
}

// Login verifies credentials and opens a session. If the account has
// 2FA enabled the session starts unverified and the client must call
// the verify endpoint before reaching protected routes.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		respondErr(w, apperr.Upstream("login failed", err))
		return
	}

	// Same message for unknown accounts and wrong passwords.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		respondErr(w, apperr.Validation("invalid email or password"))
		return
	}

	// Every account goes through TOTP: existing enrollments must verify
	// a code, fresh accounts must complete setup first.
	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
		CreatedAt:   time.Now(),
	}

	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		respondErr(w, apperr.Upstream("creating session", err))
		return
	}

	slog.Info("user logged in", "email", user.Email)
	respondOK(w, loginResponse{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		Needs2FA:    user.TOTPEnabled,
		NeedsSetup:  user.Needs2FASetup(),
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("destroying session", "error", err)
	}
	respondOK(w, nil)
}

// Me returns the current session's identity. The admin front-end calls
// it on load to restore login state.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondErr(w, apperr.Validation("not authenticated"))
		return
	}
	respondOK(w, loginResponse{
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		Role:        sess.Role,
		Needs2FA:    !sess.TwoFADone,
	})
}

type twoFASetupResponse struct {
	Secret string `json:"secret"`
	QRPNG  string `json:"qr_png_base64"`
}

// TwoFASetup generates a fresh TOTP secret for the logged-in user and
// returns it with a QR code for authenticator apps. The secret only
// becomes active after a successful verify.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondErr(w, apperr.Validation("not authenticated"))
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil {
		respondErr(w, apperr.Upstream("loading user", err))
		return
	}
	if user == nil {
		respondErr(w, apperr.NotFound("user"))
		return
	}

	// Once 2FA is enabled, only a session that has passed the challenge
	// may rotate the secret. Otherwise a stolen password alone would be
	// enough to re-enroll and bypass the second factor.
	if user.TOTPEnabled && !sess.TwoFADone {
		respondErr(w, apperr.Validation("two-factor verification required before changing the secret"))
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Northlight Films",
		AccountName: sess.Email,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("generating totp secret", err))
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		respondErr(w, apperr.Upstream("saving totp secret", err))
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		respondErr(w, apperr.Upstream("encoding qr code", err))
		return
	}

	respondOK(w, twoFASetupResponse{
		Secret: key.Secret(),
		QRPNG:  base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify checks a TOTP code. On the first successful verification
// 2FA is enabled for the account; on every success the session is
// marked verified.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondErr(w, apperr.Validation("not authenticated"))
		return
	}

	var req twoFAVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil {
		respondErr(w, apperr.Upstream("loading user", err))
		return
	}
	if user == nil || user.TOTPSecret == nil {
		respondErr(w, apperr.Validation("two-factor setup has not been started"))
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		respondErr(w, apperr.Validation("invalid verification code"))
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			respondErr(w, apperr.Upstream("enabling totp", err))
			return
		}
		slog.Info("2fa enabled", "email", user.Email)
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		respondErr(w, apperr.Upstream("updating session", err))
		return
	}

	respondOK(w, nil)
}
