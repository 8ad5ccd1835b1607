package httpapi

import (
	"net/http"
	"strings"
	"time"

	"stitchmart.org/internal/audit"
	"stitchmart.org/internal/auth"
	"stitchmart.org/internal/obs"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetToken      string `json:"resetToken"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type permissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// userView is the outward shape of an account. The password hash and any
// pending reset credential never leave the service.
type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserView(u *auth.User) userView {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, string(p))
	}
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Permissions: perms,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, credential, err := a.cfg.Accounts.Signup(r.Context(), req.Email, req.Password)
	obs.CountSignup(err == nil)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "account.signup", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})

	auth.AttachSession(w, credential, a.cfg.Cookie)
	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserView(user)})
}

func (a *API) handleSignin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, credential, err := a.cfg.Accounts.Signin(r.Context(), req.Email, req.Password)
	obs.CountSignin(err == nil)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "account.signin", map[string]any{
		"user_id": user.ID,
	})

	auth.AttachSession(w, credential, a.cfg.Cookie)
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserView(user)})
}

// handleSignout clears the session cookie. Idempotent: signing out without a
// session succeeds the same way.
func (a *API) handleSignout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		_ = audit.LogEvent(r.Context(), "account.signout", map[string]any{
			"user_id": userID,
		})
	}
	auth.ClearSession(w, a.cfg.Cookie)
	writeJSON(w, http.StatusOK, map[string]any{"message": "goodbye"})
}

func (a *API) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req requestResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.cfg.Accounts.RequestReset(r.Context(), req.Email)
	obs.CountPasswordReset("request", err == nil)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "account.reset.requested", map[string]any{
		"email": strings.ToLower(strings.TrimSpace(req.Email)),
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "check your email"})
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, credential, err := a.cfg.Accounts.ResetPassword(r.Context(), req.ResetToken, req.Password, req.ConfirmPassword)
	obs.CountPasswordReset("redeem", err == nil)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "account.reset.redeemed", map[string]any{
		"user_id": user.ID,
	})

	auth.AttachSession(w, credential, a.cfg.Cookie)
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserView(user)})
}

// handleMe is public: anonymous callers get a null user rather than 401, so
// the storefront can render its signed-out state from the same call.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	user, err := a.actingUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserView(user)})
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	users, err := a.cfg.Accounts.Users(r.Context(), acting)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": views})
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/users/")
	id, ok := strings.CutSuffix(path, "/permissions")
	if !ok || id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}

	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	var req permissionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.cfg.Accounts.UpdatePermissions(r.Context(), acting, id, req.Permissions)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "account.permissions.updated", map[string]any{
		"target_user_id": user.ID,
		"permissions":    req.Permissions,
	})

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserView(user)})
}
