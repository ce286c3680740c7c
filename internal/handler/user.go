package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/contacts/internal/ctxkeys"
	"github.com/templui/contacts/internal/middleware"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/service"
	"github.com/templui/contacts/internal/ui"
	"github.com/templui/contacts/internal/validation"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.RegisterPage(validation.RegisterForm{}, nil))
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := validation.RegisterForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Username:  r.PostFormValue("username"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}

	user, err := h.authService.Register(r.Context(), &form)
	if errs, ok := asValidation(err); ok {
		ui.Render(w, r, ui.RegisterPage(form, errs))
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err, "username", form.Username)
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, middleware.LoginPath+"?registered=1", http.StatusSeeOther)
}

func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	notice := ""
	if r.URL.Query().Get("registered") == "1" {
		notice = "User registered."
	}
	ui.Render(w, r, ui.LoginPage("", false, notice))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.authService.Login(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		slog.Warn("password login failed", "username", username)
		ui.Render(w, r, ui.LoginPage(username, true, ""))
		return
	}
	if err != nil {
		slog.Error("failed to log in", "error", err, "username", username)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	if err := h.authService.StartSession(w, user); err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, middleware.HomePath+"?welcome=1", http.StatusSeeOther)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (h *UserHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	form := validation.ProfileForm{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
	}
	ui.Render(w, r, ui.ProfilePage(form, nil, r.URL.Query().Get("saved") == "1"))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	form := validation.ProfileForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Username:  r.PostFormValue("username"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}

	err := h.userService.UpdateProfile(r.Context(), user, &form)
	if errs, ok := asValidation(err); ok {
		ui.Render(w, r, ui.ProfilePage(form, errs, false))
		return
	}
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	slog.Info("profile updated", "user_id", user.ID, "password_changed", form.ChangesPassword())
	http.Redirect(w, r, "/user/update/?saved=1", http.StatusSeeOther)
}

// currentUser reloads the session user with its password hash, which the
// request context does not carry.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	sessionUser := ctxkeys.User(r.Context())

	user, err := h.userService.ByID(r.Context(), sessionUser.ID)
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", sessionUser.ID)
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return nil, false
	}
	return user, true
}
