package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

const dashboardPath = "/admin/dashboard"

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type LoginPageData struct {
	other.BasePageData
	Form   LoginForm
	Next   string
	Errors map[string]string
}

// safeNext keeps post-login redirects inside the admin area.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") {
		return next
	}
	return dashboardPath
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessions.AdminFromContext(r.Context()); ok {
		http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginForm{}, nil)
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPostHandler: Error parsing form: %v", err)
		h.renderLogin(w, r, http.StatusBadRequest, LoginForm{}, nil, sessions.Flash{Kind: sessions.FlashError, Message: "Something went wrong while processing the form."})
		return
	}

	form := LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		errs, _ := helpers.ValidationMessages(err)
		h.renderLogin(w, r, http.StatusUnprocessableEntity, form, errs)
		return
	}

	admin, err := h.userRepo.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		message := "Login failed. Please try again later."
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, repositories.ErrInvalidCredentials):
			message, status = "Invalid email or password.", http.StatusUnauthorized
		case errors.Is(err, repositories.ErrNotAdmin):
			message, status = "This account does not have access to the admin console.", http.StatusForbidden
		}
		log.Printf("LoginPostHandler: login failed for %s: %v", form.Email, err)
		form.Password = ""
		h.renderLogin(w, r, status, form, nil, sessions.Flash{Kind: sessions.FlashError, Message: message})
		return
	}

	if err := h.sessionStore.SetAdmin(w, r, *admin); err != nil {
		log.Printf("LoginPostHandler: Error setting admin session: %v", err)
		h.renderLogin(w, r, http.StatusInternalServerError, form, nil, sessions.Flash{Kind: sessions.FlashError, Message: "Could not start a session."})
		return
	}
	log.Printf("LoginPostHandler: %s signed in", admin.User.Email)

	http.Redirect(w, r, safeNext(r.PostFormValue("next")), http.StatusSeeOther)
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutHandler: Error clearing session: %v", err)
	}
	if err := h.sessionStore.AddFlashes(w, r, sessions.Flash{Kind: sessions.FlashSuccess, Message: "You have been signed out."}); err != nil {
		log.Printf("LogoutHandler: Error saving flash: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form LoginForm, errs map[string]string, flashes ...sessions.Flash) {
	next := r.PostFormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	data := &LoginPageData{Form: form, Next: next, Errors: errs}
	helpers.GetBaseData(r, &data.BasePageData)
	data.AddFlashes(h.sessionStore.Flashes(w, r)...)
	data.AddFlashes(flashes...)
	data.Title = "Login"
	data.IsAuthPage = true

	_ = h.render.HTML(w, status, "login", data, render.HTMLOptions{Layout: "auth-layout"})
}
