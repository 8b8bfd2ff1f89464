package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldermuller/dindin/internal/auth"
	"github.com/eldermuller/dindin/internal/http/respond"
	"github.com/eldermuller/dindin/internal/user"
)

type Handler struct {
	svc    *user.Service
	tokens *auth.Service
}

func NewHandler(svc *user.Service, tokens *auth.Service) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// PublicRoutes registers the endpoints that issue identities.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/users", h.register)
	r.Post("/login", h.login)
}

// ProfileRoutes registers the endpoints bound to the authenticated account.
func (h *Handler) ProfileRoutes(r chi.Router) {
	r.Get("/users/me", h.profile)
	r.Put("/users/me", h.updateProfile)
}

const (
	msgMissingFields  = "Todos os campos obrigatórios devem ser informados."
	msgEmailTaken     = "Já existe usuário cadastrado com o e-mail informado."
	msgBadCredentials = "Usuário e/ou senha inválido(s)."
)

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrMissingFields):
		respond.Error(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, user.ErrEmailTaken):
		respond.Error(w, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, user.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, msgBadCredentials)
	default:
		respond.Error(w, http.StatusBadRequest, err.Error())
	}
}

// userRequest carries the signup and profile-update body.
type userRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Register(r.Context(), user.Params{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	User  userResponse `json:"usuario"`
	Token string       `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{User: toResponse(u), Token: token})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.UserID(r.Context())

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.UserID(r.Context())

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), id, user.Params{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
