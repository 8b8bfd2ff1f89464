package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eldermuller/dindin/internal/auth"
	"github.com/eldermuller/dindin/internal/http/respond"
	"github.com/eldermuller/dindin/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// User-visible messages kept verbatim from the API contract the browser
// client was built against.
const (
	msgMissingFields    = "Todos os campos obrigatórios devem ser informados."
	msgInvalidType      = "Defina o campo 'tipo' como 'entrada' ou 'saida'."
	msgCategoryNotFound = "A categoria informada não existe."
	msgNotFound         = "Transação não encontrada"
	msgNotFoundForWrite = "A transação informada não foi encontrada."
	msgForbidden        = "O usuário informado não tem permissão para acessar a transação solicitada."
)

// writeError maps service errors onto status codes and messages. notFoundMsg
// differs between the read and write endpoints.
func writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, transaction.ErrMissingFields):
		respond.Error(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, transaction.ErrInvalidKind):
		respond.Error(w, http.StatusBadRequest, msgInvalidType)
	case errors.Is(err, transaction.ErrCategoryNotFound):
		respond.Error(w, http.StatusNotFound, msgCategoryNotFound)
	case errors.Is(err, transaction.ErrNotFound):
		respond.Error(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, transaction.ErrForbidden):
		respond.Error(w, http.StatusForbidden, msgForbidden)
	default:
		// Store failures surface verbatim as a 400.
		respond.Error(w, http.StatusBadRequest, err.Error())
	}
}

// transactionRequest carries the request body shared by create and update.
type transactionRequest struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	CategoryID  int64  `json:"idcategory"`
	Type        string `json:"type"`
}

// params converts the wire body to service params. An unparseable date is
// left zero so the service reports it as a missing field.
func (req transactionRequest) params() transaction.Params {
	return transaction.Params{
		Kind:        transaction.Kind(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
		Date:        parseDate(req.Date),
		CategoryID:  req.CategoryID,
	}
}

func parseDate(s string) time.Time {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}

	t, _ := time.Parse(time.RFC3339, s)

	return t
}

// ownerID reads the user id resolved by the auth middleware. Every route in
// this handler sits behind it.
func ownerID(r *http.Request) int64 {
	id, _ := auth.UserID(r.Context())
	return id
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context(), ownerID(r))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.svc.Get(r.Context(), id, ownerID(r))
	if err != nil {
		writeError(w, err, msgNotFound)
		return
	}

	// The detail endpoint has always answered with a single-element array.
	respond.JSON(w, http.StatusOK, toResponseList([]*transaction.Transaction{tx}))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.svc.Create(r.Context(), ownerID(r), req.params())
	if err != nil {
		writeError(w, err, msgNotFoundForWrite)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), id, ownerID(r), req.params()); err != nil {
		writeError(w, err, msgNotFoundForWrite)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, ownerID(r)); err != nil {
		writeError(w, err, msgNotFoundForWrite)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), ownerID(r))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{Income: sum.Income, Expense: sum.Expense})
}
