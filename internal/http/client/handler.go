package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mehdislim/carnet/internal/client"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{clientID}/debts", h.addDebt)
	r.Put("/{clientID}/debts/{debtID}/pay", h.payDebt)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(clients))
}

type createClientRequest struct {
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Deposit            float64 `json:"deposit"`
	InitialDebt        float64 `json:"initialDebt"`
	InitialProductName string  `json:"initialProductName"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		Name:               req.Name,
		Phone:              req.Phone,
		Deposit:            req.Deposit,
		InitialDebt:        req.InitialDebt,
		InitialProductName: req.InitialProductName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(c))
}

type addDebtRequest struct {
	Amount      *float64 `json:"amount"`
	ProductName string   `json:"productName"`
}

func (h *Handler) addDebt(w http.ResponseWriter, r *http.Request) {
	var req addDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	c, err := h.svc.AddDebt(r.Context(), chi.URLParam(r, "clientID"), *req.Amount, req.ProductName)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) payDebt(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.PayDebt(r.Context(), chi.URLParam(r, "clientID"), chi.URLParam(r, "debtID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

// writeDomainError maps service errors for the write endpoints: missing
// client or entry is 404 with the messages the front end matches on,
// everything else (validation, duplicate phone, store failure) is 400.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		writeError(w, http.StatusNotFound, "Client not found")
	case errors.Is(err, client.ErrDebtNotFound):
		writeError(w, http.StatusNotFound, "Dette not found")
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
