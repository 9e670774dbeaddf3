package client

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mehdislim/carnet/internal/client"
)

type clientResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Deposit   float64        `json:"deposit"`
	TotalDebt float64        `json:"totalDebt"`
	Debts     []debtResponse `json:"debts"`
}

type debtResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	ProductName string    `json:"productName"`
	Date        time.Time `json:"date"`
	Paid        bool      `json:"paid"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func toResponse(c *client.Client) clientResponse {
	debts := make([]debtResponse, len(c.Debts))
	for i, d := range c.Debts {
		debts[i] = debtResponse{
			ID:          d.ID,
			Amount:      d.Amount,
			ProductName: d.ProductName,
			Date:        d.Date,
			Paid:        d.Paid,
		}
	}

	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Deposit:   c.Deposit,
		TotalDebt: c.TotalDebt,
		Debts:     debts,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
