package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	ListClients(ctx context.Context) ([]*Client, error)
	CreateClient(ctx context.Context, c *Client) error
	AppendDebt(ctx context.Context, clientID string, d Debt) (*Client, error)
	MarkDebtPaid(ctx context.Context, clientID, debtID string) (*Client, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name               string
	Phone              string
	Deposit            float64
	InitialDebt        float64
	InitialProductName string
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

// Create persists a new client. When an initial debt amount is given, a
// single unpaid entry is created alongside it and TotalDebt is seeded from
// that entry; otherwise the client starts with an empty debt list.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, &ValidationError{Field: "name"}
	}

	if strings.TrimSpace(params.Phone) == "" {
		return nil, &ValidationError{Field: "phone"}
	}

	c := &Client{
		Name:    params.Name,
		Phone:   params.Phone,
		Deposit: params.Deposit,
	}

	if params.InitialDebt != 0 {
		productName := params.InitialProductName
		if productName == "" {
			productName = DefaultProductName
		}

		c.Debts = []Debt{{
			ID:          uuid.NewString(),
			Amount:      params.InitialDebt,
			ProductName: productName,
			Date:        time.Now().UTC(),
		}}
	}

	c.TotalDebt = c.UnpaidTotal()

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// AddDebt appends one unpaid entry to the client's list. The store grows
// TotalDebt together with the push, so the total stays consistent with the
// unpaid entries after the call.
func (s *Service) AddDebt(ctx context.Context, clientID string, amount float64, productName string) (*Client, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, &ValidationError{Field: "productName"}
	}

	d := Debt{
		ID:          uuid.NewString(),
		Amount:      amount,
		ProductName: productName,
		Date:        time.Now().UTC(),
	}

	return s.repo.AppendDebt(ctx, clientID, d)
}

// PayDebt marks the entry paid and recomputes TotalDebt from the unpaid
// entries that remain. Paying an already-paid entry is a no-op, not an error.
func (s *Service) PayDebt(ctx context.Context, clientID, debtID string) (*Client, error) {
	return s.repo.MarkDebtPaid(ctx, clientID, debtID)
}
