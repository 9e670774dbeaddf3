package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mehdislim/carnet/internal/client"
	clientHandler "github.com/mehdislim/carnet/internal/http/client"
)

func newTestRouter(repo client.Repository) http.Handler {
	h := clientHandler.NewHandler(client.NewService(repo))

	r := chi.NewRouter()
	r.Route("/api/clients", func(r chi.Router) {
		h.Routes(r)
	})

	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

type debtBody struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	ProductName string    `json:"productName"`
	Date        time.Time `json:"date"`
	Paid        bool      `json:"paid"`
}

type clientBody struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Deposit   float64    `json:"deposit"`
	TotalDebt float64    `json:"totalDebt"`
	Debts     []debtBody `json:"debts"`
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().ListClients(gomock.Any()).Return([]*client.Client{
		{ID: "65f000000000000000000001", Name: "Amir", Phone: "0600000000", TotalDebt: 150,
			Debts: []client.Debt{{ID: "d1", Amount: 150, ProductName: "Phone case", Date: time.Now()}}},
		{ID: "65f000000000000000000002", Name: "Lina", Phone: "0611111111"},
	}, nil)

	rec := doJSON(t, newTestRouter(repo), http.MethodGet, "/api/clients", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []clientBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Amir", got[0].Name)
	assert.Len(t, got[0].Debts, 1)

	// A client without debts serializes as an empty array, not null.
	assert.Contains(t, rec.Body.String(), `"debts":[]`)
}

func TestHandler_List_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().ListClients(gomock.Any()).Return(nil, errors.New("store unreachable"))

	rec := doJSON(t, newTestRouter(repo), http.MethodGet, "/api/clients", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "store unreachable", body["message"])
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *client.Client) error {
			c.ID = "65f000000000000000000001"
			return nil
		})

	body := `{"name":"Amir","phone":"0600000000","initialDebt":150,"initialProductName":"Phone case"}`
	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got clientBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "65f000000000000000000001", got.ID)
	assert.Equal(t, "Amir", got.Name)
	assert.Equal(t, "0600000000", got.Phone)
	assert.Equal(t, 150.0, got.TotalDebt)
	require.Len(t, got.Debts, 1)
	assert.Equal(t, 150.0, got.Debts[0].Amount)
	assert.Equal(t, "Phone case", got.Debts[0].ProductName)
	assert.False(t, got.Debts[0].Paid)
	assert.NotEmpty(t, got.Debts[0].ID)
	assert.False(t, got.Debts[0].Date.IsZero())
}

func TestHandler_Create_MissingPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No CreateClient expectation: nothing may be persisted.
	repo := client.NewMockRepository(ctrl)

	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients", `{"name":"Amir"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "phone is required", body["message"])
}

func TestHandler_Create_DuplicatePhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateClient(gomock.Any(), gomock.Any()).
		Return(client.ErrPhoneTaken)

	body := `{"name":"Lina","phone":"0600000000"}`
	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone number already in use")
}

func TestHandler_Create_NonNumericInitialDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)

	body := `{"name":"Amir","phone":"0600000000","initialDebt":"plenty"}`
	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AddDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		AppendDebt(gomock.Any(), "65f000000000000000000001", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, d client.Debt) (*client.Client, error) {
			return &client.Client{
				ID:        id,
				Name:      "Amir",
				Phone:     "0600000000",
				TotalDebt: 200,
				Debts: []client.Debt{
					{ID: "d1", Amount: 150, ProductName: "Phone case", Date: time.Now()},
					d,
				},
			}, nil
		})

	body := `{"amount":50,"productName":"Charger"}`
	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients/65f000000000000000000001/debts", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got clientBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 200.0, got.TotalDebt)
	require.Len(t, got.Debts, 2)
	assert.Equal(t, "Charger", got.Debts[1].ProductName)
	assert.Equal(t, 50.0, got.Debts[1].Amount)
}

func TestHandler_AddDebt_MissingAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)

	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients/65f000000000000000000001/debts", `{"productName":"Charger"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount is required")
}

func TestHandler_AddDebt_ClientNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		AppendDebt(gomock.Any(), "65f00000000000000000dead", gomock.Any()).
		Return(nil, client.ErrNotFound)

	body := `{"amount":10,"productName":"X"}`
	rec := doJSON(t, newTestRouter(repo), http.MethodPost, "/api/clients/65f00000000000000000dead/debts", body)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Client not found", got["message"])
}

func TestHandler_PayDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	paid := &client.Client{
		ID:        "65f000000000000000000001",
		Name:      "Amir",
		Phone:     "0600000000",
		TotalDebt: 50,
		Debts: []client.Debt{
			{ID: "d1", Amount: 150, ProductName: "Phone case", Date: time.Now(), Paid: true},
			{ID: "d2", Amount: 50, ProductName: "Charger", Date: time.Now()},
		},
	}

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		MarkDebtPaid(gomock.Any(), "65f000000000000000000001", "d1").
		Return(paid, nil).
		Times(2)

	router := newTestRouter(repo)

	rec := doJSON(t, router, http.MethodPut, "/api/clients/65f000000000000000000001/debts/d1/pay", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got clientBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Debts[0].Paid)
	assert.False(t, got.Debts[1].Paid)
	assert.Equal(t, 50.0, got.TotalDebt)

	// Paying the same entry again returns the same state.
	again := doJSON(t, router, http.MethodPut, "/api/clients/65f000000000000000000001/debts/d1/pay", "")
	require.Equal(t, http.StatusOK, again.Code)
	assert.JSONEq(t, rec.Body.String(), again.Body.String())
}

func TestHandler_PayDebt_DebtNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		MarkDebtPaid(gomock.Any(), "65f000000000000000000001", "missing").
		Return(nil, client.ErrDebtNotFound)

	rec := doJSON(t, newTestRouter(repo), http.MethodPut, "/api/clients/65f000000000000000000001/debts/missing/pay", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Dette not found", got["message"])
}

func TestHandler_PayDebt_ClientNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		MarkDebtPaid(gomock.Any(), "65f00000000000000000dead", "d1").
		Return(nil, client.ErrNotFound)

	rec := doJSON(t, newTestRouter(repo), http.MethodPut, "/api/clients/65f00000000000000000dead/debts/d1/pay", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Client not found")
}
