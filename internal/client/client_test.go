package client_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdislim/carnet/internal/client"
)

func TestClient_UnpaidTotal(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		debts []client.Debt
		want  float64
	}{
		{
			name:  "NoDebts",
			debts: nil,
			want:  0,
		},
		{
			name: "AllUnpaid",
			debts: []client.Debt{
				{ID: "a", Amount: 150, Date: date},
				{ID: "b", Amount: 50, Date: date},
			},
			want: 200,
		},
		{
			name: "MixedPaidAndUnpaid",
			debts: []client.Debt{
				{ID: "a", Amount: 150, Date: date, Paid: true},
				{ID: "b", Amount: 50, Date: date},
			},
			want: 50,
		},
		{
			name: "AllPaid",
			debts: []client.Debt{
				{ID: "a", Amount: 150, Date: date, Paid: true},
				{ID: "b", Amount: 50, Date: date, Paid: true},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client.Client{Debts: tt.debts}
			assert.Equal(t, tt.want, c.UnpaidTotal())
		})
	}
}

func TestClient_Debt(t *testing.T) {
	c := &client.Client{
		Debts: []client.Debt{
			{ID: "first", Amount: 10},
			{ID: "second", Amount: 20},
		},
	}

	d := c.Debt("second")
	require.NotNil(t, d)
	assert.Equal(t, 20.0, d.Amount)

	// The returned pointer addresses the client's own entry.
	d.Paid = true
	assert.True(t, c.Debts[1].Paid)

	assert.Nil(t, c.Debt("missing"))
}
