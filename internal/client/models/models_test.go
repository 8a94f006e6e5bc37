package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuelType(t *testing.T) {
	for _, valid := range []string{"petrol", "diesel", "electric", "hybrid"} {
		ft, err := ParseFuelType(valid)
		require.NoError(t, err)
		assert.Equal(t, FuelType(valid), ft)
	}

	_, err := ParseFuelType("kerosene")
	assert.ErrorIs(t, err, ErrUnknownFuelType)

	_, err = ParseFuelType("")
	assert.ErrorIs(t, err, ErrUnknownFuelType)
}

func TestFuelReceipt_ParsedDate(t *testing.T) {
	r := FuelReceipt{Date: "2024-01-05"}
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), r.ParsedDate())

	bad := FuelReceipt{Date: "05/01/2024"}
	assert.True(t, bad.ParsedDate().IsZero())
}

func TestUpdateReceiptRequest_Empty(t *testing.T) {
	var u UpdateReceiptRequest
	assert.True(t, u.Empty())

	amount := 45.0
	u.AmountPaid = &amount
	assert.False(t, u.Empty())
}

func TestUpdateReceiptRequest_OmitsUnchangedFields(t *testing.T) {
	odo := 10500
	u := UpdateReceiptRequest{Odometer: &odo}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"odometer":10500}`, string(b))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}

func TestAuthResponse_Unmarshal(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer","user":{"id":"u1","email":"a@b.c","firstName":"Ada","lastName":"Lovelace","currency":"EUR","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}}`

	var resp AuthResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "EUR", resp.User.Currency)
}
