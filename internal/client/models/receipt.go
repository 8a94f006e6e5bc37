package models

import "time"

// DateLayout is the wire format for receipt dates.
const DateLayout = "2006-01-02"

// FuelReceipt is a single purchase event tied to one vehicle and one user.
// Monetary and volume values are positive by the time they reach the backend;
// the reconciliation layer enforces that before any request is made.
type FuelReceipt struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	AmountPaid      float64 `json:"amountPaid"`
	VolumePurchased float64 `json:"volumePurchased"`
	AdvertisedPrice float64 `json:"advertisedPrice"`
	Odometer        int     `json:"odometer"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	UserID          string  `json:"userId"`
	CarID           string  `json:"carId"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ParsedDate returns the receipt date as a time.Time. An unparsable date
// yields the zero time; callers sorting by date treat those as oldest.
func (r FuelReceipt) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateReceiptRequest is the payload for persisting a new receipt.
type CreateReceiptRequest struct {
	Date            string  `json:"date"`
	AmountPaid      float64 `json:"amountPaid"`
	VolumePurchased float64 `json:"volumePurchased"`
	AdvertisedPrice float64 `json:"advertisedPrice"`
	Odometer        int     `json:"odometer"`
	CarID           string  `json:"carId"`
	ImageURL        string  `json:"imageUrl,omitempty"`
}

// UpdateReceiptRequest is a minimal partial update: only fields that actually
// changed are non-nil, so unchanged values never churn backend audit
// timestamps. The diffable field set is an explicit, reviewable list.
type UpdateReceiptRequest struct {
	Date            *string  `json:"date,omitempty"`
	AmountPaid      *float64 `json:"amountPaid,omitempty"`
	VolumePurchased *float64 `json:"volumePurchased,omitempty"`
	AdvertisedPrice *float64 `json:"advertisedPrice,omitempty"`
	Odometer        *int     `json:"odometer,omitempty"`
	CarID           *string  `json:"carId,omitempty"`
}

// Empty reports whether the update carries no changed fields.
func (u UpdateReceiptRequest) Empty() bool {
	return u.Date == nil && u.AmountPaid == nil && u.VolumePurchased == nil &&
		u.AdvertisedPrice == nil && u.Odometer == nil && u.CarID == nil
}
