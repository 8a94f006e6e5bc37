package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
)

// Decimal precision applied when the user leaves a numeric field, so stored
// values are not subject to floating-point display drift.
const (
	MoneyPrecision     = 2
	VolumePrecision    = 2
	UnitPricePrecision = 3
)

// RoundTo rounds v half-away-from-zero to the given number of decimals.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// RoundField normalizes a numeric form field on blur: a parsable value is
// rounded and re-rendered with a fixed number of decimals, anything else is
// returned unchanged for the validation gate to reject later.
func RoundField(value string, places int) string {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strconv.FormatFloat(RoundTo(f, places), 'f', places, 64)
}

type seedKind int

const (
	seedBlank seedKind = iota
	seedOCR
	seedExisting
)

// FormSeed is the explicit tagged origin of a receipt form: a blank manual
// entry, a fresh OCR extraction, or an existing persisted receipt being
// edited. The variant is fixed at construction time and never re-inferred
// from field presence.
type FormSeed struct {
	kind     seedKind
	ocr      *models.OCRResult
	existing *models.FuelReceipt
}

func SeedBlank() FormSeed {
	return FormSeed{kind: seedBlank}
}

func SeedFromOCR(ocr *models.OCRResult) FormSeed {
	return FormSeed{kind: seedOCR, ocr: ocr}
}

func SeedFromReceipt(r *models.FuelReceipt) FormSeed {
	return FormSeed{kind: seedExisting, existing: r}
}

// Editing reports whether submitting this form updates an existing receipt.
func (s FormSeed) Editing() bool {
	return s.kind == seedExisting
}

// Original returns the persisted receipt behind an editing seed.
func (s FormSeed) Original() (*models.FuelReceipt, bool) {
	if s.kind != seedExisting {
		return nil, false
	}
	return s.existing, true
}

// ReceiptForm holds the editable fields exactly as entered. Values stay
// strings until the validation gate parses them; an OCR guess is just a
// pre-filled string the user is free to correct.
type ReceiptForm struct {
	Date            string
	AmountPaid      string
	VolumePurchased string
	AdvertisedPrice string
	Odometer        string
	CarID           string
}

// Prefill produces the initial form for a seed. A blank or field-less seed
// defaults the date to today.
func (s FormSeed) Prefill(now time.Time) ReceiptForm {
	f := ReceiptForm{Date: now.Format(models.DateLayout)}

	switch s.kind {
	case seedOCR:
		if s.ocr == nil {
			return f
		}
		if s.ocr.Date != nil && *s.ocr.Date != "" {
			f.Date = *s.ocr.Date
		}
		if s.ocr.AmountPaid != nil {
			f.AmountPaid = RoundField(strconv.FormatFloat(*s.ocr.AmountPaid, 'f', -1, 64), MoneyPrecision)
		}
		if s.ocr.VolumePurchased != nil {
			f.VolumePurchased = RoundField(strconv.FormatFloat(*s.ocr.VolumePurchased, 'f', -1, 64), VolumePrecision)
		}
		if s.ocr.AdvertisedPrice != nil {
			f.AdvertisedPrice = RoundField(strconv.FormatFloat(*s.ocr.AdvertisedPrice, 'f', -1, 64), UnitPricePrecision)
		}
		if s.ocr.Odometer != nil {
			f.Odometer = strconv.Itoa(*s.ocr.Odometer)
		}
	case seedExisting:
		r := s.existing
		f.Date = r.Date
		f.AmountPaid = strconv.FormatFloat(r.AmountPaid, 'f', -1, 64)
		f.VolumePurchased = strconv.FormatFloat(r.VolumePurchased, 'f', -1, 64)
		f.AdvertisedPrice = strconv.FormatFloat(r.AdvertisedPrice, 'f', -1, 64)
		f.Odometer = strconv.Itoa(r.Odometer)
		f.CarID = r.CarID
	}
	return f
}

// parsedReceipt is the typed result of a form that passed the gate.
type parsedReceipt struct {
	Date            string
	AmountPaid      float64
	VolumePurchased float64
	AdvertisedPrice float64
	Odometer        int
	CarID           string
}

// Validate applies the gate shared by create and update: date parseable,
// the three monetary/volume fields positive numbers, odometer a positive
// integer, a vehicle selected. The first violation is returned as a
// *ValidationError naming the offending field; nothing partial ever
// reaches the backend.
func (f ReceiptForm) Validate() (*parsedReceipt, error) {
	if f.Date == "" {
		return nil, &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse(models.DateLayout, f.Date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}

	amount, err := parsePositiveFloat(f.AmountPaid)
	if err != nil {
		return nil, &ValidationError{Field: "amountPaid", Reason: err.Error()}
	}
	volume, err := parsePositiveFloat(f.VolumePurchased)
	if err != nil {
		return nil, &ValidationError{Field: "volumePurchased", Reason: err.Error()}
	}
	price, err := parsePositiveFloat(f.AdvertisedPrice)
	if err != nil {
		return nil, &ValidationError{Field: "advertisedPrice", Reason: err.Error()}
	}

	odometer, err := strconv.Atoi(f.Odometer)
	if err != nil || odometer <= 0 {
		return nil, &ValidationError{Field: "odometer", Reason: "must be a positive whole number"}
	}

	if f.CarID == "" {
		return nil, &ValidationError{Field: "carId", Reason: "a vehicle must be selected"}
	}

	return &parsedReceipt{
		Date:            f.Date,
		AmountPaid:      amount,
		VolumePurchased: volume,
		AdvertisedPrice: price,
		Odometer:        odometer,
		CarID:           f.CarID,
	}, nil
}

func parsePositiveFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be greater than 0")
	}
	return f, nil
}

// buildUpdate compares each candidate field against the original record and
// includes it only when it changed. The diffable set is this explicit list;
// no reflection.
func buildUpdate(p *parsedReceipt, original *models.FuelReceipt) models.UpdateReceiptRequest {
	var u models.UpdateReceiptRequest

	if p.Date != original.Date {
		u.Date = &p.Date
	}
	if p.AmountPaid != original.AmountPaid {
		u.AmountPaid = &p.AmountPaid
	}
	if p.VolumePurchased != original.VolumePurchased {
		u.VolumePurchased = &p.VolumePurchased
	}
	if p.AdvertisedPrice != original.AdvertisedPrice {
		u.AdvertisedPrice = &p.AdvertisedPrice
	}
	if p.Odometer != original.Odometer {
		u.Odometer = &p.Odometer
	}
	if p.CarID != original.CarID {
		u.CarID = &p.CarID
	}
	return u
}

// DefaultCar picks the vehicle pre-selected for a new receipt: the flagged
// default, falling back to the first available one.
func DefaultCar(cars []models.Car) (models.Car, bool) {
	if len(cars) == 0 {
		return models.Car{}, false
	}
	for _, car := range cars {
		if car.IsDefault {
			return car, true
		}
	}
	return cars[0], true
}

// ReceiptService reconciles receipt forms into create or minimal-update
// payloads and submits them through the API surface.
type ReceiptService struct {
	client api.Client
	log    logging.Logger
}

func NewReceiptService(client api.Client, log logging.Logger) *ReceiptService {
	return &ReceiptService{client: client, log: log}
}

// Submit validates the form and persists it according to the seed variant:
// creating a receipt for blank/OCR seeds, or sending the changed fields for
// an editing seed. When an edit changed nothing, Submit returns ErrNoChanges
// without touching the network.
func (s *ReceiptService) Submit(ctx context.Context, seed FormSeed, form ReceiptForm) (*models.FuelReceipt, error) {
	parsed, err := form.Validate()
	if err != nil {
		return nil, err
	}

	if original, ok := seed.Original(); ok {
		update := buildUpdate(parsed, original)
		if update.Empty() {
			return nil, ErrNoChanges
		}
		s.log.Debug(ctx, "updating receipt", "id", original.ID)
		return s.client.UpdateReceipt(ctx, original.ID, update)
	}

	s.log.Debug(ctx, "creating receipt", "car", parsed.CarID, "date", parsed.Date)
	return s.client.CreateReceipt(ctx, models.CreateReceiptRequest{
		Date:            parsed.Date,
		AmountPaid:      parsed.AmountPaid,
		VolumePurchased: parsed.VolumePurchased,
		AdvertisedPrice: parsed.AdvertisedPrice,
		Odometer:        parsed.Odometer,
		CarID:           parsed.CarID,
	})
}

// Scan uploads a receipt image for OCR and returns the extraction together
// with a pre-filled form seeded from it. The extraction is a guess; nothing
// is persisted until the user confirms through Submit.
func (s *ReceiptService) Scan(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, FormSeed, error) {
	resp, err := s.client.UploadReceiptImage(ctx, filename, image)
	if err != nil {
		return nil, FormSeed{}, err
	}
	if !resp.Success || resp.OCRResult == nil {
		if resp.Error != "" {
			return resp, SeedBlank(), fmt.Errorf("recognition failed: %s", resp.Error)
		}
		return resp, SeedBlank(), nil
	}
	return resp, SeedFromOCR(resp.OCRResult), nil
}

// Delete removes a receipt.
func (s *ReceiptService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteReceipt(ctx, id)
}

// List returns all receipts of the current user.
func (s *ReceiptService) List(ctx context.Context) ([]models.FuelReceipt, error) {
	return s.client.ListReceipts(ctx)
}

// Get returns one receipt.
func (s *ReceiptService) Get(ctx context.Context, id string) (*models.FuelReceipt, error) {
	return s.client.GetReceipt(ctx, id)
}
