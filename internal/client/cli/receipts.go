package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/services"
)

// promptReceiptForm walks the user through the receipt fields, starting from
// the seed's pre-filled values. Numeric entries are normalized to their fixed
// precision as soon as they are entered, matching what would be stored.
func (a *App) promptReceiptForm(ctx context.Context, seed services.FormSeed) (services.ReceiptForm, error) {
	form := seed.Prefill(time.Now())

	var err error
	if form.Date, err = a.promptDefault("Date (YYYY-MM-DD)", form.Date); err != nil {
		return form, err
	}
	if form.AmountPaid, err = a.promptDefault("Amount paid", form.AmountPaid); err != nil {
		return form, err
	}
	form.AmountPaid = services.RoundField(form.AmountPaid, services.MoneyPrecision)

	if form.VolumePurchased, err = a.promptDefault("Volume purchased", form.VolumePurchased); err != nil {
		return form, err
	}
	form.VolumePurchased = services.RoundField(form.VolumePurchased, services.VolumePrecision)

	if form.AdvertisedPrice, err = a.promptDefault("Advertised price per unit", form.AdvertisedPrice); err != nil {
		return form, err
	}
	form.AdvertisedPrice = services.RoundField(form.AdvertisedPrice, services.UnitPricePrecision)

	if form.Odometer, err = a.promptDefault("Odometer", form.Odometer); err != nil {
		return form, err
	}

	if form.CarID == "" {
		cars, err := a.vehicles.List(ctx)
		if err == nil {
			if car, ok := services.DefaultCar(cars); ok {
				form.CarID = car.ID
			}
			for _, car := range cars {
				printlnFn(fmt.Sprintf("  %s  %s (%s)", car.ID, car.Name, car.Description()))
			}
		}
	}
	if form.CarID, err = a.promptDefault("Vehicle id", form.CarID); err != nil {
		return form, err
	}

	return form, nil
}

func (a *App) submitReceipt(ctx context.Context, seed services.FormSeed, form services.ReceiptForm) error {
	receipt, err := a.receipts.Submit(ctx, seed, form)
	if err != nil {
		if errors.Is(err, services.ErrNoChanges) {
			printlnFn("No changes.")
			return nil
		}
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			printlnFn("Invalid input:", ve.Error())
			return err
		}
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Saved receipt", receipt.ID)
	return nil
}

// Receipts lists the user's fuel receipts, newest first as the backend
// returns them.
func (a *App) Receipts(ctx context.Context) error {
	receipts, err := a.receipts.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(receipts) == 0 {
		printlnFn("No receipts yet.")
		return nil
	}

	for _, r := range receipts {
		printlnFn(fmt.Sprintf("%s  %s  paid %.2f for %.2f @ %.3f  odometer %d  car %s",
			r.ID, r.Date, r.AmountPaid, r.VolumePurchased, r.AdvertisedPrice, r.Odometer, r.CarID))
	}
	return nil
}

// AddReceipt records a fill-up manually.
func (a *App) AddReceipt(ctx context.Context) error {
	seed := services.SeedBlank()
	form, err := a.promptReceiptForm(ctx, seed)
	if err != nil {
		return err
	}
	return a.submitReceipt(ctx, seed, form)
}

// ScanReceipt uploads a receipt photo for recognition and lets the user
// confirm or correct every extracted value before anything is persisted.
func (a *App) ScanReceipt(ctx context.Context) error {
	path, err := a.prompt("Enter path to the receipt image")
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	defer file.Close()

	resp, seed, err := a.receipts.Scan(ctx, filepath.Base(path), file)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if resp.OCRResult != nil {
		printlnFn(fmt.Sprintf("Recognized with %.0f%% confidence, please verify:", resp.OCRResult.Confidence*100))
	}

	form, err := a.promptReceiptForm(ctx, seed)
	if err != nil {
		return err
	}
	return a.submitReceipt(ctx, seed, form)
}

// EditReceipt re-opens an existing receipt for changes. Only fields that
// differ from the stored record are sent to the backend.
func (a *App) EditReceipt(ctx context.Context) error {
	id, err := a.prompt("Enter receipt id to edit")
	if err != nil {
		return err
	}

	original, err := a.receipts.Get(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	seed := services.SeedFromReceipt(original)
	form, err := a.promptReceiptForm(ctx, seed)
	if err != nil {
		return err
	}
	return a.submitReceipt(ctx, seed, form)
}

// DeleteReceipt removes a receipt after confirmation.
func (a *App) DeleteReceipt(ctx context.Context) error {
	id, err := a.prompt("Enter receipt id to delete")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Type 'yes' to confirm deletion")
	if err != nil {
		return err
	}
	if confirm != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.receipts.Delete(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}
