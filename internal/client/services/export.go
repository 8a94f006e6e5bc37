package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
)

// ExportFormat selects the snapshot encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ExportFields controls which columns are included in a snapshot.
type ExportFields struct {
	Date            bool
	AmountPaid      bool
	VolumePurchased bool
	AdvertisedPrice bool
	Odometer        bool
	CarInfo         bool
	FuelType        bool
}

// AllExportFields includes every column.
func AllExportFields() ExportFields {
	return ExportFields{
		Date:            true,
		AmountPaid:      true,
		VolumePurchased: true,
		AdvertisedPrice: true,
		Odometer:        true,
		CarInfo:         true,
		FuelType:        true,
	}
}

// ExportOptions filters and shapes a receipt snapshot.
type ExportOptions struct {
	CarID  string // "" exports all vehicles
	From   string // inclusive YYYY-MM-DD lower bound, "" for none
	To     string // inclusive YYYY-MM-DD upper bound, "" for none
	Format ExportFormat
	Fields ExportFields
}

// ErrNothingToExport reports that no receipts matched the criteria.
var ErrNothingToExport = fmt.Errorf("no receipts match the export criteria")

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ExportFilename builds "fuel_receipts_<car>_<date>.<ext>" style names.
func ExportFilename(carName string, format ExportFormat, now time.Time) string {
	name := "all_cars"
	if carName != "" {
		name = filenameSanitizer.ReplaceAllString(carName, "_")
	}
	return fmt.Sprintf("fuel_receipts_%s_%s.%s", name, now.Format(models.DateLayout), format)
}

// Export writes a CSV or JSON snapshot of the receipts matching opts to w.
// Field inclusion is caller-configurable; the core data contract is not
// affected by what the snapshot leaves out.
func Export(w io.Writer, receipts []models.FuelReceipt, cars []models.Car, opts ExportOptions) error {
	filtered := filterForExport(receipts, opts)
	if len(filtered) == 0 {
		return ErrNothingToExport
	}

	carsByID := make(map[string]models.Car, len(cars))
	for _, car := range cars {
		carsByID[car.ID] = car
	}

	switch opts.Format {
	case ExportJSON:
		return exportJSON(w, filtered, carsByID, opts.Fields)
	default:
		return exportCSV(w, filtered, carsByID, opts.Fields)
	}
}

func filterForExport(receipts []models.FuelReceipt, opts ExportOptions) []models.FuelReceipt {
	out := make([]models.FuelReceipt, 0, len(receipts))
	for _, r := range receipts {
		if opts.CarID != "" && r.CarID != opts.CarID {
			continue
		}
		if opts.From != "" && r.Date < opts.From {
			continue
		}
		if opts.To != "" && r.Date > opts.To {
			continue
		}
		out = append(out, r)
	}
	return out
}

func exportHeaders(fields ExportFields) []string {
	var headers []string
	if fields.Date {
		headers = append(headers, "Date")
	}
	if fields.AmountPaid {
		headers = append(headers, "Amount Paid")
	}
	if fields.VolumePurchased {
		headers = append(headers, "Volume Purchased")
	}
	if fields.AdvertisedPrice {
		headers = append(headers, "Advertised Price")
	}
	if fields.Odometer {
		headers = append(headers, "Odometer")
	}
	if fields.CarInfo {
		headers = append(headers, "Car Name", "Car Make", "Car Model", "Car Year")
	}
	if fields.FuelType {
		headers = append(headers, "Fuel Type")
	}
	return headers
}

func exportRow(r models.FuelReceipt, car models.Car, fields ExportFields) []string {
	var row []string
	if fields.Date {
		row = append(row, r.Date)
	}
	if fields.AmountPaid {
		row = append(row, strconv.FormatFloat(r.AmountPaid, 'f', MoneyPrecision, 64))
	}
	if fields.VolumePurchased {
		row = append(row, strconv.FormatFloat(r.VolumePurchased, 'f', VolumePrecision, 64))
	}
	if fields.AdvertisedPrice {
		row = append(row, strconv.FormatFloat(r.AdvertisedPrice, 'f', UnitPricePrecision, 64))
	}
	if fields.Odometer {
		row = append(row, strconv.Itoa(r.Odometer))
	}
	if fields.CarInfo {
		row = append(row, car.Name, car.Make, car.Model, strconv.Itoa(car.Year))
	}
	if fields.FuelType {
		row = append(row, string(car.FuelType))
	}
	return row
}

func exportCSV(w io.Writer, receipts []models.FuelReceipt, carsByID map[string]models.Car, fields ExportFields) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders(fields)); err != nil {
		return err
	}
	for _, r := range receipts {
		if err := cw.Write(exportRow(r, carsByID[r.CarID], fields)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportJSON(w io.Writer, receipts []models.FuelReceipt, carsByID map[string]models.Car, fields ExportFields) error {
	headers := exportHeaders(fields)
	records := make([]map[string]string, 0, len(receipts))
	for _, r := range receipts {
		row := exportRow(r, carsByID[r.CarID], fields)
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
