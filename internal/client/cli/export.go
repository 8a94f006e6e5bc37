package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/services"
)

// Export writes the user's receipts to a CSV or JSON file in the working
// directory. The file name encodes the vehicle filter and today's date.
func (a *App) Export(ctx context.Context) error {
	format, err := a.promptDefault("Format (csv or json)", "csv")
	if err != nil {
		return err
	}
	if format != string(services.ExportCSV) && format != string(services.ExportJSON) {
		printlnFn("Unknown format:", format)
		return nil
	}

	carID, err := a.prompt("Vehicle id to filter by (empty for all)")
	if err != nil {
		return err
	}
	from, err := a.prompt("From date YYYY-MM-DD (empty for none)")
	if err != nil {
		return err
	}
	to, err := a.prompt("To date YYYY-MM-DD (empty for none)")
	if err != nil {
		return err
	}

	receipts, err := a.receipts.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	cars, err := a.vehicles.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	carName := ""
	for _, car := range cars {
		if car.ID == carID {
			carName = car.Name
		}
	}

	opts := services.ExportOptions{
		CarID:  carID,
		From:   from,
		To:     to,
		Format: services.ExportFormat(format),
		Fields: services.AllExportFields(),
	}

	filename := services.ExportFilename(carName, opts.Format, time.Now())
	file, err := os.Create(filename)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	defer file.Close()

	if err := services.Export(file, receipts, cars, opts); err != nil {
		if errors.Is(err, services.ErrNothingToExport) {
			printlnFn("No receipts match the criteria.")
			os.Remove(filename)
			return nil
		}
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Exported to", filename)
	return nil
}
