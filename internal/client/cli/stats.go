package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/services"
)

// Stats fetches receipts and vehicles and renders the derived statistics.
// An optional vehicle id narrows the view; the per-vehicle breakdown is
// shown only for the unfiltered view.
func (a *App) Stats(ctx context.Context) error {
	carID, err := a.prompt("Vehicle id to filter by (empty for all)")
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

	stats := services.ComputeStatistics(receipts, cars, carID, time.Now())

	printlnFn(fmt.Sprintf("Total spent:        %.2f", stats.TotalSpent))
	printlnFn(fmt.Sprintf("Receipts:           %d", stats.ReceiptCount))
	printlnFn(fmt.Sprintf("This month:         %.2f", stats.ThisMonthSpent))
	printlnFn(fmt.Sprintf("Average fill-up:    %.2f", stats.AveragePerFillUp))
	printlnFn(fmt.Sprintf("Volume purchased:   %.2f", stats.TotalVolumePurchased))
	printlnFn(fmt.Sprintf("Distance traveled:  %d", stats.DistanceTraveled))
	if stats.EfficiencyAvailable {
		printlnFn(fmt.Sprintf("Fuel efficiency:    %.2f km/l", stats.FuelEfficiency))
	} else {
		printlnFn("Fuel efficiency:    not enough data")
	}

	if len(stats.MonthlySpending) > 0 {
		printlnFn("Monthly spending:")
		months := make([]string, 0, len(stats.MonthlySpending))
		for m := range stats.MonthlySpending {
			months = append(months, m)
		}
		sort.Strings(months)
		for _, m := range months {
			printlnFn(fmt.Sprintf("  %s  %.2f", m, stats.MonthlySpending[m]))
		}
	}

	if len(stats.Cars) > 0 {
		printlnFn("Per vehicle:")
		for _, item := range stats.Cars {
			printlnFn(fmt.Sprintf("  %-20s %3d receipts  %10.2f  %5.1f%%",
				item.Car.Name, item.Receipts, item.TotalSpent, item.Percentage))
		}
	}
	return nil
}
