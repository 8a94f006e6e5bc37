package services

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
)

// Statistics is the derived, non-persisted view over a receipt collection.
// Every value is recomputed on each call; there is no cache and no
// independent lifecycle.
type Statistics struct {
	TotalSpent       float64
	ReceiptCount     int
	ThisMonthSpent   float64
	AveragePerFillUp float64

	// DistanceTraveled is highest minus lowest odometer reading in the
	// date-ordered filtered set; 0 with fewer than two records.
	DistanceTraveled int

	// FuelEfficiency is distance over total purchased volume, in distance
	// units per liter. EfficiencyAvailable is false when either side is
	// not positive, instead of reporting a division artifact.
	FuelEfficiency       float64
	EfficiencyAvailable  bool
	TotalVolumePurchased float64

	// MonthlySpending maps "YYYY-MM" to the spend of that month.
	MonthlySpending map[string]float64

	// Cars holds the per-vehicle breakdown; populated only when no vehicle
	// filter is active, and only with vehicles that have receipts.
	Cars []CarBreakdown
}

// CarBreakdown is one vehicle's share of the unfiltered spending.
type CarBreakdown struct {
	Car        models.Car
	Receipts   int
	TotalSpent float64
	Percentage float64
}

// ComputeStatistics derives aggregate metrics from the given receipts and
// cars. A non-empty carID restricts the view to that vehicle; otherwise all
// receipts count and a per-vehicle breakdown is produced. now anchors the
// "current month" bucket. The function is pure: identical inputs yield
// identical outputs.
func ComputeStatistics(receipts []models.FuelReceipt, cars []models.Car, carID string, now time.Time) Statistics {
	filtered := receipts
	if carID != "" {
		filtered = make([]models.FuelReceipt, 0, len(receipts))
		for _, r := range receipts {
			if r.CarID == carID {
				filtered = append(filtered, r)
			}
		}
	}

	stats := Statistics{
		ReceiptCount:    len(filtered),
		MonthlySpending: make(map[string]float64),
	}

	for _, r := range filtered {
		stats.TotalSpent += r.AmountPaid
		stats.TotalVolumePurchased += r.VolumePurchased

		if d := r.ParsedDate(); !d.IsZero() {
			stats.MonthlySpending[d.Format("2006-01")] += r.AmountPaid
			if d.Year() == now.Year() && d.Month() == now.Month() {
				stats.ThisMonthSpent += r.AmountPaid
			}
		}
	}

	if stats.ReceiptCount > 0 {
		stats.AveragePerFillUp = stats.TotalSpent / float64(stats.ReceiptCount)
	}

	if len(filtered) >= 2 {
		ordered := make([]models.FuelReceipt, len(filtered))
		copy(ordered, filtered)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ParsedDate().Before(ordered[j].ParsedDate())
		})
		stats.DistanceTraveled = ordered[len(ordered)-1].Odometer - ordered[0].Odometer
	}

	if stats.DistanceTraveled > 0 && stats.TotalVolumePurchased > 0 {
		stats.FuelEfficiency = float64(stats.DistanceTraveled) / stats.TotalVolumePurchased
		stats.EfficiencyAvailable = true
	}

	if carID == "" {
		stats.Cars = carBreakdown(receipts, cars, stats.TotalSpent)
	}

	return stats
}

// carBreakdown computes each vehicle's receipt count, spend and share of
// the unfiltered total. Vehicles without receipts are omitted; a zero total
// yields 0% shares, never a division fault.
func carBreakdown(receipts []models.FuelReceipt, cars []models.Car, total float64) []CarBreakdown {
	breakdown := make([]CarBreakdown, 0, len(cars))
	for _, car := range cars {
		item := CarBreakdown{Car: car}
		for _, r := range receipts {
			if r.CarID == car.ID {
				item.Receipts++
				item.TotalSpent += r.AmountPaid
			}
		}
		if item.Receipts == 0 {
			continue
		}
		if total > 0 {
			item.Percentage = item.TotalSpent / total * 100
		}
		breakdown = append(breakdown, item)
	}
	return breakdown
}
