// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strconv"
	"time"

	"github.com/danielhkuo/footprint/models"
)

// Window sizes for the rolling views
const (
	WeekDays  = 7
	MonthDays = 30
)

func activityKey(rec models.EmissionRecord) string {
	if rec.ActivityType == "" {
		return models.ActivityOther
	}
	return rec.ActivityType
}

// daysAgo returns the UTC date n days before now
func daysAgo(now time.Time, n int) string {
	return DateOf(now.UTC().AddDate(0, 0, -n))
}

// Total sums co2_kg over records
func Total(records []models.EmissionRecord) float64 {
	var total float64
	for _, rec := range records {
		total += rec.CO2Kg
	}
	return total
}

// FilterDateRange returns records with start <= date <= end
func FilterDateRange(records []models.EmissionRecord, start, end string) []models.EmissionRecord {
	out := []models.EmissionRecord{}
	for _, rec := range records {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, rec)
		}
	}
	return out
}

func Today(records []models.EmissionRecord, now time.Time) []models.EmissionRecord {
	today := DateOf(now)
	return FilterDateRange(records, today, today)
}

// LastDays returns records dated from n days ago through today, both inclusive
func LastDays(records []models.EmissionRecord, now time.Time, n int) []models.EmissionRecord {
	return FilterDateRange(records, daysAgo(now, n), DateOf(now))
}

// ByActivity totals records per activity type in first-seen order
func ByActivity(records []models.EmissionRecord) []models.ActivityTotal {
	totals := []models.ActivityTotal{}
	index := make(map[string]int)

	for _, rec := range records {
		key := activityKey(rec)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, models.ActivityTotal{ActivityType: key})
		}
		totals[i].TotalCO2Kg += rec.CO2Kg
		totals[i].Count++
	}

	return totals
}

// DailyAverage divides the total by the number of distinct record dates
func DailyAverage(records []models.EmissionRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	dates := make(map[string]struct{})
	for _, rec := range records {
		dates[rec.Date] = struct{}{}
	}
	return Total(records) / float64(len(dates))
}

// Daily returns one bucket per day for the last `days` days, oldest first.
// Days without records are present with zero totals.
func Daily(records []models.EmissionRecord, now time.Time, days int) []models.DailyAggregate {
	buckets := make([]models.DailyAggregate, 0, max(days, 0))
	index := make(map[string]int, max(days, 0))

	for i := days - 1; i >= 0; i-- {
		date := daysAgo(now, i)
		index[date] = len(buckets)
		buckets = append(buckets, models.DailyAggregate{
			Date:       date,
			Activities: map[string]float64{},
		})
	}

	for _, rec := range records {
		i, ok := index[rec.Date]
		if !ok {
			continue
		}
		buckets[i].TotalCO2Kg += rec.CO2Kg
		buckets[i].Count++
		buckets[i].Activities[activityKey(rec)] += rec.CO2Kg
	}

	return buckets
}

// Weekly returns `weeks` seven-day buckets ending today, oldest first
func Weekly(records []models.EmissionRecord, now time.Time, weeks int) []models.WeeklyAggregate {
	buckets := make([]models.WeeklyAggregate, 0, max(weeks, 0))

	for i := weeks - 1; i >= 0; i-- {
		end := daysAgo(now, i*7)
		start := daysAgo(now, i*7+6)
		inWeek := FilterDateRange(records, start, end)

		buckets = append(buckets, models.WeeklyAggregate{
			WeekStart:  start,
			WeekEnd:    end,
			TotalCO2Kg: Total(inWeek),
			Count:      len(inWeek),
		})
	}

	return buckets
}

// Statistics summarises all records
func Statistics(records []models.EmissionRecord) models.Statistics {
	total := Total(records)
	count := len(records)

	var average float64
	if count > 0 {
		average = total / float64(count)
	}

	return models.Statistics{
		TotalEmissionsKg:     total,
		TotalEmissionsTons:   FormatTons(total),
		TotalActivities:      count,
		AveragePerActivityKg: strconv.FormatFloat(average, 'f', 2, 64),
		DailyAverageKg:       strconv.FormatFloat(DailyAverage(records), 'f', 2, 64),
		ByActivity:           ByActivity(records),
	}
}

// FormatTons renders kilograms as tonnes with three decimals
func FormatTons(kg float64) string {
	return strconv.FormatFloat(kg/1000, 'f', 3, 64)
}
