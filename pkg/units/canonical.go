// Package units provides canonical unit constants and conversions shared
// by the cost model and the pricing fetcher.
package units

// HoursPerMonth is the standard billing assumption.
const HoursPerMonth = 730

// KBPerGB converts inventory sizes (kilobytes) to gigabytes.
const KBPerGB = 1024 * 1024

// KBToGB converts a kilobyte capacity to gigabytes.
func KBToGB(kb float64) float64 {
	return kb / KBPerGB
}

// GBToTB converts gigabytes to terabytes.
func GBToTB(gb float64) float64 {
	return gb / 1024
}

// HourlyToMonthly converts an hourly rate to the monthly equivalent.
func HourlyToMonthly(hourly float64) float64 {
	return hourly * HoursPerMonth
}

// MonthsPerYear and related reporting horizons.
const (
	MonthsPerYear       = 12
	MonthsPerThreeYears = 36
)
