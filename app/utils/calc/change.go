package calc

// PercentageChange returns how much current moved relative to previous, in
// percent. A zero baseline yields 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
