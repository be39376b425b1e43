package utils

// SuccessRate is completed bookings over accepted quotes, as a percentage.
// Zero denominator yields 0 rather than NaN.
func SuccessRate(completedBookings, acceptedQuotes int64) float64 {
	if acceptedQuotes == 0 {
		return 0
	}
	return float64(completedBookings) / float64(acceptedQuotes) * 100
}

// RatingMean averages a contractor's review ratings. Zero reviews yields 0,
// which the profile shows as "no rating yet".
func RatingMean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
