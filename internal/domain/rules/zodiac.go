package rules

import "time"

type zodiacStart struct {
	month time.Month
	day   int
	sign  string
}

// Western zodiac signs keyed by the first day of each sign, in calendar order.
var zodiacStarts = []zodiacStart{
	{time.January, 20, "aquarius"},
	{time.February, 19, "pisces"},
	{time.March, 21, "aries"},
	{time.April, 20, "taurus"},
	{time.May, 21, "gemini"},
	{time.June, 21, "cancer"},
	{time.July, 23, "leo"},
	{time.August, 23, "virgo"},
	{time.September, 23, "libra"},
	{time.October, 23, "scorpio"},
	{time.November, 22, "sagittarius"},
	{time.December, 22, "capricorn"},
}

// ZodiacFromBirthdate is used to fill the zodiac feature when a profile only carries a birthdate.
func ZodiacFromBirthdate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	d = d.UTC()

	sign := "capricorn"
	for _, start := range zodiacStarts {
		if d.Month() > start.month || (d.Month() == start.month && d.Day() >= start.day) {
			sign = start.sign
		}
	}
	return sign
}
