package utils

import "strconv"

// FormatRWF renders an amount held in minor currency units as a
// human-readable Rwandan franc string, e.g. 1234567 -> "1,234,567 RWF".
func FormatRWF(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}

	s := string(out) + " RWF"
	if neg {
		s = "-" + s
	}
	return s
}
