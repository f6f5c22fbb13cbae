package utils

import (
	"math"
	"strconv"
)

// FormatRupiah renders an amount the way the pages show it: "Rp 49.500",
// rounded to whole rupiah with dot thousand separators.
func FormatRupiah(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}

	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}
