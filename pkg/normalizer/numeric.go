package normalizer

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a string-encoded numeric field. Comma is accepted as a
// decimal separator fallback. A value that cannot be parsed, including the
// empty string, yields NaN; callers treat NaN as the checked "unset" outcome
// rather than an error.
func ParseNumber(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return math.NaN()
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return n
	}
	return math.NaN()
}

// ParseAge extracts the leading integer of an age string: an optional sign
// followed by digits, up to the first other character, so "45 years" is 45
// and "1e2" is 1. ok is false when there is no leading integer. The manual-
// entry gate and the scoring age band both parse through here, so an age the
// gate accepts is always the age the engine scores.
func ParseAge(v string) (int, bool) {
	n, err := strconv.Atoi(leadingInt(strings.TrimSpace(v)))
	if err != nil {
		return 0, false
	}
	return n, true
}

func leadingInt(s string) string {
	end := 0
	for i, r := range s {
		if r == '+' || r == '-' {
			if i == 0 {
				end = i + 1
				continue
			}
			break
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	return s[:end]
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// DeriveBMI computes weight/(height in m)^2. NaN when either input is NaN or
// the height is not positive.
func DeriveBMI(weightKg, heightCm float64) float64 {
	if math.IsNaN(weightKg) || math.IsNaN(heightCm) || heightCm <= 0 {
		return math.NaN()
	}
	m := heightCm / 100
	return weightKg / (m * m)
}
