package domain

// fallbackRates holds approximate directional rates used when no live or cached
// rate is available. Entries are close to reciprocal but not exactly so.
var fallbackRates = map[Currency]map[Currency]float64{
	USD: {EUR: 0.85, GBP: 0.73, JPY: 110, CAD: 1.25, RON: 4.2},
	EUR: {USD: 1.18, GBP: 0.86, JPY: 129, CAD: 1.47, RON: 4.95},
	GBP: {USD: 1.37, EUR: 1.16, JPY: 150, CAD: 1.71, RON: 5.75},
	JPY: {USD: 0.0091, EUR: 0.0077, GBP: 0.0067, CAD: 0.0114, RON: 0.038},
	CAD: {USD: 0.8, EUR: 0.68, GBP: 0.58, JPY: 88, RON: 3.36},
	RON: {USD: 0.24, EUR: 0.2, GBP: 0.174, JPY: 26.2, CAD: 0.3},
}

// FallbackRate returns the static rate for the pair, or 1 when the pair is not listed.
func FallbackRate(from, to string) float64 {
	if from == to {
		return 1
	}
	if r, ok := fallbackRates[Currency(from)][Currency(to)]; ok {
		return r
	}
	return 1
}

// HasFallback reports whether the static table lists the pair.
func HasFallback(from, to string) bool {
	_, ok := fallbackRates[Currency(from)][Currency(to)]
	return ok
}
