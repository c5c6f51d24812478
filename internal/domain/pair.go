package domain

// Pair is an ordered (from, to) tuple. USD/EUR and EUR/USD are different pairs.
type Pair struct {
	From string
	To   string
}

func (p Pair) String() string { return p.From + "/" + p.To }

// SupportedPairs lists every ordered pair of distinct supported currencies.
func SupportedPairs() []Pair {
	out := make([]Pair, 0, len(SupportedCurrencies)*(len(SupportedCurrencies)-1))
	for _, from := range SupportedCurrencies {
		for _, to := range SupportedCurrencies {
			if from == to {
				continue
			}
			out = append(out, Pair{From: string(from), To: string(to)})
		}
	}
	return out
}
