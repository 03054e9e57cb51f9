package idle

import "math"

// RollFish samples one entry of the table by relative weight. It reports
// false when nothing in the table can be caught.
func RollFish(table []FishEntry, rng Rand) (string, bool) {
	total := 0.0
	for _, f := range table {
		total += fishWeight(f)
	}
	if total <= 0 {
		return "", false
	}

	r := rng.Float64() * total
	last := ""
	for _, f := range table {
		w := fishWeight(f)
		if w == 0 {
			continue
		}
		last = f.ResourceID
		r -= w
		if r <= 0 {
			return f.ResourceID, true
		}
	}
	// float drift can leave r a hair above zero
	return last, true
}

// FishChances returns each entry's share of the table in percent.
func FishChances(table []FishEntry) []float64 {
	total := 0.0
	for _, f := range table {
		total += fishWeight(f)
	}
	out := make([]float64, len(table))
	if total <= 0 {
		return out
	}
	for i, f := range table {
		out[i] = fishWeight(f) / total * 100
	}
	return out
}

func fishWeight(f FishEntry) float64 {
	if math.IsNaN(f.Chance) || math.IsInf(f.Chance, 0) || f.Chance < 0 {
		return 0
	}
	return f.Chance
}
