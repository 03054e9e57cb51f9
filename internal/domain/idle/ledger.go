package idle

import "math"

// gain credits a resource and marks it discovered once it holds anything.
// Negative amounts are debits clamped at zero; they never discover. Credits
// saturate at MaxFloat64.
func (e *Engine) gain(id string, amount float64) {
	if math.IsNaN(amount) || amount == 0 {
		return
	}
	next := clampZero(saturatingAdd(e.resources[id], amount))
	e.resources[id] = next
	if amount > 0 && next > 0 {
		e.discovered[id] = true
	}
}

func (e *Engine) canPay(cost map[string]float64) bool {
	for id, amount := range cost {
		if e.resources[id] < amount {
			return false
		}
	}
	return true
}

// spend deducts a whole cost bundle or nothing at all.
func (e *Engine) spend(cost map[string]float64) bool {
	if !e.canPay(cost) {
		return false
	}
	for id, amount := range cost {
		if amount <= 0 {
			continue
		}
		e.resources[id] = clampZero(e.resources[id] - amount)
	}
	return true
}
