package coinselect

import (
	"sort"
)

// maxSelectionTries bounds the number of nodes visited by the exact-value
// search so that selection always terminates.
const maxSelectionTries = 1000

// Select performs a coin selection over the given list of spendable outputs
// and returns a subset of them of type target.Asset covering target.Amount.
// An exact-value subset is preferred, so that no change output is needed,
// falling back to accumulating outputs until the target is reached. An empty
// result means the target cannot be funded. A zero target amount is a no-op
// funding request and returns an empty result as well.
// The total value of a non-empty result is always >= target.Amount and the
// caller is in charge of computing the change, if any.
func Select(outputs []SpendableOutput, target Target) []SpendableOutput {
	if target.Amount == 0 {
		return nil
	}

	candidates := make([]SpendableOutput, 0, len(outputs))
	for _, out := range outputs {
		if out.Unblinded == nil {
			continue
		}
		if out.Unblinded.Asset != target.Asset {
			continue
		}
		candidates = append(candidates, out)
	}

	// Sorting by descending value decreases the number of inputs (and fees)
	// at the cost of fragmenting small outputs.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Value() > candidates[j].Value()
	})

	if selected := selectExact(candidates, target.Amount); len(selected) > 0 {
		return selected
	}
	return selectAccumulative(candidates, target.Amount)
}

// selectExact runs a bounded depth-first branch-and-bound over the sorted
// outputs looking for a subset whose value matches the target exactly. Every
// output spawns an inclusion and an exclusion branch, so the search reaches
// non-contiguous subsets too. It returns nil if no such subset is found
// within maxSelectionTries visited nodes.
func selectExact(outputs []SpendableOutput, target uint64) []SpendableOutput {
	var availableValue uint64
	for _, out := range outputs {
		availableValue += out.Value()
	}
	if availableValue < target {
		return nil
	}

	tries := maxSelectionTries

	var search func(index int, currValue, remaining uint64, selected []int) []int
	search = func(index int, currValue, remaining uint64, selected []int) []int {
		if tries <= 0 {
			return nil
		}
		tries--

		if currValue == target {
			match := make([]int, len(selected))
			copy(match, selected)
			return match
		}
		// Prune overshoots and branches whose remaining pool cannot reach
		// the target anymore.
		if index >= len(outputs) || currValue > target ||
			currValue+remaining < target {
			return nil
		}

		value := outputs[index].Value()

		// Inclusion first, the pool is sorted by descending value.
		if match := search(
			index+1, currValue+value, remaining-value, append(selected, index),
		); match != nil {
			return match
		}
		return search(index+1, currValue, remaining-value, selected)
	}

	selected := search(0, 0, availableValue, make([]int, 0, len(outputs)))
	if len(selected) == 0 {
		return nil
	}

	coins := make([]SpendableOutput, 0, len(selected))
	for _, i := range selected {
		coins = append(coins, outputs[i])
	}
	return coins
}

// selectAccumulative walks the sorted outputs adding them up until the
// cumulative value covers the target, returning nil if the whole set is
// insufficient.
func selectAccumulative(outputs []SpendableOutput, target uint64) []SpendableOutput {
	var totalValue uint64
	selected := make([]SpendableOutput, 0, len(outputs))

	for _, out := range outputs {
		selected = append(selected, out)
		totalValue += out.Value()
		if totalValue >= target {
			return selected
		}
	}
	return nil
}
