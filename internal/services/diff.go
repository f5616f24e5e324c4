package services

// childDiff is the result of reconciling an incoming child list against the
// persisted one for a single child type.
type childDiff[T any] struct {
	// abandonedIDs are persisted children absent from the incoming list.
	abandonedIDs []int64
	// toUpdate are incoming children whose id already exists.
	toUpdate []T
	// toAdd are incoming children with no id, or an id unknown to the store.
	toAdd []T
}

// renumber assigns 1-based positions in caller-supplied order. It runs
// unconditionally on every write, regardless of the numbers supplied.
func renumber[T any](children []T, setNumber func(T, int)) {
	for i, c := range children {
		setNumber(c, i+1)
	}
}

// partitionChildren splits the incoming list into update/add sets and
// collects the ids of persisted children the incoming list abandoned.
// A zero id marks a not-yet-persisted child. Pure function: identical
// inputs always produce identical partitions, in input order.
func partitionChildren[T any](existing, incoming []T, id func(T) int64) childDiff[T] {
	existingIDs := make(map[int64]struct{}, len(existing))
	for _, c := range existing {
		existingIDs[id(c)] = struct{}{}
	}
	incomingIDs := make(map[int64]struct{}, len(incoming))
	for _, c := range incoming {
		if cid := id(c); cid != 0 {
			incomingIDs[cid] = struct{}{}
		}
	}

	var diff childDiff[T]
	for _, c := range existing {
		if _, ok := incomingIDs[id(c)]; !ok {
			diff.abandonedIDs = append(diff.abandonedIDs, id(c))
		}
	}
	for _, c := range incoming {
		if _, ok := existingIDs[id(c)]; ok {
			diff.toUpdate = append(diff.toUpdate, c)
		} else {
			diff.toAdd = append(diff.toAdd, c)
		}
	}
	return diff
}
