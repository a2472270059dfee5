package bidding

import (
	"cmp"
	"slices"
)

// Batch folds one tick's worth of received messages. Messages with the
// same subject and kind are combined; the result is ordered DoorwayFound
// first, then Bidding, each by requester and doorway center. The result
// does not depend on the order messages arrived in.
func Batch(msgs []Message, eps float64) []Message {
	var folded []Message
	for _, m := range msgs {
		merged := false
		for i, f := range folded {
			if c, ok := Combine(f, m, eps); ok {
				folded[i] = c
				merged = true
				break
			}
		}
		if !merged {
			folded = append(folded, m.Clone())
		}
	}

	slices.SortStableFunc(folded, func(a, b Message) int {
		return cmp.Or(
			cmp.Compare(kindOrder(a.Kind()), kindOrder(b.Kind())),
			cmp.Compare(a.Requester(), b.Requester()),
			cmp.Compare(a.Door().Center.X, b.Door().Center.X),
			cmp.Compare(a.Door().Center.Y, b.Door().Center.Y),
		)
	})
	return folded
}

func kindOrder(k Kind) int {
	if k == KindDoorwayFound {
		return 0
	}
	return 1
}
