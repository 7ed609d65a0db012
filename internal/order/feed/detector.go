package feed

import "barorder/internal/domain"

// Detector spots orders that were not there on the previous observation.
// The first observation only sets the baseline. Orders that disappear are
// not reported.
type Detector struct {
	seen   map[uint]struct{}
	primed bool
}

// Observe records the current active orders and returns the IDs that are new
// since the last call. notify is true exactly when newIDs is not empty.
func (d *Detector) Observe(orders []domain.Order) (newIDs []uint, notify bool) {
	current := make(map[uint]struct{}, len(orders))
	for _, o := range orders {
		current[o.ID] = struct{}{}
	}

	if !d.primed {
		d.seen = current
		d.primed = true
		return []uint{}, false
	}

	newIDs = []uint{}
	for _, o := range orders {
		if _, ok := d.seen[o.ID]; !ok {
			newIDs = append(newIDs, o.ID)
		}
	}
	d.seen = current

	return newIDs, len(newIDs) > 0
}
