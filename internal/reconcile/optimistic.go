package reconcile

import (
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// RollbackFunc restores the pre-patch appointment into whatever collection it is given
type RollbackFunc func(current []*domain.Appointment) []*domain.Appointment

// ApplyOptimistic returns a new collection with patch merged into the appointment with id.
// Every other element keeps its pointer. The input collection is not modified.
func ApplyOptimistic(
	collection []*domain.Appointment,
	id int64,
	patch domain.AppointmentPatch,
) ([]*domain.Appointment, RollbackFunc, error) {
	idx := indexOf(collection, id)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: id=%d", domain.ErrAppointmentNotFound, id)
	}

	previous := collection[idx]
	next := make([]*domain.Appointment, len(collection))
	copy(next, collection)
	next[idx] = patch.Apply(previous)

	rollback := func(current []*domain.Appointment) []*domain.Appointment {
		return replace(current, id, previous)
	}
	return next, rollback, nil
}

// replace swaps the element with id for app, copying the slice; unknown ids leave it as is
func replace(collection []*domain.Appointment, id int64, app *domain.Appointment) []*domain.Appointment {
	idx := indexOf(collection, id)
	if idx < 0 {
		return collection
	}
	next := make([]*domain.Appointment, len(collection))
	copy(next, collection)
	next[idx] = app
	return next
}

func indexOf(collection []*domain.Appointment, id int64) int {
	for i, app := range collection {
		if app != nil && app.ID == id {
			return i
		}
	}
	return -1
}
