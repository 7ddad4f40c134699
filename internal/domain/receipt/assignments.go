package receipt

import "github.com/google/uuid"

// Assignments maps an item id to the ordered set of diner ids sharing that
// item. Insertion order is preserved and is the iteration order the
// allocation engine uses to pick the residue-absorbing diner, which keeps
// results reproducible across runs. An item with no entry, or an empty
// entry, is unassigned.
type Assignments map[uuid.UUID][]uuid.UUID

// Toggle adds the diner to the item's set if absent, removes it if present.
func (a Assignments) Toggle(itemID, dinerID uuid.UUID) {
	current := a[itemID]
	for i, id := range current {
		if id == dinerID {
			a[itemID] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
	a[itemID] = append(current, dinerID)
}

// Assigned reports whether the diner is in the item's set.
func (a Assignments) Assigned(itemID, dinerID uuid.UUID) bool {
	for _, id := range a[itemID] {
		if id == dinerID {
			return true
		}
	}
	return false
}

// DinersFor returns the diner ids sharing the item, in assignment order.
func (a Assignments) DinersFor(itemID uuid.UUID) []uuid.UUID {
	return a[itemID]
}

// Unassigned reports whether the item has no diners assigned.
func (a Assignments) Unassigned(itemID uuid.UUID) bool {
	return len(a[itemID]) == 0
}
