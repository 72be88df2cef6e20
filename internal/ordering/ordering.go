// Package ordering turns a top-to-bottom list of ids into priorities.
//
// The first id gets the highest priority (len-1), the last gets 0. Ids that
// do not exist are skipped silently and rows missing from the list keep
// their current priority.
package ordering

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is the priority one id receives.
type Assignment struct {
	ID       uint
	Priority int
}

// Priorities maps ids in display order to dense descending priorities.
func Priorities(ids []uint) []Assignment {
	assignments := make([]Assignment, len(ids))
	for i, id := range ids {
		assignments[i] = Assignment{ID: id, Priority: len(ids) - 1 - i}
	}
	return assignments
}

// Apply writes the priorities for ids to table inside tx and returns the
// number of rows updated. An empty list does not touch the store.
func Apply(tx *gorm.DB, table string, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now()
	var touched int64
	for _, a := range Priorities(ids) {
		result := tx.Table(table).
			Where("id = ?", a.ID).
			UpdateColumns(map[string]any{"priority": a.Priority, "updated_at": now})
		if result.Error != nil {
			return touched, result.Error
		}
		touched += result.RowsAffected
	}
	return touched, nil
}
