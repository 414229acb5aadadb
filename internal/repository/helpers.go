package repository

import "gorm.io/gorm"

// uniqueIDs drops duplicates while keeping the first-seen order.
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// replaceAssociation swaps the contents of a many2many relation. An empty
// replacement clears it.
func replaceAssociation[T any](tx *gorm.DB, owner any, name string, values []T) error {
	assoc := tx.Model(owner).Association(name)
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func updateFields(tx *gorm.DB, model any, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.Model(model).Updates(fields).Error
}
