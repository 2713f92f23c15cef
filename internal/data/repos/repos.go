// Package repos holds the gorm-backed repositories. Every method takes an
// optional transaction; a nil tx runs against the repository's base handle.
package repos

import "gorm.io/gorm"

func pick(tx, base *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return base
}
