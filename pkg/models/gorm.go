package models

// ModelsToAutoMigrate returns the models managed by this repository, in
// dependency order.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Community{}, // Must be before Collection - collections reference it
		&Collection{},
		&Handle{},
	}
}
