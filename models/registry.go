package models

// All lists every model the service migrates.
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Comment{}, &Bid{}}
}
