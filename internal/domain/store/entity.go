package store

// Store is a physical site. Code is the canonical identifier attendance
// records carry; ID is the internal storage identifier.
type Store struct {
	ID   string
	Code string
	Name string
}
