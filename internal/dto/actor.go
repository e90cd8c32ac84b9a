package dto

// Actor is the authenticated caller identity, supplied by the request layer.
// The engine never authenticates; it only snapshots the display name onto
// ledger records.
type Actor struct {
	ID   int
	Name string
}
