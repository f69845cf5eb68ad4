package types

// Actor is the authenticated caller identity, resolved by the auth middleware
// and passed explicitly into every permission-mutating service operation.
type Actor struct {
	UserID string
}
