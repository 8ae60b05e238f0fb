package authz

// Principal is the authenticated identity of a request: the claim pair
// carried by the token, resolved against a live user record.
type Principal struct {
	UserID  string
	IsAdmin bool
}
