package user

// createRequest is the payload for POST /api/users.
// Accounts created here have no credential; registration via /api/auth
// is the path that sets one.
type createRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}
