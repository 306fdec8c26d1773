package model

// Scope carries the caller identity for a request.
type Scope struct {
	UserID   string
	Username string
}
