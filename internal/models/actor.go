package models

// Actor is the already-authenticated caller identity attached to a request
// by the platform gateway. Admin marks platform administrators, who may act
// through the global admin outbox.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}
