package core

// User authenticated api user
type User struct {
	ID string `json:"id"`
}
