package users

// User es el registro persistido. El id lo asigna el store y no cambia.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
