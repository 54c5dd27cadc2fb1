package domain

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a storefront account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"password_hash,omitempty" bson:"password_hash,omitempty"`
	Language     string `json:"language" bson:"language"`
	DarkMode     bool   `json:"dark_mode" bson:"dark_mode"`
	Role         string `json:"role" bson:"role"`
}
