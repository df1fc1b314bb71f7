package domain

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Skills       []string
	AddressID    string
}
