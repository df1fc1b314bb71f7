package domain

// Address is a shared street address. Profile writes reuse an existing row
// when every field matches, so identical addresses collapse into one record.
type Address struct {
	ID      string
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}
