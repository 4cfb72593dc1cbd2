package entity

// Book is a catalog record. Author holds the id of the user who wrote it.
type Book struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
}
