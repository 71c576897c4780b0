package models

// Book represents a catalog book referenced by user favorites.
// The catalog itself is owned by a separate service; this backend
// only reads books to validate and populate favorites.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Cover  string `json:"cover,omitempty"`
}
