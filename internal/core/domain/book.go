package domain

// Book is a catalog record. Author is the author's name as free text, not a
// reference to an Author id; deleting an author leaves any books naming it
// untouched.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
}

// Author is a catalog record holding an author's name.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
