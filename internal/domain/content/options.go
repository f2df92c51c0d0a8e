package content

// ListOptions provides filtering options for listing content.
type ListOptions struct {
	Status Status
	Type   ContentType
	Query  string
	Limit  int
	Offset int
}

// SearchOptions provides filtering options for full-text search.
type SearchOptions struct {
	Statuses []Status
	Limit    int
	Offset   int
}
