package domain

// SearchResult is a read-only feed match. It carries no interaction counters;
// rendered as a Post they default to zero.
type SearchResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// AsPost converts a search result to a Post for rendering in the result list.
func (r SearchResult) AsPost() Post {
	return Post{
		ID:       r.ID,
		Name:     r.Name,
		Username: r.Name,
		Avatar:   r.Avatar,
		Content:  r.Content,
		Time:     r.Timestamp,
	}
}
