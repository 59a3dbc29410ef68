package domain

// Post is a single feed entry as rendered in the timeline.
type Post struct {
	ID       string `json:"id"`
	Name     string `json:"name"`     // author display name
	Username string `json:"username"` // author handle, e.g. @jane
	Avatar   string `json:"avatar"`   // avatar URI
	Content  string `json:"content"`
	Time     string `json:"time"` // pre-formatted display timestamp, e.g. "2h ago"
	Replies  int    `json:"replies"`
	Reposts  int    `json:"reposts"`
	Likes    int    `json:"likes"`
}
