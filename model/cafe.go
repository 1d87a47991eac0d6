package model

// Cafe is the persisted café record. IDs are creation timestamps in
// milliseconds and never change after creation; Photos keeps display order.
type Cafe struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Description string          `json:"description"`
	Facilities  map[string]any  `json:"facilities"`
	Summaries   map[string]bool `json:"summaries,omitempty"`
	Comments    []Comment       `json:"comments"`
	Photos      []string        `json:"photos"`
	Likes       int             `json:"likes"`
}

// Comment is one entry in a café's append-only comment thread.
type Comment struct {
	User string `json:"user"`
	Text string `json:"text"`
}
