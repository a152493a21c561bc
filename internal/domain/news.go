package domain

// NewsItem is one search hit from the news service. Title is sanitized by the
// news client before it reaches view state (bold tags stripped, entities
// decoded); every other field passes through unchanged.
type NewsItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// NewsResult is the news-service search envelope.
type NewsResult struct {
	LastBuildDate string     `json:"lastBuildDate"`
	Total         int        `json:"total"`
	Start         int        `json:"start"`
	Display       int        `json:"display"`
	Items         []NewsItem `json:"items"`
}
