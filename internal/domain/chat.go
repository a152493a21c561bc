package domain

// ChatMessage is one entry in the sidebar chat. Messages are ephemeral on the
// client: the full history is fetched once at connect time and streamed
// messages are appended after it, without deduplication.
type ChatMessage struct {
	Message  string  `json:"message"`
	Guest    bool    `json:"guest"`
	Nickname *string `json:"nickName"`
	SendAt   string  `json:"sendAt"` // ISO-8601
}
