package model

// Message is the inbound chat message tuple delivered by the transport.
type Message struct {
	ChatID    int64
	MessageID int64
	UserID    int64
	Timestamp int64 // unix seconds
	Text      string
}
