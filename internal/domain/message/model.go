package message

import "time"

// Message is an inbox entry shown to the managing user.
type Message struct {
	ID        string
	Subject   string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}

// UnreadCount counts unread messages the way navigation badges do.
func UnreadCount(items []Message) int {
	n := 0
	for _, m := range items {
		if !m.IsRead {
			n++
		}
	}
	return n
}
