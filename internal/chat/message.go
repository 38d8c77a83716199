package chat

import (
	"time"

	"ledger-assistant/internal/core"
)

// Sender tells who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one chat bubble. Attachment is set on the reply that carries a
// generated invoice.
type Message struct {
	Sender     Sender
	Text       string
	Time       time.Time
	Attachment *core.Document
}
