// Package telegram adapts the Telegram Bot API to the gateway interface the
// bot module is written against. All SDK types stay inside this package;
// the orchestrator only sees the transport types defined here.
package telegram

import "context"

// Attachment kinds, a closed set.
const (
	KindDocument = "document"
	KindVideo    = "video"
	KindAudio    = "audio"
	KindPhoto    = "photo"
)

// Attachment describes a file carried by an inbound message.
type Attachment struct {
	// Handle is the platform-native file identifier.
	Handle   string
	Name     string
	Size     int64
	MimeType string
	Kind     string
}

// Message is an inbound chat message, already split into command and
// arguments when it starts with a slash.
type Message struct {
	ChatID     int64
	UserID     int64
	Command    string
	Args       []string
	Text       string
	Attachment *Attachment
}

// Callback is an inbound button press. Data carries the opaque action token.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	UserID    int64
	Data      string
}

// Button is a single inline keyboard button. Buttons carry either an action
// token (delivered back as a Callback) or an external URL, never both.
type Button struct {
	Label  string
	Action string
	URL    string
}

// Keyboard is an inline keyboard layout, one slice per row.
type Keyboard [][]Button

// Row builds a single keyboard row.
func Row(buttons ...Button) []Button { return buttons }

// ActionButton builds a callback button.
func ActionButton(label, action string) Button { return Button{Label: label, Action: action} }

// URLButton builds a link button.
func URLButton(label, url string) Button { return Button{Label: label, URL: url} }

// Gateway is the chat operations surface the orchestrator drives.
type Gateway interface {
	// SendMessage sends text (Markdown) with an optional keyboard and
	// returns the new message id.
	SendMessage(ctx context.Context, chatID int64, text string, kb Keyboard) (int, error)

	// EditMessage replaces the text and keyboard of an earlier message.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error

	// SendDocument relays a local file to a chat and returns the message id.
	SendDocument(ctx context.Context, chatID int64, localPath, caption string) (int, error)

	// DownloadFile fetches the platform-side file behind handle into
	// destPath, reporting percentage progress at >=5 point increments.
	DownloadFile(ctx context.Context, handle, destPath string, onProgress func(percent float64)) error

	// ChatReachable reports whether the bot can resolve the given chat.
	ChatReachable(ctx context.Context, chatID int64) bool

	// AnswerCallback acknowledges a button press so the client stops its
	// spinner. Best effort.
	AnswerCallback(ctx context.Context, callbackID string)
}

// Handler consumes inbound updates. The orchestrator implements it; the
// client invokes it from the update loop, one goroutine per update.
type Handler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandleCallback(ctx context.Context, cb Callback)
}
