package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"filevault_bot/platform/config"
	"filevault_bot/platform/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client implements Gateway over the Telegram Bot API and runs the long-poll
// update loop.
type Client struct {
	api         *tgbotapi.BotAPI
	httpClient  *http.Client
	pollTimeout int
	log         *logger.Logger
}

// NewClient authenticates against the Bot API.
func NewClient(cfg config.TelegramConfig, log *logger.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	return &Client{
		api:         api,
		httpClient:  http.DefaultClient,
		pollTimeout: int(cfg.GetPollTimeout().Seconds()),
		log:         log,
	}, nil
}

// Username returns the authenticated bot account name.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Run consumes updates until ctx is cancelled. Each update is dispatched on
// its own goroutine, so handlers for different chats run concurrently.
func (c *Client) Run(ctx context.Context, h Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeout

	updates := c.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			go c.dispatch(ctx, h, upd)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, h Handler, upd tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		h.HandleCallback(ctx, Callback{
			ID:        cb.ID,
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
			UserID:    cb.From.ID,
			Data:      cb.Data,
		})
	case upd.Message != nil:
		h.HandleMessage(ctx, c.toMessage(upd.Message))
	}
}

func (c *Client) toMessage(m *tgbotapi.Message) Message {
	msg := Message{
		ChatID:     m.Chat.ID,
		Text:       m.Text,
		Attachment: extractAttachment(m),
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = strings.Fields(m.CommandArguments())
	}
	return msg
}

// extractAttachment maps the four supported media kinds onto Attachment.
// Photos carry no file name or MIME type on the wire.
func extractAttachment(m *tgbotapi.Message) *Attachment {
	switch {
	case m.Document != nil:
		return &Attachment{
			Handle:   m.Document.FileID,
			Name:     m.Document.FileName,
			Size:     int64(m.Document.FileSize),
			MimeType: m.Document.MimeType,
			Kind:     KindDocument,
		}
	case m.Video != nil:
		return &Attachment{
			Handle:   m.Video.FileID,
			Name:     m.Video.FileName,
			Size:     int64(m.Video.FileSize),
			MimeType: m.Video.MimeType,
			Kind:     KindVideo,
		}
	case m.Audio != nil:
		return &Attachment{
			Handle:   m.Audio.FileID,
			Name:     m.Audio.FileName,
			Size:     int64(m.Audio.FileSize),
			MimeType: m.Audio.MimeType,
			Kind:     KindAudio,
		}
	case len(m.Photo) > 0:
		// Largest rendition is last.
		p := m.Photo[len(m.Photo)-1]
		return &Attachment{
			Handle: p.FileID,
			Size:   int64(p.FileSize),
			Kind:   KindPhoto,
		}
	}
	return nil
}

// SendMessage sends Markdown text with an optional inline keyboard.
func (c *Client) SendMessage(_ context.Context, chatID int64, text string, kb Keyboard) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = toMarkup(kb)
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

// EditMessage replaces an earlier message's text and keyboard.
func (c *Client) EditMessage(_ context.Context, chatID int64, messageID int, text string, kb Keyboard) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		markup := toMarkup(kb)
		edit.ReplyMarkup = &markup
	}

	if _, err := c.api.Send(edit); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// SendDocument relays a local file to a chat.
func (c *Client) SendDocument(_ context.Context, chatID int64, localPath, caption string) (int, error) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(localPath))
	doc.Caption = caption

	sent, err := c.api.Send(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to send document: %w", err)
	}
	return sent.MessageID, nil
}

// DownloadFile streams the platform-side file behind handle into destPath.
// Progress is derived from the response content length when the server
// provides one.
func (c *Client) DownloadFile(ctx context.Context, handle, destPath string, onProgress func(float64)) error {
	fileURL, err := c.api.GetFileDirectURL(handle)
	if err != nil {
		return fmt.Errorf("failed to resolve file %s: %w", handle, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch file: unexpected status %d", resp.StatusCode)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dest.Close()

	writer := &countingWriter{dest: dest, total: resp.ContentLength, onProgress: onProgress}
	if _, err := io.Copy(writer, resp.Body); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	writer.finish()
	return nil
}

// ChatReachable reports whether the bot can resolve the chat, used to verify
// a backup channel before accepting it.
func (c *Client) ChatReachable(_ context.Context, chatID int64) bool {
	_, err := c.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	return err == nil
}

// AnswerCallback acknowledges a button press, best effort.
func (c *Client) AnswerCallback(_ context.Context, callbackID string) {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		c.log.Warn("failed to answer callback", "error", err)
	}
}

func toMarkup(kb Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
			}
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// countingWriter reports download percentage at >=5 point increments while
// copying to the destination file.
type countingWriter struct {
	dest         io.Writer
	total        int64
	written      int64
	lastReported float64
	onProgress   func(float64)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.dest.Write(p)
	if n > 0 {
		w.written += int64(n)
		w.report(false)
	}
	return n, err
}

func (w *countingWriter) report(final bool) {
	if w.onProgress == nil || w.total <= 0 {
		return
	}
	percent := float64(w.written) / float64(w.total) * 100
	if percent > 100 {
		percent = 100
	}
	if final {
		percent = 100
	}
	if percent-w.lastReported >= 5 || (percent >= 100 && w.lastReported < 100) {
		w.lastReported = percent
		w.onProgress(percent)
	}
}

// finish fires the terminal callback for responses without a usable
// content length.
func (w *countingWriter) finish() {
	if w.onProgress == nil {
		return
	}
	if w.total <= 0 {
		w.onProgress(100)
		return
	}
	w.report(true)
}
