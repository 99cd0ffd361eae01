package bot

import (
	"context"
	"strconv"

	"filevault_bot/internal/adapters/telegram"
)

// HandleMessage dispatches an inbound chat message. File attachments start
// the upload flow regardless of accompanying text; everything else routes by
// command.
func (o *Orchestrator) HandleMessage(ctx context.Context, msg telegram.Message) {
	if msg.Attachment != nil {
		o.handleUpload(ctx, msg)
		return
	}

	switch msg.Command {
	case "start":
		o.reply(ctx, msg.ChatID, msgWelcome, welcomeKeyboard())
	case "help":
		o.reply(ctx, msg.ChatID, msgHelp, nil)
	case "upload":
		o.reply(ctx, msg.ChatID, msgUploadPrompt, telegram.Keyboard{
			telegram.Row(telegram.ActionButton("📋 View My Files", actionList)),
		})
	case "download":
		o.handleDownload(ctx, msg)
	case "list":
		o.handleList(ctx, msg)
	case "stream":
		o.handleStream(ctx, msg)
	case "web":
		o.handleWeb(ctx, msg)
	case "setchannel":
		o.handleSetChannel(ctx, msg)
	case "test":
		o.handleTest(ctx, msg)
	case "delete":
		o.handleDelete(ctx, msg)
	case "":
		// Plain text without a command or file; nothing to do.
	default:
		o.reply(ctx, msg.ChatID, msgUnknownCommand, nil)
	}
}

func (o *Orchestrator) reply(ctx context.Context, chatID int64, text string, kb telegram.Keyboard) {
	if _, err := o.gw.SendMessage(ctx, chatID, text, kb); err != nil {
		o.log.Warn("failed to send reply", "error", err, "chat_id", chatID)
	}
}

// requireArg extracts the file id argument or replies with a usage hint.
func (o *Orchestrator) requireArg(ctx context.Context, msg telegram.Message, usage string) (string, bool) {
	if len(msg.Args) < 1 {
		o.reply(ctx, msg.ChatID, "❌ Please provide a file ID: `"+usage+"`", nil)
		return "", false
	}
	return msg.Args[0], true
}

func (o *Orchestrator) handleDownload(ctx context.Context, msg telegram.Message) {
	fileID, ok := o.requireArg(ctx, msg, "/download <file_id>")
	if !ok {
		return
	}

	rec, err := o.authorize(msg.UserID, fileID)
	if err != nil {
		o.reply(ctx, msg.ChatID, errorText(err), nil)
		return
	}

	o.reply(ctx, msg.ChatID, downloadText(fileID, rec), downloadKeyboard(fileID, rec))
}

func (o *Orchestrator) handleStream(ctx context.Context, msg telegram.Message) {
	fileID, ok := o.requireArg(ctx, msg, "/stream <file_id>")
	if !ok {
		return
	}

	rec, err := o.authorize(msg.UserID, fileID)
	if err != nil {
		o.reply(ctx, msg.ChatID, errorText(err), nil)
		return
	}

	signedURL, err := o.storage.PresignURL(ctx, rec.StorageKey, o.presignTTL)
	if err != nil {
		o.reply(ctx, msg.ChatID, "❌ Failed to generate streaming URL!", nil)
		return
	}

	o.reply(ctx, msg.ChatID, streamText(rec, signedURL), streamKeyboard(fileID, signedURL))
}

func (o *Orchestrator) handleWeb(ctx context.Context, msg telegram.Message) {
	fileID, ok := o.requireArg(ctx, msg, "/web <file_id>")
	if !ok {
		return
	}

	rec, err := o.authorize(msg.UserID, fileID)
	if err != nil {
		o.reply(ctx, msg.ChatID, errorText(err), nil)
		return
	}

	signedURL, err := o.storage.PresignURL(ctx, rec.StorageKey, o.presignTTL)
	if err != nil {
		o.reply(ctx, msg.ChatID, "❌ Failed to generate web player link!", nil)
		return
	}

	o.reply(ctx, msg.ChatID, webPlayerText(rec, signedURL), webPlayerKeyboard(fileID, signedURL))
}

func (o *Orchestrator) handleList(ctx context.Context, msg telegram.Message) {
	entries := o.store.ListByOwner(msg.UserID)
	if len(entries) == 0 {
		o.reply(ctx, msg.ChatID, msgNoFiles, nil)
		return
	}

	o.reply(ctx, msg.ChatID, listText(entries), listKeyboard(entries))
}

func (o *Orchestrator) handleSetChannel(ctx context.Context, msg telegram.Message) {
	if len(msg.Args) < 1 {
		o.reply(ctx, msg.ChatID, msgSetChannelUsage, nil)
		return
	}

	chatID, err := strconv.ParseInt(msg.Args[0], 10, 64)
	if err != nil {
		o.reply(ctx, msg.ChatID, "❌ Invalid channel ID: `"+msg.Args[0]+"`", nil)
		return
	}

	if !o.gw.ChatReachable(ctx, chatID) {
		o.reply(ctx, msg.ChatID, "❌ Failed to set channel: the bot cannot access it. Is it an admin there?", nil)
		return
	}

	o.SetBackupChannel(chatID)
	o.log.Info("backup channel updated", "channel_id", chatID, "user_id", msg.UserID)
	o.reply(ctx, msg.ChatID, setChannelSuccessText(chatID), nil)
}

func (o *Orchestrator) handleTest(ctx context.Context, msg telegram.Message) {
	statusID, err := o.gw.SendMessage(ctx, msg.ChatID, "🔧 Testing connections...", nil)
	if err != nil {
		return
	}

	storageOK := o.storage.Probe(ctx)

	channelID := o.BackupChannel()
	channelOK := false
	if channelID != 0 {
		channelOK = o.gw.ChatReachable(ctx, channelID)
	}

	text := testResultText(storageOK, channelID, channelOK, o.bucket, o.region, o.store.Len())
	_ = o.gw.EditMessage(ctx, msg.ChatID, statusID, text, nil)
}

func (o *Orchestrator) handleDelete(ctx context.Context, msg telegram.Message) {
	fileID, ok := o.requireArg(ctx, msg, "/delete <file_id>")
	if !ok {
		return
	}

	rec, err := o.authorize(msg.UserID, fileID)
	if err != nil {
		o.reply(ctx, msg.ChatID, errorText(err), nil)
		return
	}

	// Object removal is best effort; the record is removed regardless.
	objectDeleted := o.storage.Delete(ctx, rec.StorageKey)
	o.store.Remove(fileID)
	o.log.UploadEvent("deleted", fileID, rec.FileName, rec.FileSize, msg.UserID)

	o.reply(ctx, msg.ChatID, deleteSuccessText(rec, objectDeleted), nil)
}
