package bot

import (
	"context"
	"strings"

	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/metastore"
)

// HandleCallback dispatches an inbound button press. Per-file tokens are
// parsed by prefix; the suffix is the fixed-length hex file id.
func (o *Orchestrator) HandleCallback(ctx context.Context, cb telegram.Callback) {
	defer o.gw.AnswerCallback(ctx, cb.ID)

	switch data := cb.Data; {
	case data == actionUpload:
		o.edit(ctx, cb, msgUploadPrompt, nil)

	case data == actionList:
		o.callbackList(ctx, cb)

	case data == actionTest:
		o.edit(ctx, cb, "🔧 Testing connection...", nil)
		status := "❌ Connection failed!"
		if o.storage.Probe(ctx) {
			status = "✅ Connected successfully!"
		}
		o.edit(ctx, cb, "☁️ *Object storage:* "+status, nil)

	case strings.HasPrefix(data, prefixDownload):
		o.withOwnedFile(ctx, cb, prefixDownload, func(fileID string, rec metastore.FileRecord) {
			o.edit(ctx, cb, downloadText(fileID, rec), downloadKeyboard(fileID, rec))
		})

	case strings.HasPrefix(data, prefixStream):
		o.withSignedURL(ctx, cb, prefixStream, func(fileID string, rec metastore.FileRecord, signedURL string) {
			o.edit(ctx, cb, streamText(rec, signedURL), streamKeyboard(fileID, signedURL))
		})

	case strings.HasPrefix(data, prefixWeb):
		o.withSignedURL(ctx, cb, prefixWeb, func(fileID string, rec metastore.FileRecord, signedURL string) {
			o.edit(ctx, cb, webPlayerText(rec, signedURL), webPlayerKeyboard(fileID, signedURL))
		})

	case strings.HasPrefix(data, prefixMX):
		o.withSignedURL(ctx, cb, prefixMX, func(fileID string, rec metastore.FileRecord, signedURL string) {
			o.edit(ctx, cb, playerText("📱 MX Player", rec, signedURL), playerKeyboard(fileID, mxPlayerURL(signedURL)))
		})

	case strings.HasPrefix(data, prefixVLC):
		o.withSignedURL(ctx, cb, prefixVLC, func(fileID string, rec metastore.FileRecord, signedURL string) {
			o.edit(ctx, cb, playerText("🎯 VLC Player", rec, signedURL), playerKeyboard(fileID, vlcPlayerURL(signedURL)))
		})

	case strings.HasPrefix(data, prefixFileInfo):
		o.withOwnedFile(ctx, cb, prefixFileInfo, func(fileID string, rec metastore.FileRecord) {
			o.edit(ctx, cb, fileInfoText(fileID, rec), fileInfoKeyboard(fileID))
		})

	case strings.HasPrefix(data, prefixDelete):
		o.withOwnedFile(ctx, cb, prefixDelete, func(fileID string, rec metastore.FileRecord) {
			objectDeleted := o.storage.Delete(ctx, rec.StorageKey)
			o.store.Remove(fileID)
			o.log.UploadEvent("deleted", fileID, rec.FileName, rec.FileSize, cb.UserID)
			o.edit(ctx, cb, deleteSuccessText(rec, objectDeleted), nil)
		})
	}
}

func (o *Orchestrator) edit(ctx context.Context, cb telegram.Callback, text string, kb telegram.Keyboard) {
	if err := o.gw.EditMessage(ctx, cb.ChatID, cb.MessageID, text, kb); err != nil {
		o.log.Warn("failed to edit message", "error", err, "chat_id", cb.ChatID)
	}
}

// withOwnedFile runs fn after the owner check passes. Mismatches and unknown
// ids get the same rejection text as the command variants.
func (o *Orchestrator) withOwnedFile(ctx context.Context, cb telegram.Callback, prefix string, fn func(fileID string, rec metastore.FileRecord)) {
	fileID := strings.TrimPrefix(cb.Data, prefix)
	rec, err := o.authorize(cb.UserID, fileID)
	if err != nil {
		o.edit(ctx, cb, errorText(err), nil)
		return
	}
	fn(fileID, rec)
}

// withSignedURL extends withOwnedFile with a freshly minted signed URL.
// Signed URLs are never cached; every press mints a new one.
func (o *Orchestrator) withSignedURL(ctx context.Context, cb telegram.Callback, prefix string, fn func(fileID string, rec metastore.FileRecord, signedURL string)) {
	o.withOwnedFile(ctx, cb, prefix, func(fileID string, rec metastore.FileRecord) {
		signedURL, err := o.storage.PresignURL(ctx, rec.StorageKey, o.presignTTL)
		if err != nil {
			o.edit(ctx, cb, "❌ Failed to generate streaming URL!", nil)
			return
		}
		fn(fileID, rec, signedURL)
	})
}

func (o *Orchestrator) callbackList(ctx context.Context, cb telegram.Callback) {
	entries := o.store.ListByOwner(cb.UserID)
	if len(entries) == 0 {
		o.edit(ctx, cb, "📂 No files found. Upload some files first!", telegram.Keyboard{
			telegram.Row(telegram.ActionButton("📤 Upload New", actionUpload)),
		})
		return
	}
	o.edit(ctx, cb, listText(entries), listKeyboard(entries))
}
