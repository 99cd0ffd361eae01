package bot

import (
	"fmt"
	"strings"

	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/metastore"
	"filevault_bot/platform/apperr"
)

// Button action tokens. Per-file actions are suffixed with the 16-hex file
// id, so prefix parsing needs no escaping.
const (
	actionUpload   = "upload_file"
	actionList     = "list_files"
	actionTest     = "test_connection"
	prefixDownload = "download_"
	prefixStream   = "stream_"
	prefixWeb      = "web_"
	prefixMX       = "mx_"
	prefixVLC      = "vlc_"
	prefixFileInfo = "file_info_"
	prefixDelete   = "delete_"
)

const msgWelcome = `🚀 *File Vault Bot*

☁️ Cloud storage for files up to 4GB with instant streaming links.

*Commands:*
📤 ` + "`/upload`" + ` — start an upload (or just send a file)
📋 ` + "`/list`" + ` — your uploaded files
📥 ` + "`/download <id>`" + ` — direct download link
🎬 ` + "`/stream <id>`" + ` — streaming link (24h)
🌐 ` + "`/web <id>`" + ` — browser player
🗑 ` + "`/delete <id>`" + ` — remove a file
⚙️ ` + "`/test`" + ` — storage connection test

Drop any file here to upload it!`

const msgHelp = `📖 *Help*

*Uploading*
Send any document, video, audio or photo. Files up to 4GB are supported, with live progress while the transfer runs.

*Accessing files*
• ` + "`/download <file_id>`" + ` — permanent download link
• ` + "`/stream <file_id>`" + ` — signed streaming link, expires after 24 hours
• ` + "`/web <file_id>`" + ` — browser playback
• MX Player and VLC buttons open the stream in the matching app

*Management*
• ` + "`/list`" + ` — all your files, newest first
• ` + "`/delete <file_id>`" + ` — remove a file and its stored object
• ` + "`/setchannel <channel_id>`" + ` — backup copies to a Telegram channel
• ` + "`/test`" + ` — check the storage connection

You can only access files you uploaded yourself.`

const msgUploadPrompt = `📤 *Upload a file*

Send the file you want to store. Documents, videos, audio and photos are supported, up to 4GB.

Progress is reported while the file is transferred to cloud storage.`

const msgUploadStarting = "📤 Starting upload..."

const msgTooLarge = "❌ File too large! Maximum size is 4GB."

const msgNoFiles = `📂 *No files yet*

Send any file to upload it, or use /upload to get started.`

const msgUnknownCommand = "❓ Unknown command. Use /help to see what I can do."

// errorText renders a typed domain error as the short reply the user sees.
func errorText(err error) string {
	switch apperr.GetKind(err) {
	case apperr.KindNotFound:
		return "❌ File not found!"
	case apperr.KindForbidden:
		return "❌ You can only access your own files!"
	case apperr.KindValidation:
		return "❌ " + err.Error()
	default:
		return "❌ Something went wrong: " + err.Error()
	}
}

func welcomeKeyboard() telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.ActionButton("🚀 Upload", actionUpload)),
		telegram.Row(telegram.ActionButton("📁 My Files", actionList)),
		telegram.Row(telegram.ActionButton("⚙️ Connection Test", actionTest)),
	}
}

func uploadSuccessText(fileID string, rec metastore.FileRecord) string {
	return fmt.Sprintf(`🎉 *Upload complete!*

📁 %s
📊 %s • 🆔 `+"`%s`"+`

*Quick commands:*
`+"`/stream %s`"+` • `+"`/download %s`"+` • `+"`/web %s`",
		truncateName(rec.FileName, 40), formatSize(rec.FileSize), fileID, fileID, fileID, fileID)
}

func uploadSuccessKeyboard(fileID string) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.ActionButton("📥 Download", prefixDownload+fileID)),
		telegram.Row(
			telegram.ActionButton("🎬 Stream", prefixStream+fileID),
			telegram.ActionButton("🌐 Web Player", prefixWeb+fileID),
		),
		telegram.Row(
			telegram.ActionButton("📱 MX Player", prefixMX+fileID),
			telegram.ActionButton("🎯 VLC Player", prefixVLC+fileID),
		),
	}
}

func downloadText(fileID string, rec metastore.FileRecord) string {
	return fmt.Sprintf(`📥 *Download ready*

📄 *File:* %s
📊 *Size:* %s
📅 *Uploaded:* %s

🔗 *Direct link:*
%s`,
		rec.FileName, formatSize(rec.FileSize), formatDate(rec.UploadTimestamp), rec.StorageURL)
}

func downloadKeyboard(fileID string, rec metastore.FileRecord) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.URLButton("📥 Direct Download", rec.StorageURL)),
		telegram.Row(
			telegram.ActionButton("🎬 Stream Instead", prefixStream+fileID),
			telegram.ActionButton("🌐 Web Player", prefixWeb+fileID),
		),
	}
}

func streamText(rec metastore.FileRecord, signedURL string) string {
	return fmt.Sprintf(`🎬 *Streaming ready*

📄 *File:* %s
📊 *Size:* %s
⏱ *Link expires:* 24 hours

🔗 *Streaming URL:*
%s`,
		rec.FileName, formatSize(rec.FileSize), signedURL)
}

func streamKeyboard(fileID, signedURL string) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.URLButton("🎬 Direct Stream", signedURL)),
		telegram.Row(
			telegram.URLButton("📱 MX Player", mxPlayerURL(signedURL)),
			telegram.URLButton("🎯 VLC Player", vlcPlayerURL(signedURL)),
		),
		telegram.Row(telegram.ActionButton("🌐 Web Player", prefixWeb+fileID)),
	}
}

func webPlayerText(rec metastore.FileRecord, signedURL string) string {
	return fmt.Sprintf(`🌐 *Web player*

📄 *File:* %s
📊 *Size:* %s

Streams in any modern browser, mobile included. The link below is valid for 24 hours.

🔗 %s`,
		rec.FileName, formatSize(rec.FileSize), signedURL)
}

func webPlayerKeyboard(fileID, signedURL string) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.URLButton("🌐 Open in Browser", signedURL)),
		telegram.Row(
			telegram.ActionButton("📱 MX Player", prefixMX+fileID),
			telegram.ActionButton("🎯 VLC Player", prefixVLC+fileID),
		),
		telegram.Row(telegram.ActionButton("📥 Download Instead", prefixDownload+fileID)),
	}
}

func playerText(app string, rec metastore.FileRecord, signedURL string) string {
	return fmt.Sprintf(`%s *ready*

📄 *File:* %s
📊 *Size:* %s

Open the link below, or copy the streaming URL into the player manually:

`+"`%s`",
		app, rec.FileName, formatSize(rec.FileSize), signedURL)
}

func playerKeyboard(fileID, launchURL string) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.URLButton("🔗 Open Stream", launchURL)),
		telegram.Row(telegram.ActionButton("🔙 Back", prefixFileInfo+fileID)),
	}
}

func fileInfoText(fileID string, rec metastore.FileRecord) string {
	return fmt.Sprintf(`📄 *File information*

📁 *Name:* %s
📊 *Size:* %s
📅 *Uploaded:* %s
🆔 *ID:* `+"`%s`",
		rec.FileName, formatSize(rec.FileSize), formatDate(rec.UploadTimestamp), fileID)
}

func fileInfoKeyboard(fileID string) telegram.Keyboard {
	return telegram.Keyboard{
		telegram.Row(telegram.ActionButton("📥 Download", prefixDownload+fileID)),
		telegram.Row(
			telegram.ActionButton("🎬 Stream", prefixStream+fileID),
			telegram.ActionButton("🌐 Web", prefixWeb+fileID),
		),
		telegram.Row(
			telegram.ActionButton("📱 MX Player", prefixMX+fileID),
			telegram.ActionButton("🎯 VLC Player", prefixVLC+fileID),
		),
		telegram.Row(telegram.ActionButton("🗑 Delete", prefixDelete+fileID)),
		telegram.Row(telegram.ActionButton("🔙 Back to List", actionList)),
	}
}

func listText(entries []metastore.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Your files* (%d total)\n\n", len(entries))

	shown := entries
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, e := range shown {
		fmt.Fprintf(&b, "*%d.* %s\n📊 %s • 📅 %s\n🆔 `%s`\n\n",
			i+1, e.FileName, formatSize(e.FileSize), formatDate(e.UploadTimestamp), e.FileID)
	}
	if len(entries) > 10 {
		fmt.Fprintf(&b, "... and %d more files\n\n", len(entries)-10)
	}
	b.WriteString("💡 Use a file id with `/stream <id>`, `/download <id>` or `/web <id>`")
	return b.String()
}

func listKeyboard(entries []metastore.Entry) telegram.Keyboard {
	var kb telegram.Keyboard
	shown := entries
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, e := range shown {
		kb = append(kb, telegram.Row(
			telegram.ActionButton("📄 "+truncateName(e.FileName, 24), prefixFileInfo+e.FileID),
		))
	}
	kb = append(kb, telegram.Row(telegram.ActionButton("🔄 Refresh", actionList)))
	return kb
}

const msgSetChannelUsage = `🔧 *Set backup channel*

Usage: ` + "`/setchannel <channel_id>`" + `

The bot must be an admin in the channel, and channel ids start with -100. Every future upload is then relayed there as a backup copy.`

func setChannelSuccessText(chatID int64) string {
	return fmt.Sprintf(`✅ *Backup channel set*

🆔 *Channel:* `+"`%d`"+`
📂 All future uploads will be backed up to this channel.`, chatID)
}

func testResultText(storageOK bool, channelID int64, channelOK bool, bucket, region string, fileCount int) string {
	storageStatus := "❌ Failed"
	if storageOK {
		storageStatus = "✅ Connected"
	}

	channelStatus := "➖ Not configured"
	if channelID != 0 {
		channelStatus = "❌ Unreachable"
		if channelOK {
			channelStatus = "✅ Connected"
		}
	}

	verdict := "⚠️ Check your storage credentials!"
	if storageOK {
		verdict = "✅ All systems operational"
	}

	return fmt.Sprintf(`🔧 *Connection test*

☁️ *Object storage:* %s
📱 *Backup channel:* %s

*Storage info:*
• Bucket: %s
• Region: %s
• Files stored: %d

%s`, storageStatus, channelStatus, bucket, region, fileCount, verdict)
}

func deleteSuccessText(rec metastore.FileRecord, objectDeleted bool) string {
	note := ""
	if !objectDeleted {
		note = "\n\n⚠️ The stored object could not be removed and may still exist in the bucket."
	}
	return fmt.Sprintf("🗑 *Deleted* %s%s", rec.FileName, note)
}

func mxPlayerURL(signedURL string) string {
	return "intent:" + signedURL + "#Intent;package=com.mxtech.videoplayer.ad;type=video/*;end"
}

func vlcPlayerURL(signedURL string) string {
	return "vlc://" + signedURL
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max] + "..."
}
