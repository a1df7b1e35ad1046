package notify

import (
	"context"
)

// Notifier is the messaging channel where build status is reported.
//
// A build session owns a single status card (a photo with a caption) that is
// edited in place for every progress change. Edit and sticker sends are used
// as best-effort operations by callers: a transient delivery failure must
// never interrupt a build.
type Notifier interface {
	// SendPhoto creates the status card and returns its opaque message ID.
	SendPhoto(ctx context.Context, photoPath, caption string) (messageID string, err error)
	// EditCaption replaces the caption of an existing status card.
	EditCaption(ctx context.Context, messageID, caption string) error
	// SendMessage sends a plain text message outside the status card.
	SendMessage(ctx context.Context, text string) (messageID string, err error)
	// SendSticker fetches a remote sticker resource and sends it to the channel.
	SendSticker(ctx context.Context, stickerURL string) error
}
