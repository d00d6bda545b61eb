package mailbox

import (
	"context"
	"fmt"
)

// ImportLog remembers which attachments have already been uploaded.
type ImportLog interface {
	HasImported(ctx context.Context, messageID, filename string) (bool, error)
	MarkImported(ctx context.Context, messageID, filename string) error
}

// Unimported drops attachments that log has already recorded.
func Unimported(ctx context.Context, log ImportLog, attachments []Attachment) ([]Attachment, error) {
	var out []Attachment
	for _, a := range attachments {
		seen, err := log.HasImported(ctx, a.MessageID, a.Filename)
		if err != nil {
			return nil, fmt.Errorf("checking import log: %w", err)
		}
		if !seen {
			out = append(out, a)
		}
	}
	return out, nil
}
