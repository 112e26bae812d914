package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrUnsupportedAttachment is returned for uploads that are not CSV files
	ErrUnsupportedAttachment = errors.New("attachment is not a .csv file")
	// ErrAttachmentTooLarge is returned when an upload exceeds the configured size limit
	ErrAttachmentTooLarge = errors.New("attachment is too large")
	// ErrMissingAttachment is returned when /report arrives without a resolvable file
	ErrMissingAttachment = errors.New("no attachment provided")
)

// downloadAttachment fetches a CSV attachment, reading at most maxBytes
func downloadAttachment(ctx context.Context, client *http.Client, attachment *discordgo.MessageAttachment, maxBytes int64) ([]byte, error) {
	if !strings.EqualFold(path.Ext(attachment.Filename), ".csv") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAttachment, attachment.Filename)
	}
	if maxBytes > 0 && int64(attachment.Size) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrAttachmentTooLarge, attachment.Size, maxBytes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachment.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download attachment: unexpected status %d", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrAttachmentTooLarge, maxBytes)
	}

	return data, nil
}
