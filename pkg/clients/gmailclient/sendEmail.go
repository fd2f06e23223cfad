package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a plain text email to one or more recipients.
// Throttles requests to respect Gmail API rate limits.
func (c *Client) SendEmail(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		elapsed := time.Since(c.lastSendTime)
		if elapsed < c.interval {
			select {
			case <-time.After(c.interval - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	gmailMessage := &gmail.Message{
		Raw: encodeMessage(c.sender, to, subject, body),
	}

	_, err := c.service.Users.Messages.Send(c.userID, gmailMessage).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// encodeMessage builds the RFC 2822 message and base64url-encodes it
func encodeMessage(from string, to []string, subject, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
