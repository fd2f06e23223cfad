package gmailclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail API client
type Client struct {
	service      *gmail.Service
	userID       string
	sender       string
	interval     time.Duration
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a Gmail client over an authorized HTTP client.
// userID is usually "me"; sender may be empty to let Gmail fill in the account address.
func NewClient(ctx context.Context, httpClient *http.Client, userID, sender string) (*Client, error) {
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	if userID == "" {
		userID = "me"
	}

	return &Client{
		service:  service,
		userID:   userID,
		sender:   sender,
		interval: EMAIL_INTERVAL,
	}, nil
}
