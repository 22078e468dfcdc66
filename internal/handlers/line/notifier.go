package line

import (
	"context"
	"errors"
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// PushNotifier delivers reminder digests over the LINE push API.
type PushNotifier struct {
	client *linebot.Client
}

// NewPushNotifier creates a new push notifier
func NewPushNotifier(client *linebot.Client) (*PushNotifier, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	return &PushNotifier{client: client}, nil
}

// Push sends a text message to the user outside of a reply context.
func (n *PushNotifier) Push(ctx context.Context, userID string, text string) error {
	if _, err := n.client.PushMessage(userID, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("failed to push message to %s: %w", userID, err)
	}
	return nil
}
