package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// ChatClient implements rocketchat.ChatClient.
type ChatClient struct {
	httpClient *http.Client
}

// NewChatClient creates a new chat client.
func NewChatClient(httpClient *http.Client) *ChatClient {
	return &ChatClient{
		httpClient: httpClient,
	}
}

// controlSequences turns double-escaped control characters back into the
// characters themselves.
var controlSequences = strings.NewReplacer(
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\b`, "\b",
	`\f`, "\f",
)

// PostMessage implements rocketchat.ChatClient.PostMessage. The message text
// and the text of each attachment have escaped control sequences unescaped.
func (c *ChatClient) PostMessage(ctx context.Context, msg *rocketchat.PostMessage) (*rocketchat.MessageResponse, error) {
	if msg == nil {
		msg = &rocketchat.PostMessage{}
	}

	err := rocketchat.Validate(msg)
	if err != nil {
		return nil, err
	}

	params, err := rocketchat.ParamsFrom(msg)
	if err != nil {
		return nil, err
	}

	payload := sanitizeMessage(params.With(msg.Extra))

	resp, err := c.httpClient.Post(ctx, "chat.postMessage", payload)
	if err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}

	return decode[rocketchat.MessageResponse](resp, "message")
}

// Delete implements rocketchat.ChatClient.Delete.
func (c *ChatClient) Delete(ctx context.Context, roomID, messageID string) (*rocketchat.DeleteMessageResponse, error) {
	resp, err := c.httpClient.Post(ctx, "chat.delete", rocketchat.Params{"roomId": roomID, "msgId": messageID})
	if err != nil {
		return nil, fmt.Errorf("deleting message: %w", err)
	}

	return decode[rocketchat.DeleteMessageResponse](resp, "message")
}

func sanitizeMessage(payload rocketchat.Params) rocketchat.Params {
	if text, ok := payload["text"].(string); ok {
		payload["text"] = controlSequences.Replace(text)
	}

	attachments, ok := payload["attachments"].([]any)
	if !ok {
		return payload
	}

	sanitized := make([]any, len(attachments))

	for i, attachment := range attachments {
		fields, isMap := attachment.(map[string]any)
		if !isMap {
			sanitized[i] = attachment

			continue
		}

		copied := make(map[string]any, len(fields))
		for key, value := range fields {
			copied[key] = value
		}

		if text, isText := copied["text"].(string); isText {
			copied["text"] = controlSequences.Replace(text)
		}

		sanitized[i] = copied
	}

	payload["attachments"] = sanitized

	return payload
}
