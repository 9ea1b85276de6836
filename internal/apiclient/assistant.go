package apiclient

import (
	"context"
	"net/http"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// QueryAssistant sends one message to the help assistant and returns its
// reply text.
func (c *Client) QueryAssistant(ctx context.Context, message string) (string, error) {
	var reply domain.AssistantReply
	err := c.doJSON(ctx, http.MethodPost, "/assistant/query", nil,
		domain.AssistantQuery{Message: message}, &reply)
	if err != nil {
		return "", err
	}
	return reply.Response, nil
}
