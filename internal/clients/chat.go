package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ChatContext carries the pregnancy state used to ground the companion reply.
type ChatContext struct {
	PregnancyWeek  int
	PregnancyStage string
	IsPostpartum   bool
}

// ChatResponder produces a companion reply for a user message.
type ChatResponder interface {
	Reply(ctx context.Context, userMessage string, chatCtx ChatContext) string
}

// ChatClient calls a chat-completion API. Any failure yields the configured
// fallback reply; the raw error never reaches the end user.
type ChatClient struct {
	httpClient *resty.Client
	model      string
	fallback   string
	logger     *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewChatClient creates a chat-completion client.
func NewChatClient(baseURL, apiKey, model, fallback string, logger *zap.Logger) *ChatClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &ChatClient{
		httpClient: client,
		model:      model,
		fallback:   fallback,
		logger:     logger,
	}
}

// Reply sends the user message with a pregnancy-aware system prompt and
// returns the completion text, or the fallback on any failure.
func (c *ChatClient) Reply(ctx context.Context, userMessage string, chatCtx ChatContext) string {
	request := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(chatCtx)},
			{Role: "user", Content: userMessage},
		},
	}

	var response chatCompletionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/chat/completions")

	if err != nil {
		c.logger.Error("chat completion call failed", zap.Error(err))
		return c.fallback
	}
	if resp.IsError() {
		c.logger.Error("chat completion returned error status",
			zap.Int("status_code", resp.StatusCode()),
		)
		return c.fallback
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		c.logger.Error("chat completion returned no choices")
		return c.fallback
	}

	return response.Choices[0].Message.Content
}

func systemPrompt(chatCtx ChatContext) string {
	prompt := "You are a warm, supportive companion for a maternal-wellness app. " +
		"Offer encouragement and practical suggestions. You are not a medical " +
		"professional; for anything clinical, suggest contacting the user's care provider."

	if chatCtx.IsPostpartum || chatCtx.PregnancyStage == "postpartum" {
		prompt += " The user is postpartum."
	} else if chatCtx.PregnancyWeek > 0 {
		prompt += fmt.Sprintf(" The user is %d weeks pregnant.", chatCtx.PregnancyWeek)
	} else if chatCtx.PregnancyStage != "" {
		prompt += fmt.Sprintf(" The user's pregnancy stage is %s.", chatCtx.PregnancyStage)
	}

	return prompt
}
