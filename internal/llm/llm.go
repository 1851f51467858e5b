package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/grcdash/fbk/internal/models"
)

// TriageSuggestion holds the LLM-suggested classification for feedback.
type TriageSuggestion struct {
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Rationale string `json:"rationale"`
}

// Client wraps the Anthropic API for feedback triage and digests.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildTriagePrompt constructs the system and user prompts for triage.
func buildTriagePrompt(title, description string) (system string, user string) {
	system = `You triage feedback for a governance/risk/compliance dashboard. Given a feedback item's title and description, return ONLY a JSON object with these fields:
- "category": one of "feature", "bug", "improvement", "integration", "performance"
- "priority": one of "low", "medium", "high", "critical"
- "rationale": one or two sentences explaining the classification

Rules:
- Problems with existing behavior are "bug"; slowness or load issues are "performance"
- Requests to connect external systems (SSO, SIEM, ticketing) are "integration"
- Reserve "critical" for data loss, security exposure, or blocked compliance deadlines
- Return valid JSON only, no markdown fencing or explanation`

	var sb strings.Builder
	sb.WriteString("Feedback title: ")
	sb.WriteString(title)
	sb.WriteString("\n")
	if description != "" {
		sb.WriteString("\nDescription:\n")
		sb.WriteString(description)
		sb.WriteString("\n")
	}
	user = sb.String()
	return
}

// Triage asks the LLM to classify one feedback item.
func (c *Client) Triage(ctx context.Context, title, description string) (*TriageSuggestion, error) {
	systemPrompt, userPrompt := buildTriagePrompt(title, description)

	text, err := c.complete(ctx, systemPrompt, userPrompt, 1024)
	if err != nil {
		return nil, err
	}

	var suggestion TriageSuggestion
	if err := json.Unmarshal([]byte(stripFences(text)), &suggestion); err != nil {
		return nil, fmt.Errorf("parse LLM response as JSON: %w\nraw response: %s", err, text)
	}
	return &suggestion, nil
}

// buildDigestPrompt constructs the prompts for a cross-feedback digest.
func buildDigestPrompt(items []models.Feedback) (system string, user string) {
	system = `You summarize feedback trends for a governance/risk/compliance dashboard. Given a list of feedback items, write a short digest (3-8 sentences) covering: the dominant themes, anything urgent, and what the team should look at first. Plain prose, no headings, no bullet lists.`

	var sb strings.Builder
	sb.WriteString("Feedback items:\n\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- [%s/%s/%s, %d votes, %d comments] %s: %s\n",
			item.Category, item.Priority, item.Status, item.Votes, item.Comments, item.Title, item.Description)
	}
	user = sb.String()
	return
}

// Digest asks the LLM for a prose summary of themes across feedback items.
func (c *Client) Digest(ctx context.Context, items []models.Feedback) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no feedback items to digest")
	}
	systemPrompt, userPrompt := buildDigestPrompt(items)
	text, err := c.complete(ctx, systemPrompt, userPrompt, 2048)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// complete runs one messages call and returns the first text block.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int64) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

// stripFences removes markdown code fencing if the model added it anyway.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
