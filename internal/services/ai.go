package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/models"
)

// ChatCompleter is the part of the OpenAI client the AI service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
}

// DraftedTask is a suggested task; it becomes a real task only when a user
// creates it.
type DraftedTask struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`
	EstimatedHours *float64            `json:"estimated_hours"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithClient is used by tests to supply a fake completer.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{client: client}
}

// DraftTasksFromBrief breaks a client brief into production tasks using OpenAI GPT
func (s *AIService) DraftTasksFromBrief(ctx context.Context, projectName, brief string) ([]DraftedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a production coordinator at a creative studio. Break the client brief below into concrete production tasks for the project %q.

Brief:
%s

Return only a JSON array, no prose:
[
  {
    "title": "short task title",
    "description": "what needs to be delivered",
    "priority": "low | medium | high",
    "estimated_hours": 4
  }
]

Rules:
- Return [] if the brief contains no actionable work
- estimated_hours is a number or null
- Return at most %d tasks`, projectName, brief, constants.MaxAIDraftedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseDraftedTasks(resp.Choices[0].Message.Content)
}

func parseDraftedTasks(content string) ([]DraftedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var drafts []DraftedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	valid := make([]DraftedTask, 0, len(drafts))
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = models.TaskPriorityMedium
		}
		if d.EstimatedHours != nil && *d.EstimatedHours < 0 {
			d.EstimatedHours = nil
		}
		valid = append(valid, d)
		if len(valid) == constants.MaxAIDraftedTasks {
			break
		}
	}
	return valid, nil
}
