package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/sashabaranov/go-openai"
)

// TaskSuggester proposes checklist tasks from free text.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error)
}

type AIService struct {
	client *openai.Client
}

// SuggestedTask is a task proposal. Deadline is a date (YYYY-MM-DD) or empty.
type SuggestedTask struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasks analyzes text and extracts checklist tasks using OpenAI GPT
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`You help stage managers build checklists. Extract the concrete tasks from the text below.

Today: %s

Text:
%s

Answer with a JSON array of at most %d tasks:
[
  {
    "name": "short task name",
    "description": "details, may be empty",
    "deadline": "due date as YYYY-MM-DD, or an empty string when none is given"
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative dates ("tomorrow", "next Friday") to absolute dates
- Return only the JSON array, no explanations`, today, text, constants.MaxAIGeneratedTasks)

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

	return parseSuggestedTasks(resp.Choices[0].Message.Content)
}

// parseSuggestedTasks decodes the model output, tolerating a markdown code
// fence, and drops unnamed tasks and invalid deadlines.
func parseSuggestedTasks(content string) ([]SuggestedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw []SuggestedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	tasks := make([]SuggestedTask, 0, len(raw))
	for _, t := range raw {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", t.Deadline); err != nil {
			t.Deadline = ""
		}
		tasks = append(tasks, t)
		if len(tasks) == constants.MaxAIGeneratedTasks {
			break
		}
	}
	return tasks, nil
}
