package services

import (
	"PlanBuilder/config/environment"
	"PlanBuilder/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"
	openai "github.com/sashabaranov/go-openai"
)

// itinerarySystemPrompt keeps the model on a single plain-text sentence so the
// reply can be dropped straight into the itinerary message field.
const itinerarySystemPrompt = "You are a travel assistant. Given a day itinerary, reply with one short, " +
	"friendly sentence summarizing the day. Mention the number of stops and one or two highlights. " +
	"Reply with plain text only, no markdown and no quotes."

// OpenAIService writes a short natural-language summary of a generated
// itinerary. It is optional: without an API key the plan keeps its
// deterministic message.
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService reads the API key from the environment. With no key the
// service stays disabled and every summary call errors.
func NewOpenAIService() *OpenAIService {
	s := &OpenAIService{model: openai.GPT4oMini}
	if key := environment.GetOpenAIKey(); key != "" {
		s.client = openai.NewClient(key)
	}
	return s
}

// NewOpenAIServiceWithConfig builds the service from an explicit client
// configuration. Tests use this to point BaseURL at a local server.
func NewOpenAIServiceWithConfig(config openai.ClientConfig) *OpenAIService {
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  openai.GPT4oMini,
	}
}

// Enabled reports whether an API key was configured.
func (s *OpenAIService) Enabled() bool {
	return s.client != nil
}

// SummarizeItinerary asks the model for a one-sentence summary of the stops.
func (s *OpenAIService) SummarizeItinerary(ctx context.Context, stops []models.ItineraryStop) (string, error) {
	if s.client == nil {
		return "", errors.New("OpenAI API key is not configured")
	}
	if len(stops) == 0 {
		return "", errors.New("no stops to summarize")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: itinerarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describeStops(stops)},
		},
		MaxTokens: 120,
	})
	if err != nil {
		return "", fmt.Errorf("error requesting itinerary summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no valid response received")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Debug().Int("stops", len(stops)).Msg("Generated itinerary summary")
	return summary, nil
}

// describeStops renders the schedule as the user message, one line per stop.
func describeStops(stops []models.ItineraryStop) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this day plan with %d stops:\n", len(stops))
	for i, stop := range stops {
		fmt.Fprintf(&b, "%d. %s (%s) %s-%s, estimated cost %.0f",
			i+1, stop.Name, stop.Category,
			stop.StartTime.Format("15:04"), stop.EndTime.Format("15:04"),
			stop.EstimatedCost)
		if stop.Meal != "" {
			fmt.Fprintf(&b, ", %s", stop.Meal)
		}
		b.WriteString("\n")
	}
	return b.String()
}
