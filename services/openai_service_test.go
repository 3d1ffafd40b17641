package services

import (
	"PlanBuilder/models"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIService(baseURL string) *OpenAIService {
	config := openai.DefaultConfig("test-key")
	config.BaseURL = baseURL + "/v1"
	return NewOpenAIServiceWithConfig(config)
}

func summaryStops() []models.ItineraryStop {
	return []models.ItineraryStop{
		{
			PlaceID:       "a-1",
			Name:          "City Museum",
			Category:      models.CategoryAttraction,
			TravelMinutes: 10,
			StartTime:     at(9, 10),
			EndTime:       at(10, 10),
			EstimatedCost: 10,
		},
		{
			PlaceID:       "r-1",
			Name:          "Harbor Grill",
			Category:      models.CategoryRestaurant,
			Meal:          "lunch",
			TravelMinutes: 10,
			StartTime:     at(12, 0),
			EndTime:       at(13, 0),
			EstimatedCost: 30,
		},
	}
}

func chatCompletionReply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  openai.GPT4oMini,
		Choices: []openai.ChatCompletionChoice{
			{
				Index:   0,
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			},
		},
	}
}

func TestOpenAIService_SummarizeItinerary_Success(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionReply("  A two-stop day around the City Museum with lunch at Harbor Grill.  "))
	}))
	defer server.Close()

	service := newTestOpenAIService(server.URL)
	require.True(t, service.Enabled())

	summary, err := service.SummarizeItinerary(context.Background(), summaryStops())
	require.NoError(t, err)
	assert.Equal(t, "A two-stop day around the City Museum with lunch at Harbor Grill.", summary)

	assert.Equal(t, openai.GPT4oMini, captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "2 stops")
	assert.Contains(t, captured.Messages[1].Content, "City Museum")
	assert.Contains(t, captured.Messages[1].Content, "lunch")
}

func TestOpenAIService_SummarizeItinerary_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "server overloaded", "type": "server_error"}}`))
	}))
	defer server.Close()

	service := newTestOpenAIService(server.URL)
	_, err := service.SummarizeItinerary(context.Background(), summaryStops())
	assert.Error(t, err)
}

func TestOpenAIService_SummarizeItinerary_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-empty"})
	}))
	defer server.Close()

	service := newTestOpenAIService(server.URL)
	_, err := service.SummarizeItinerary(context.Background(), summaryStops())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid response")
}

func TestOpenAIService_SummarizeItinerary_NoStops(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	service := newTestOpenAIService(server.URL)
	_, err := service.SummarizeItinerary(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestOpenAIService_DisabledWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	service := NewOpenAIService()
	assert.False(t, service.Enabled())

	_, err := service.SummarizeItinerary(context.Background(), summaryStops())
	assert.Error(t, err)
}
