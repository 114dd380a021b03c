package service

import (
	"context"
	"errors"
	"exam_prep_backend/internal/config"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// AIService talks to an OpenAI-compatible chat-completions endpoint. The
// config watcher may swap the provider settings while requests are in
// flight, so reads and reloads go through the mutex.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *openai.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg, client: newChatClient(cfg)}
}

func newChatClient(cfg config.AIConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		// OpenRouter and other OpenAI-compatible providers.
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// UpdateConfig swaps the AI settings on a config reload.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = newChatClient(cfg)
}

func (s *AIService) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Enabled && s.config.APIKey != ""
}

// Chat sends one system/user exchange and returns the assistant reply.
func (s *AIService) Chat(system, user string) (string, error) {
	s.mu.RLock()
	client := s.client
	model := s.config.Model
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

const adviceSystemPrompt = "You are a study coach for competitive exam preparation. " +
	"Given a student's performance summary, write a short, encouraging paragraph " +
	"(at most 120 words) with concrete advice on what to focus on next. " +
	"Plain text only, no markdown, no lists."

// StudyAdvice turns a performance summary into a short coaching paragraph.
func (s *AIService) StudyAdvice(summary string) (string, error) {
	return s.Chat(adviceSystemPrompt, summary)
}
