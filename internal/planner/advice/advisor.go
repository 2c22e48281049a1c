// internal/planner/advice/advisor.go

// Package advice annotates workout plans with coaching tips. The primary
// source is an LLM chat endpoint; a deterministic rule-based generator
// covers every failure so annotation never blocks plan delivery.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
)

// Advisor produces coaching text for exercises and whole plans.
type Advisor interface {
	ExerciseTip(ctx context.Context, ex models.Exercise, level string) (string, error)
	PlanTips(ctx context.Context, plan *models.WorkoutPlan) ([]string, error)
}

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

// MistralAdvisor calls a Mistral-compatible chat completions endpoint.
type MistralAdvisor struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewMistralAdvisor(config *Config, log logger.Logger) *MistralAdvisor {
	return &MistralAdvisor{
		config: config,
		// No client timeout, the request context bounds each call.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "mistral-advisor"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *MistralAdvisor) ExerciseTip(ctx context.Context, ex models.Exercise, level string) (string, error) {
	prompt := fmt.Sprintf(
		"Give a concise coaching tip for the exercise %q (equipment: %s, target: %s) "+
			"for a %s athlete. Mention form and one common mistake. Two sentences maximum.",
		ex.Title, ex.Equipment, ex.BodyPart, level,
	)

	text, err := a.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return TruncateAdvice(text), nil
}

func (a *MistralAdvisor) PlanTips(ctx context.Context, plan *models.WorkoutPlan) ([]string, error) {
	prompt := fmt.Sprintf(
		"Give exactly 3 short training tips for a %s athlete training %d days per week, "+
			"%d minutes per session. One tip per line, no numbering.",
		plan.Level, plan.DaysPerWeek, plan.MinutesPerSession,
	)

	text, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			tips = append(tips, line)
		}
	}
	if len(tips) == 0 {
		return nil, apperrors.NewAdviceGenerationFailedError(errors.New("empty response"))
	}
	return tips, nil
}

func (a *MistralAdvisor) complete(ctx context.Context, prompt string) (string, error) {
	return a.completeAs(ctx, "You are a certified fitness coach. Be specific and brief.", prompt)
}

func (a *MistralAdvisor) completeAs(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	requestBody := chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", apperrors.NewAdviceTimeoutError()
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", a.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", apperrors.NewAdviceGenerationFailedError(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

		resp, lastErr = a.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", apperrors.NewAdviceTimeoutError()
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewAdviceTimeoutError()
		}
		return "", apperrors.NewAdviceGenerationFailedError(lastErr)
	}
	if resp == nil {
		return "", apperrors.NewAdviceGenerationFailedError(errors.New("no successful response after retries"))
	}
	defer resp.Body.Close()

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", apperrors.NewAdviceGenerationFailedError(fmt.Errorf("decode error: %v", err))
	}
	if len(apiResponse.Choices) == 0 {
		return "", apperrors.NewAdviceGenerationFailedError(errors.New("empty choices"))
	}

	text := strings.TrimSpace(apiResponse.Choices[0].Message.Content)
	if text == "" {
		return "", apperrors.NewAdviceGenerationFailedError(errors.New("empty completion"))
	}
	return text, nil
}

// TruncateAdvice trims rambling completions: anything over 45 words is cut
// down to its first two sentences.
func TruncateAdvice(text string) string {
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) <= 45 {
		return text
	}

	sentences := splitSentences(text)
	if len(sentences) <= 2 {
		return text
	}
	return strings.TrimSpace(sentences[0] + " " + sentences[1])
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(text[start : i+1])
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
