package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"ascend/internal/model"
)

// AIService talks to an OpenAI-compatible chat-completions gateway. It backs
// the content tools: diet plan, workout plan, financial audit, relationship
// audit and cognitive reframing.
type AIService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewAIService(baseURL, apiKey, model string) *AIService {
	return &AIService{baseURL: baseURL, apiKey: apiKey, model: model, client: &http.Client{}}
}

func (s *AIService) Configured() bool { return s.baseURL != "" && s.apiKey != "" }

func (s *AIService) doChat(ctx context.Context, system, user string, stream bool, flush func(string)) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	body := map[string]interface{}{
		"model":  s.model,
		"stream": stream,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	if !stream {
		data, _ := io.ReadAll(resp.Body)
		var result struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(result.Choices) == 0 {
			return "", fmt.Errorf("empty choices")
		}
		return result.Choices[0].Message.Content, nil
	}

	scanner := bufio.NewScanner(resp.Body)
	var full strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[6:]
		if data == "[DONE]" {
			break
		}
		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if json.Unmarshal([]byte(data), &chunk) == nil && len(chunk.Choices) > 0 {
			token := chunk.Choices[0].Delta.Content
			if token != "" {
				full.WriteString(token)
				if flush != nil {
					flush(token)
				}
			}
		}
	}
	return full.String(), nil
}

func (s *AIService) chat(ctx context.Context, system, user string) (string, error) {
	return s.doChat(ctx, system, user, false, nil)
}

func (s *AIService) stream(ctx context.Context, system, user string, flush func(string)) (string, error) {
	return s.doChat(ctx, system, user, true, flush)
}

const (
	dietSystem = `You are a nutrition coach inside a 90-day self-improvement program.
Produce a one-week diet plan in Markdown: ## Overview, ## Daily Meals (one section
per day with macros), ## Shopping List, ## Adherence Tips. Respect the stated
restrictions and calorie target. Output only the plan.`

	workoutSystem = `You are a strength coach inside a 90-day self-improvement program.
Produce a weekly workout plan in Markdown: ## Overview, ## Schedule (one section per
training day: exercises, sets x reps, rest), ## Progression, ## Recovery. Match the
stated experience level and available equipment. Output only the plan.`

	financeSystem = `You are a personal-finance auditor. From the figures provided,
produce a Markdown audit: ## Snapshot, ## Where Money Leaks, ## 90-Day Actions,
## Savings Target. Be direct and concrete, no disclaimers.`

	relationshipSystem = `You are a relationships coach. From the situation described,
produce a Markdown audit: ## Patterns Observed, ## What To Keep, ## What To Change,
## This Week's Actions. Be direct and practical, no platitudes.`

	reframeSystem = `You are a CBT journaling assistant. Given a negative thought,
return JSON: {"distortion":"the cognitive distortion at play","reframe":"a balanced
restatement","action":"one small concrete step"}. Return only JSON.`
)

// StreamDietPlan generates a weekly diet plan from the member's answers.
func (s *AIService) StreamDietPlan(ctx context.Context, fields map[string]string, flush func(string)) (string, error) {
	result, err := s.stream(ctx, dietSystem, renderFields(fields), flush)
	if err != nil {
		return "", fmt.Errorf("diet plan: %w", err)
	}
	return result, nil
}

func (s *AIService) StreamWorkoutPlan(ctx context.Context, fields map[string]string, flush func(string)) (string, error) {
	result, err := s.stream(ctx, workoutSystem, renderFields(fields), flush)
	if err != nil {
		return "", fmt.Errorf("workout plan: %w", err)
	}
	return result, nil
}

func (s *AIService) StreamFinancialAudit(ctx context.Context, fields map[string]string, flush func(string)) (string, error) {
	result, err := s.stream(ctx, financeSystem, renderFields(fields), flush)
	if err != nil {
		return "", fmt.Errorf("financial audit: %w", err)
	}
	return result, nil
}

func (s *AIService) StreamRelationshipAudit(ctx context.Context, text string, flush func(string)) (string, error) {
	result, err := s.stream(ctx, relationshipSystem, text, flush)
	if err != nil {
		return "", fmt.Errorf("relationship audit: %w", err)
	}
	return result, nil
}

// ReframeThought runs the cognitive-reframing tool. Falls back to echoing the
// raw completion when the model ignores the JSON instruction.
func (s *AIService) ReframeThought(ctx context.Context, thought string) (model.ReframeResponse, error) {
	result, err := s.chat(ctx, reframeSystem, thought)
	if err != nil {
		return model.ReframeResponse{}, fmt.Errorf("reframe: %w", err)
	}
	var parsed model.ReframeResponse
	if json.Unmarshal([]byte(extractJSON(result)), &parsed) != nil || parsed.Reframe == "" {
		return model.ReframeResponse{Reframe: result}, nil
	}
	return parsed, nil
}

func renderFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k, fields[k]))
	}
	return sb.String()
}

// extractJSON strips markdown fences some models wrap around JSON output.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
