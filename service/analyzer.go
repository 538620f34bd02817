package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pocketledger/config"

	"google.golang.org/genai"
)

// Analyzer providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Analyzer generates markdown commentary from a prompt.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// NewAnalyzer builds the configured analyzer. It returns nil, nil when no API key
// is configured, which disables analysis without failing startup.
func NewAnalyzer(ctx context.Context, cfg config.AIConfig) (Analyzer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "":
		return NewGeminiAnalyzer(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		return NewChatAnalyzer(cfg.BaseURL, cfg.APIKey, cfg.Model, nil), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// GeminiAnalyzer calls the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyzer creates a Gemini client for apiKey.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiAnalyzer{client: client, model: model}, nil
}

// Provider returns "gemini".
func (g *GeminiAnalyzer) Provider() string { return ProviderGemini }

// Analyze sends prompt to the configured Gemini model and returns its text.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini response has no text")
	}
	return sb.String(), nil
}

// ChatAnalyzer calls an OpenAI compatible /chat/completions endpoint.
type ChatAnalyzer struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewChatAnalyzer creates the analyzer; a nil client means http.DefaultClient.
func NewChatAnalyzer(baseURL, apiKey, model string, client *http.Client) *ChatAnalyzer {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &ChatAnalyzer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

// Provider returns "openai".
func (a *ChatAnalyzer) Provider() string { return ProviderOpenAI }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze posts prompt as a single user message and returns the first choice.
func (a *ChatAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    a.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ai service returned %d: %s", resp.StatusCode, string(msg))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ai response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errors.New("ai service returned no content")
	}
	return out.Choices[0].Message.Content, nil
}
