// Gemini implementation of [Assistant]
//
// Uses the generateContent REST endpoint documented at
// https://ai.google.dev/api/generate-content
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/secure"
	"github.com/telaflix/telaflix/internal/shared"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	geminiReqTimeout = 15 * time.Second
	defaultModel     = "gemini-2.0-flash"

	assistantPersona = "Você é o Alex, especialista de suporte e curador oficial da TELAFLIX. " +
		"Seja moderno, cinéfilo e educado. Recomende filmes do catálogo ou ajude com " +
		"problemas técnicos de forma empática."
)

// GeminiService implements [Assistant] against the Gemini REST API.
type GeminiService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService creates an assistant client from configuration.
func NewGeminiService(cfg shared.GeminiConfig) *GeminiService {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiService{
		baseURL:    geminiBaseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: geminiReqTimeout},
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (g *GeminiService) SetBaseURL(u string) { g.baseURL = u }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Recommend answers userInput against the catalog snapshot in the given
// language. The caller supplies the fallback copy for failures.
func (g *GeminiService) Recommend(ctx context.Context, userInput string, catalog []models.Movie, language string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: Gemini API key", shared.ErrMissingCredentials)
	}

	titles := make([]string, 0, len(catalog))
	for _, m := range catalog {
		titles = append(titles, m.Title)
	}
	lang := "Português"
	if language == "en" {
		lang = "Inglês"
	}
	prompt := fmt.Sprintf("Pergunta: %q. Catálogo: %s. Responda como Alex (curador TELAFLIX) em %s.",
		secure.Sanitize(userInput), strings.Join(titles, ", "), lang)

	body, err := json.Marshal(geminiRequest{
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: assistantPersona}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Gemini status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty Gemini response", shared.ErrAPIRequest)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
