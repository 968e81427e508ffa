package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/stylewise/wardrobe-api/config"
)

const geminiModel = "gemini-1.5-flash"

// SkinToneResult is the classifier's answer for an analyzed photo.
type SkinToneResult struct {
	SkinTone   string `json:"skinTone"`
	Confidence string `json:"confidence"`
}

// ColorAdvice is the generated color recommendation for a skin tone.
type ColorAdvice struct {
	RecommendedColors []string `json:"recommendedColors"`
	Advice            string   `json:"advice"`
}

// DetectSkinTone classifies the skin tone of the person in the image. The
// model is treated as an opaque classifier returning a label.
func DetectSkinTone(ctx context.Context, imageURL string) (*SkinToneResult, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	imgData, mimeType, err := fetchImage(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %v", err)
	}

	prompt := `Analyze this person's skin tone in the image and classify it into ONE of these categories ONLY: fair, light, medium, tan, deep, dark, reddish, olive, pale.

Return ONLY a JSON object with this exact structure (no markdown, no backticks):
{
  "skinTone": "one of the categories above",
  "confidence": "high|medium|low"
}`

	model := client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(subtypeOf(mimeType), imgData))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	var result SkinToneResult
	if err := decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestDressColors asks the model for dress colors suiting a skin tone.
func SuggestDressColors(ctx context.Context, skinTone string) (*ColorAdvice, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	prompt := fmt.Sprintf(`Suggest suitable dress colors for a person with %s skin tone. Return ONLY a JSON object with this structure: { "recommendedColors": ["color1", "color2", "color3", "color4", "color5"], "advice": "short advice (max 2 sentences)" }. Do not include markdown formatting or backticks.`, skinTone)

	model := client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	var advice ColorAdvice
	if err := decodeJSONResponse(resp, &advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

// decodeJSONResponse extracts the first text part and unmarshals it,
// stripping markdown code fences the model sometimes adds anyway.
func decodeJSONResponse(resp *genai.GenerateContentResponse, out interface{}) error {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no content generated")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text = string(t)
			break
		}
	}
	if text == "" {
		return fmt.Errorf("unexpected response format (no text part)")
	}

	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", ""))
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("failed to parse AI response: %v", err)
	}
	return nil
}

func fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}

// subtypeOf maps "image/png" to "png" for the genai image part helper.
func subtypeOf(mimeType string) string {
	if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
		return sub
	}
	return "jpeg"
}
