// Package gemini implements the caption and place suggestion assistant on
// top of the Gemini API.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Assistant asks Gemini for image captions and place-name completions.
type Assistant struct {
	client *genai.Client
	model  string
}

// NewAssistant creates a Gemini-backed assistant.
func NewAssistant(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

// GenerateCaption asks the model for a short social caption with hashtags.
func (a *Assistant) GenerateCaption(ctx context.Context, imageBase64, hint string) (string, error) {
	imageBytes, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Write a short, engaging, and trendy Instagram-style caption for this image.\n")
	sb.WriteString("Include 3-5 relevant hashtags.\n")
	if hint = strings.TrimSpace(hint); hint != "" {
		fmt.Fprintf(&sb, "Context provided by user: %q\n", hint)
	}
	sb.WriteString("Keep it under 280 characters if possible.")

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			// Both jpeg and png uploads decode fine on the model side,
			// so a single mime type keeps the request simple.
			genai.NewPartFromBytes(imageBytes, "image/jpeg"),
			genai.NewPartFromText(sb.String()),
		}, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating caption: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// SearchPlaces asks the model for up to five place names matching the query
// and parses the JSON array it returns.
func (a *Assistant) SearchPlaces(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(
		"List up to 5 real-world place names matching the search %q, most relevant first. "+
			"Respond with a JSON array of strings and nothing else.", query)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("searching places: %w", err)
	}

	var places []string
	if err := json.Unmarshal([]byte(resp.Text()), &places); err != nil {
		return nil, fmt.Errorf("parsing place results: %w", err)
	}
	return places, nil
}
