package app

import "context"

// Assistant is the external caption/place suggestion service.
// Implemented by infrastructure (infra/gemini).
type Assistant interface {
	// GenerateCaption asks for a short social caption for the image,
	// optionally biased by a free-text hint.
	GenerateCaption(ctx context.Context, imageBase64, hint string) (string, error)

	// SearchPlaces returns place names matching the query, best first.
	SearchPlaces(ctx context.Context, query string) ([]string, error)
}
