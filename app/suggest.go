package app

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	fallbackCaption = "Caught in the moment. #gek"
	emptyCaption    = "Just sharing a moment! #gek"

	minPlaceQueryLen = 3
	maxPlaces        = 5
)

// Suggester wraps an Assistant so suggestion failures always degrade to a
// safe default instead of reaching the upload flow as errors. A nil
// assistant (no API key configured) behaves like a permanently failing one.
type Suggester struct {
	assistant Assistant
	log       *zap.Logger
}

func NewSuggester(assistant Assistant, log *zap.Logger) *Suggester {
	return &Suggester{assistant: assistant, log: log}
}

// Caption returns a generated caption for the image, or a fixed fallback on
// any failure. It never blocks the upload flow with an error.
func (s *Suggester) Caption(ctx context.Context, imageBase64, hint string) string {
	if s.assistant == nil {
		return fallbackCaption
	}
	caption, err := s.assistant.GenerateCaption(ctx, imageBase64, hint)
	if err != nil {
		s.log.Warn("caption generation failed", zap.Error(err))
		return fallbackCaption
	}
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return emptyCaption
	}
	return caption
}

// Places returns up to five place names for the query. Queries shorter than
// three characters return nothing without invoking the service, and any
// service failure is reported as "no suggestions".
func (s *Suggester) Places(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if s.assistant == nil || len([]rune(query)) < minPlaceQueryLen {
		return nil
	}
	places, err := s.assistant.SearchPlaces(ctx, query)
	if err != nil {
		s.log.Warn("place search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	if len(places) > maxPlaces {
		places = places[:maxPlaces]
	}
	return places
}
