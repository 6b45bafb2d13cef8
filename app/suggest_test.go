package app

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestCaption_Fallbacks(t *testing.T) {
	ctx := context.Background()

	nilAssistant := NewSuggester(nil, zap.NewNop())
	if got := nilAssistant.Caption(ctx, "aGk=", ""); got != fallbackCaption {
		t.Fatalf("nil assistant must return the fallback caption: %q", got)
	}

	failing := NewSuggester(&stubAssistant{captionErr: errBroken}, zap.NewNop())
	if got := failing.Caption(ctx, "aGk=", ""); got != fallbackCaption {
		t.Fatalf("assistant failure must return the fallback caption: %q", got)
	}

	empty := NewSuggester(&stubAssistant{caption: "   "}, zap.NewNop())
	if got := empty.Caption(ctx, "aGk=", ""); got != emptyCaption {
		t.Fatalf("blank response must return the empty-response caption: %q", got)
	}
}

func TestCaption_TrimsResponse(t *testing.T) {
	s := NewSuggester(&stubAssistant{caption: "  Sunset vibes #gek  \n"}, zap.NewNop())
	if got := s.Caption(context.Background(), "aGk=", "beach"); got != "Sunset vibes #gek" {
		t.Fatalf("caption should be trimmed: %q", got)
	}
}

func TestPlaces_ShortQuerySkipsService(t *testing.T) {
	stub := &stubAssistant{places: []string{"Paris, France"}}
	s := NewSuggester(stub, zap.NewNop())

	if got := s.Places(context.Background(), "pa"); got != nil {
		t.Fatalf("query under 3 chars must return nothing: %#v", got)
	}
	if got := s.Places(context.Background(), "  p  "); got != nil {
		t.Fatalf("length check must apply after trimming: %#v", got)
	}
	if stub.placesCalls != 0 {
		t.Fatalf("short queries must not invoke the service, got %d calls", stub.placesCalls)
	}
}

func TestPlaces_CapsAtFive(t *testing.T) {
	stub := &stubAssistant{places: []string{"a", "b", "c", "d", "e", "f", "g"}}
	s := NewSuggester(stub, zap.NewNop())

	got := s.Places(context.Background(), "paris")
	if len(got) != 5 {
		t.Fatalf("results must be capped at five: %#v", got)
	}
}

func TestPlaces_FailureMeansNoSuggestions(t *testing.T) {
	s := NewSuggester(&stubAssistant{placesErr: errBroken}, zap.NewNop())
	if got := s.Places(context.Background(), "paris"); got != nil {
		t.Fatalf("service failure must yield no suggestions: %#v", got)
	}

	disabled := NewSuggester(nil, zap.NewNop())
	if got := disabled.Places(context.Background(), "paris"); got != nil {
		t.Fatalf("nil assistant must yield no suggestions: %#v", got)
	}
}
