package context

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}

func TestActorIgnoresEmptyValues(t *testing.T) {
	ctx := WithActor(context.Background(), "ADMIN", "")
	actorType, actorID := ActorFromContext(ctx)
	if actorType != "ADMIN" || actorID != "" {
		t.Fatalf("unexpected actor %q/%q", actorType, actorID)
	}
}
