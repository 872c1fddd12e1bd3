package board

import (
	"context"
	"testing"
)

func TestContextWithActivityZeroKeepsExistingActor(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "op-1"})
	ctx = ContextWithActivity(ctx, ActivityContext{})
	if got := activityContextFrom(ctx); got.ActorID != "op-1" {
		t.Fatalf("zero meta must not wipe the actor, got %+v", got)
	}
}

func TestContextWithActivityOverrides(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "op-1"})
	ctx = ContextWithActivity(ctx, ActivityContext{ActorID: "op-2", TenantID: "plant-9"})
	got := activityContextFrom(ctx)
	if got.ActorID != "op-2" || got.TenantID != "plant-9" {
		t.Fatalf("unexpected activity context: %+v", got)
	}
	if got := activityContextFrom(context.Background()); !got.IsZero() {
		t.Fatalf("missing context must read as zero, got %+v", got)
	}
}
