package settings

import (
	"context"
	"testing"
)

func TestIntoContextFromContextRoundTrip(t *testing.T) {
	run := &Run{
		ConfigPath:  "nav.yaml",
		StartPath:   "inventory",
		WatchConfig: true,
	}
	ctx := IntoContext(context.Background(), run)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext() should find the stored Run")
	}
	if got != run {
		t.Error("FromContext() should return the stored Run pointer")
	}
	if got.ConfigPath != "nav.yaml" || got.StartPath != "inventory" || !got.WatchConfig {
		t.Errorf("FromContext() returned altered values: %+v", got)
	}
}

func TestFromContextWithoutRun(t *testing.T) {
	got, ok := FromContext(context.Background())
	if ok {
		t.Error("FromContext() ok = true on a bare context")
	}
	if got != nil {
		t.Errorf("FromContext() got = %v; want nil", got)
	}
}

func TestFromContextWrongValueType(t *testing.T) {
	ctx := context.WithValue(context.Background(), runContextKey{}, "not a Run")
	got, ok := FromContext(ctx)
	if ok || got != nil {
		t.Errorf("FromContext() = (%v, %v); want (nil, false) for a foreign value", got, ok)
	}
}

func TestIntoContextInnermostRunWins(t *testing.T) {
	outer := &Run{ConfigPath: "outer.yaml"}
	inner := &Run{ConfigPath: "inner.yaml"}
	ctx := IntoContext(IntoContext(context.Background(), outer), inner)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext() should find the stored Run")
	}
	if got != inner {
		t.Errorf("FromContext() ConfigPath = %q; want the innermost Run", got.ConfigPath)
	}
}
