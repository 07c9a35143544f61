package logging_test

import (
	"context"
	"testing"
	"time"

	"worldmap/server/logging"
	"worldmap/server/logging/sinks"
)

func newMemoryRouter(cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	memory := sinks.NewMemorySink()
	router := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	return router, memory
}

func TestRouterDeliversToSink(t *testing.T) {
	router, memory := newMemoryRouter(logging.DefaultConfig())
	router.Publish(context.Background(), logging.Event{
		Type: "http", Severity: logging.SeverityInfo,
		Category: logging.CategoryRequest, Route: "/status", Message: "ok",
	})
	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Route != "/status" || events[0].Message != "ok" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("router must stamp events missing a time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newMemoryRouter(cfg)

	router.Publish(context.Background(), logging.Event{Type: "a", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "b", Severity: logging.SeverityError})
	router.Close(context.Background())

	events := memory.Events()
	if len(events) != 1 || events[0].Type != "b" {
		t.Fatalf("severity filter failed: %+v", events)
	}
}

func TestRouterDropsEventsWithoutType(t *testing.T) {
	router, memory := newMemoryRouter(logging.DefaultConfig())
	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo, Message: "anonymous"})
	router.Close(context.Background())

	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("typeless event was delivered: %+v", events)
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"service": "worldmap"}
	router, memory := newMemoryRouter(cfg)

	router.Publish(context.Background(), logging.Event{Type: "http", Severity: logging.SeverityInfo})
	router.Close(context.Background())

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Extra["service"] != "worldmap" {
		t.Fatalf("configured field missing: %+v", events[0].Extra)
	}
}

func TestRouterCloseIsIdempotent(t *testing.T) {
	router, _ := newMemoryRouter(logging.DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := router.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
