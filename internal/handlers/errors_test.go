package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, zap.NewNop(), 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != "Teapot" {
		t.Fatalf("expected body 'Teapot', got %q", body)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	recorder := httptest.NewRecorder()

	respondWithError(recorder, zap.New(core), 500, "Internal server error", "", errors.New("boom"))

	entries := logs.FilterMessage("Internal server error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry with the user message, got %d", logs.Len())
	}
	if got := entries[0].ContextMap()["error"]; got != "boom" {
		t.Fatalf("expected log to include error, got %v", got)
	}
}

func TestRespondWithErrorSkipsLogWithoutError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	respondWithError(httptest.NewRecorder(), zap.New(core), 400, "Bad", "", nil)

	if logs.Len() != 0 {
		t.Fatalf("expected no log entries, got %d", logs.Len())
	}
}
