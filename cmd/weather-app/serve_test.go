package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/stepanukha/Weather-App/internal/store"
)

func TestHealth(t *testing.T) {
	app := newApp(&recordingAdviser{}, store.NewMemoryStore(10, time.Hour), zaptest.NewLogger(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "weather-app" {
		t.Errorf("unexpected health payload %v", body)
	}
}

func TestNewAppServesAPI(t *testing.T) {
	adv := &recordingAdviser{}
	app := newApp(adv, store.NewMemoryStore(10, time.Hour), zaptest.NewLogger(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/recommendation?zip=19104", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if adv.got.PostalCode != "19104" {
		t.Errorf("unexpected request %+v", adv.got)
	}
}
