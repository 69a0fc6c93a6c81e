package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/meetitmo/backend/internal/app/apiapp"
	"github.com/meetitmo/backend/internal/config"
	authsvc "github.com/meetitmo/backend/internal/services/auth"
)

func newServer(t *testing.T) (*httptest.Server, config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.S3.Endpoint = ""

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts, cfg
}

func bearer(t *testing.T, cfg config.Config, subjectID int64) string {
	t.Helper()
	token, _, err := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL).GenerateAccessToken(subjectID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthz(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestMatchingRoutesRequireBearerToken(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/random_person")
	if err != nil {
		t.Fatalf("get random_person: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestEmptyStoreFlow(t *testing.T) {
	ts, cfg := newServer(t)
	auth := bearer(t, cfg, 1001)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/random_person", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", auth)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get random_person: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected random_person status: got %d want %d", resp.StatusCode, http.StatusNotFound)
	}

	// The ledger does not require a profile for the target.
	req, err = http.NewRequest(http.MethodPost, ts.URL+"/superlike_person", bytes.NewBufferString(`{"target_id":1002}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post superlike_person: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected superlike status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Matched        bool   `json:"matched"`
		ConversationID string `json:"conversationId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Matched || payload.ConversationID == "" {
		t.Fatalf("unexpected superlike payload: %+v", payload)
	}
}
