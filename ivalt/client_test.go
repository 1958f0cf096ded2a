package ivalt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, server
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://example.test"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestSubmitChallengeSendsMobileAndKey(t *testing.T) {
	var gotPath, gotKey, gotMobile string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")

		var body struct {
			Mobile string `json:"mobile"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		gotMobile = body.Mobile

		w.WriteHeader(http.StatusOK)
	}))

	txID, err := client.SubmitChallenge(context.Background(), "+919876543210")
	if err != nil {
		t.Fatalf("SubmitChallenge failed: %v", err)
	}
	if txID != "+919876543210" {
		t.Fatalf("expected the mobile number back as transaction id, got %q", txID)
	}
	if gotPath != "/biometric-auth-request" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header %q", gotKey)
	}
	if gotMobile != "+919876543210" {
		t.Fatalf("unexpected mobile in payload %q", gotMobile)
	}
}

func TestSubmitChallengeNon200IsTransportError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := client.SubmitChallenge(context.Background(), "+15551234567")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestCheckStatusClassifiesResponse(t *testing.T) {
	var gotPath string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"detail":"geofence violation"}}`))
	}))

	outcome, err := client.CheckStatus(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if outcome != OutcomeInvalidGeofence {
		t.Fatalf("expected geofence outcome, got %v", outcome)
	}
	if gotPath != "/biometric-geo-fence-auth-results" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestCheckStatusPendingWhileUndecided(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"detail":"no result yet"}}`))
	}))

	outcome, err := client.CheckStatus(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if outcome != OutcomePending {
		t.Fatalf("expected pending, got %v", outcome)
	}
}

func TestCheckStatusTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	server.Close()

	if _, err := client.CheckStatus(context.Background(), "+15551234567"); err == nil {
		t.Fatal("expected a transport error against a closed server")
	}
}
