package ivaltauth

import (
	"context"
	"errors"
	"testing"

	"github.com/vksharma7664/ivaltauth/credstore"
	"github.com/vksharma7664/ivaltauth/ivalt"
)

func TestBuildRequiresCredentialStore(t *testing.T) {
	_, err := New().WithVerifier(&scriptedVerifier{}).Build()
	if err == nil {
		t.Fatal("expected an error without a credential store")
	}
}

func TestBuildRequiresAPIKeyWithoutCustomVerifier(t *testing.T) {
	_, err := New().WithCredentialStore(credstore.NewMemory()).Build()
	if !errors.Is(err, ivalt.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestBuildWithAPIKeyUsesHTTPVerifier(t *testing.T) {
	engine, err := New().
		WithAPIKey("k").
		WithCredentialStore(credstore.NewMemory()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, ok := engine.verifier.(*ivalt.Client); !ok {
		t.Fatalf("expected the built-in client, got %T", engine.verifier)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithVerifier(&scriptedVerifier{}).WithCredentialStore(credstore.NewMemory())

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestEngineNotReadyGuards(t *testing.T) {
	var engine *Engine

	if _, err := engine.Authenticate(context.Background(), AuthRequest{UserID: "u1"}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := engine.Enroll(context.Background(), EnrollRequest{UserID: "u1"}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}

	// Nil engines are safe to close and inspect.
	engine.Close()
	if engine.AuditDropped() != 0 {
		t.Fatal("nil engine cannot drop events")
	}
}
