package ivaltauth

import (
	"testing"
	"time"

	"github.com/vksharma7664/ivaltauth/assertion"
)

func testAssertionConfig() assertion.Config {
	return assertion.Config{
		TTL:           time.Minute,
		SigningMethod: assertion.MethodHS256,
		PrivateKey:    []byte("0123456789abcdef0123456789abcdef"),
		Issuer:        "ivaltauth-test",
	}
}

func verifyTestAssertion(t *testing.T, token string) *assertion.Claims {
	t.Helper()

	manager, err := assertion.NewManager(testAssertionConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	return claims
}
