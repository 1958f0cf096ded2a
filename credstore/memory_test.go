package credstore

import (
	"context"
	"testing"
)

func TestMemoryCreateAndFind(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	cred, err := store.Create(ctx, "u1", MobileIdentity{MobileNumber: "9876543210", CountryCode: "+91"}, "iVALT Authenticator")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cred.ID == "" {
		t.Fatal("expected a generated id")
	}
	if cred.Mobile.Full() != "+919876543210" {
		t.Fatalf("mobile = %q", cred.Mobile.Full())
	}

	found, err := store.FindAny(ctx, "u1")
	if err != nil {
		t.Fatalf("FindAny failed: %v", err)
	}
	if found == nil || found.ID != cred.ID {
		t.Fatalf("unexpected credential %+v", found)
	}
}

func TestMemoryFindAnyAbsent(t *testing.T) {
	store := NewMemory()

	found, err := store.FindAny(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("FindAny failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for unknown user, got %+v", found)
	}
}

func TestMemoryDeleteAll(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, "u1", MobileIdentity{MobileNumber: "5551234567", CountryCode: "+1"}, "label"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := store.DeleteAll(ctx, "u1"); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if store.Count("u1") != 0 {
		t.Fatalf("expected no credentials, got %d", store.Count("u1"))
	}

	// Deleting an empty user is not an error.
	if err := store.DeleteAll(ctx, "u1"); err != nil {
		t.Fatalf("repeat DeleteAll failed: %v", err)
	}
}

func TestMobileIdentityCodecRoundTrip(t *testing.T) {
	in := MobileIdentity{MobileNumber: "9876543210", CountryCode: "+91"}

	data, err := EncodeMobile(in)
	if err != nil {
		t.Fatalf("EncodeMobile failed: %v", err)
	}

	out, err := DecodeMobile(data)
	if err != nil {
		t.Fatalf("DecodeMobile failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestDecodeMobileRejectsGarbage(t *testing.T) {
	if _, err := DecodeMobile([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMobileIdentityValid(t *testing.T) {
	if (MobileIdentity{MobileNumber: "5551234567"}).Valid() {
		t.Fatal("missing country code must not be valid")
	}
	if (MobileIdentity{CountryCode: "+1"}).Valid() {
		t.Fatal("missing number must not be valid")
	}
	if !(MobileIdentity{MobileNumber: "5551234567", CountryCode: "+1"}).Valid() {
		t.Fatal("complete identity must be valid")
	}
}
