package ivaltauth

import (
	"errors"
	"testing"
	"time"

	"github.com/vksharma7664/ivaltauth/session"
)

func TestAuthTransactionRoundTrip(t *testing.T) {
	notes := session.NewNotes()
	started := time.Now().Truncate(time.Millisecond)

	storeAuthTransaction(notes, &authTransaction{
		transactionID: "+919876543210",
		pollCount:     7,
		startedAt:     started,
	})

	// The note names are consumed by external flow templates.
	if got := notes.GetNote("ivaltTransactionId"); got != "+919876543210" {
		t.Fatalf("transaction id note = %q", got)
	}
	if got := notes.GetNote("ivaltPollCount"); got != "7" {
		t.Fatalf("poll count note = %q", got)
	}

	tx, err := loadAuthTransaction(notes)
	if err != nil {
		t.Fatalf("loadAuthTransaction failed: %v", err)
	}
	if tx == nil {
		t.Fatal("expected a transaction")
	}
	if tx.transactionID != "+919876543210" || tx.pollCount != 7 {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if !tx.startedAt.Equal(started) {
		t.Fatalf("startedAt = %v, want %v", tx.startedAt, started)
	}

	clearAuthTransaction(notes)
	tx, err = loadAuthTransaction(notes)
	if err != nil || tx != nil {
		t.Fatalf("expected empty state after clear, got %+v, %v", tx, err)
	}
}

func TestAuthTransactionAbsent(t *testing.T) {
	tx, err := loadAuthTransaction(session.NewNotes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx != nil {
		t.Fatalf("expected nil transaction, got %+v", tx)
	}
}

func TestAuthTransactionCorruptPollCount(t *testing.T) {
	notes := session.NewNotes()
	notes.SetNote(NoteAuthTransactionID, "+15551234567")
	notes.SetNote(NoteAuthPollCount, "not-a-number")

	_, err := loadAuthTransaction(notes)
	if !errors.Is(err, ErrTransactionCorrupt) {
		t.Fatalf("expected ErrTransactionCorrupt, got %v", err)
	}
}

func TestEnrollTransactionRoundTrip(t *testing.T) {
	notes := session.NewNotes()
	started := time.Now().Truncate(time.Millisecond)

	storeEnrollTransaction(notes, &enrollTransaction{
		transactionID: "+15551234567",
		startedAt:     started,
		mobile:        MobileIdentity{MobileNumber: "5551234567", CountryCode: "+1"},
	})

	if got := notes.GetNote("ivaltVerificationTransactionId"); got != "+15551234567" {
		t.Fatalf("transaction id note = %q", got)
	}
	if notes.GetNote("ivaltVerificationStartTime") == "" {
		t.Fatal("expected a start time note")
	}
	if got := notes.GetNote("ivaltMobileNumber"); got != "5551234567" {
		t.Fatalf("mobile note = %q", got)
	}
	if got := notes.GetNote("ivaltCountryCode"); got != "+1" {
		t.Fatalf("country code note = %q", got)
	}

	tx, err := loadEnrollTransaction(notes)
	if err != nil {
		t.Fatalf("loadEnrollTransaction failed: %v", err)
	}
	if tx.mobile.Full() != "+15551234567" {
		t.Fatalf("unexpected mobile %+v", tx.mobile)
	}
	if !tx.startedAt.Equal(started) {
		t.Fatalf("startedAt = %v, want %v", tx.startedAt, started)
	}

	clearEnrollTransaction(notes)
	if notes.Len() != 0 {
		t.Fatalf("expected all notes cleared, still have %d", notes.Len())
	}
}

func TestEnrollTransactionCorruptStartTime(t *testing.T) {
	notes := session.NewNotes()
	notes.SetNote(NoteEnrollTransactionID, "+15551234567")
	notes.SetNote(NoteEnrollStartTime, "yesterday")

	_, err := loadEnrollTransaction(notes)
	if !errors.Is(err, ErrTransactionCorrupt) {
		t.Fatalf("expected ErrTransactionCorrupt, got %v", err)
	}
}
