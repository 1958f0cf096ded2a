package ivaltauth

import (
	"fmt"
	"strconv"
	"time"
)

// Session note keys. The names are part of the interop surface with the
// host flow engine and must not change.
const (
	// NoteAuthTransactionID holds the in-flight authentication
	// transaction identifier.
	NoteAuthTransactionID = "ivaltTransactionId"

	// NoteAuthPollCount holds the number of status polls performed for
	// the current authentication challenge.
	NoteAuthPollCount = "ivaltPollCount"

	// NoteAuthStartTime holds the authentication challenge start time
	// in unix milliseconds.
	NoteAuthStartTime = "ivaltAuthStartTime"

	// NoteEnrollTransactionID holds the in-flight enrollment
	// verification transaction identifier.
	NoteEnrollTransactionID = "ivaltVerificationTransactionId"

	// NoteEnrollStartTime holds the enrollment verification start time
	// in unix milliseconds.
	NoteEnrollStartTime = "ivaltVerificationStartTime"

	// NoteEnrollMobileNumber holds the pending enrollment mobile number.
	NoteEnrollMobileNumber = "ivaltMobileNumber"

	// NoteEnrollCountryCode holds the pending enrollment country code.
	NoteEnrollCountryCode = "ivaltCountryCode"
)

// authTransaction is the re-entrant state of one authentication
// challenge, round-tripped through session notes between invocations.
type authTransaction struct {
	transactionID string
	pollCount     int
	startedAt     time.Time
}

// loadAuthTransaction reads the challenge state back from notes. It
// returns nil when no challenge is in flight and ErrTransactionCorrupt
// when stored values do not parse.
func loadAuthTransaction(notes SessionNotes) (*authTransaction, error) {
	txID := notes.GetNote(NoteAuthTransactionID)
	if txID == "" {
		return nil, nil
	}
	tx := &authTransaction{transactionID: txID}
	if raw := notes.GetNote(NoteAuthPollCount); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: poll count %q", ErrTransactionCorrupt, raw)
		}
		tx.pollCount = count
	}
	if raw := notes.GetNote(NoteAuthStartTime); raw != "" {
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: start time %q", ErrTransactionCorrupt, raw)
		}
		tx.startedAt = time.UnixMilli(millis)
	}
	return tx, nil
}

func storeAuthTransaction(notes SessionNotes, tx *authTransaction) {
	notes.SetNote(NoteAuthTransactionID, tx.transactionID)
	notes.SetNote(NoteAuthPollCount, strconv.Itoa(tx.pollCount))
	notes.SetNote(NoteAuthStartTime, strconv.FormatInt(tx.startedAt.UnixMilli(), 10))
}

func clearAuthTransaction(notes SessionNotes) {
	notes.RemoveNote(NoteAuthTransactionID)
	notes.RemoveNote(NoteAuthPollCount)
	notes.RemoveNote(NoteAuthStartTime)
}

// enrollTransaction is the re-entrant state of one enrollment
// verification, including the unverified number awaiting persistence.
type enrollTransaction struct {
	transactionID string
	startedAt     time.Time
	mobile        MobileIdentity
}

func loadEnrollTransaction(notes SessionNotes) (*enrollTransaction, error) {
	txID := notes.GetNote(NoteEnrollTransactionID)
	if txID == "" {
		return nil, nil
	}
	tx := &enrollTransaction{
		transactionID: txID,
		mobile: MobileIdentity{
			MobileNumber: notes.GetNote(NoteEnrollMobileNumber),
			CountryCode:  notes.GetNote(NoteEnrollCountryCode),
		},
	}
	raw := notes.GetNote(NoteEnrollStartTime)
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: start time %q", ErrTransactionCorrupt, raw)
	}
	tx.startedAt = time.UnixMilli(millis)
	return tx, nil
}

func storeEnrollTransaction(notes SessionNotes, tx *enrollTransaction) {
	notes.SetNote(NoteEnrollTransactionID, tx.transactionID)
	notes.SetNote(NoteEnrollStartTime, strconv.FormatInt(tx.startedAt.UnixMilli(), 10))
	notes.SetNote(NoteEnrollMobileNumber, tx.mobile.MobileNumber)
	notes.SetNote(NoteEnrollCountryCode, tx.mobile.CountryCode)
}

func clearEnrollTransaction(notes SessionNotes) {
	notes.RemoveNote(NoteEnrollTransactionID)
	notes.RemoveNote(NoteEnrollStartTime)
	notes.RemoveNote(NoteEnrollMobileNumber)
	notes.RemoveNote(NoteEnrollCountryCode)
}
