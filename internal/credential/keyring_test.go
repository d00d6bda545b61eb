package credential

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
)

func useArrayKeyring(t *testing.T) {
	t.Helper()

	ring := keyring.NewArrayKeyring(nil)
	prev := open
	open = func() (keyring.Keyring, error) { return ring, nil }
	t.Cleanup(func() { open = prev })
}

func TestSetGetDelete(t *testing.T) {
	useArrayKeyring(t)

	if err := Set(APITokenKey, "secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := Get(APITokenKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "secret" {
		t.Fatalf("expected secret, got %q", got)
	}

	if err := Delete(APITokenKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := Get(APITokenKey); !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestLookupMissingKey(t *testing.T) {
	useArrayKeyring(t)

	value, ok, err := Lookup(MailPasswordKey("ada"))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected missing key, got %q ok=%v", value, ok)
	}
}

func TestMailPasswordKey(t *testing.T) {
	if got := MailPasswordKey("ada@example.com"); got != "imap-ada@example.com" {
		t.Fatalf("expected imap-ada@example.com, got %q", got)
	}
}
