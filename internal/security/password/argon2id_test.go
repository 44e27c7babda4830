package password

import (
	"strings"
	"testing"
)

func TestHash_NeverEqualsPlaintext(t *testing.T) {
	h, err := Hash(Default, "P4ssword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "P4ssword" {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(h, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC prefix: %q", h)
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash(Default, "P4ssword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash(Default, "P4ssword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same plaintext must differ (random salt)")
	}
	if !Verify("P4ssword", h1) || !Verify("P4ssword", h2) {
		t.Fatal("both hashes must verify against the same plaintext")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h, err := Hash(Default, "P4ssword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify("p4ssword", h) {
		t.Fatal("wrong plaintext must not verify")
	}
}

func TestVerify_MalformedPHC(t *testing.T) {
	malformed := []string{
		"",
		"P4ssword",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$ZGs",
		"$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$ZGs",
		"$argon2id$v=19$m=65536,t=3,p=1$!!!$ZGs",
	}
	for _, phc := range malformed {
		if Verify("P4ssword", phc) {
			t.Fatalf("expected verify to fail for %q", phc)
		}
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	if _, err := Hash(Default, ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
