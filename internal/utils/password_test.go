package utils

import (
	"encoding/base64"
	"testing"
)

func TestHashPasswordVerifiesOwnPlaintext(t *testing.T) {
	cases := []string{"secret1", "correct horse battery staple", "päss wörd", "1234"}
	for _, plain := range cases {
		encoded, err := HashPassword(plain)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", plain, err)
		}
		ok, err := VerifyPassword(encoded, plain)
		if err != nil {
			t.Fatalf("VerifyPassword error: %v", err)
		}
		if !ok {
			t.Fatalf("hash of %q did not verify against its own plaintext", plain)
		}
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	encoded, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	ok, err := VerifyPassword(encoded, "secret2")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical; salt is not random")
	}
	for _, encoded := range []string{first, second} {
		if ok, _ := VerifyPassword(encoded, "secret1"); !ok {
			t.Fatal("freshly salted hash did not verify")
		}
	}
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	for _, plain := range []string{"", "   ", "\t\n"} {
		if _, err := HashPassword(plain); err != ErrEmptyPassword {
			t.Fatalf("HashPassword(%q): expected ErrEmptyPassword, got %v", plain, err)
		}
	}
}

func TestVerifyPasswordRejectsUnknownVersion(t *testing.T) {
	encoded, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	raw[0] = 0x02
	if _, err := VerifyPassword(base64.StdEncoding.EncodeToString(raw), "secret1"); err != ErrHashFormat {
		t.Fatalf("expected ErrHashFormat for unknown version byte, got %v", err)
	}
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	if _, err := VerifyPassword("not base64!!", "secret1"); err != ErrHashFormat {
		t.Fatalf("expected ErrHashFormat for undecodable hash, got %v", err)
	}
	if _, err := VerifyPassword(base64.StdEncoding.EncodeToString([]byte{0x01, 0x02}), "secret1"); err != ErrHashFormat {
		t.Fatalf("expected ErrHashFormat for truncated hash, got %v", err)
	}
}
