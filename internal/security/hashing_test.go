package security

import (
	"errors"
	"strings"
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if strings.Contains(hash, "secret123") {
		t.Fatal("digest must not contain the plaintext")
	}
	if !h.Compare(hash, "secret123") {
		t.Fatal("Compare: want match")
	}
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(4)
	hash, _ := h.Hash("secret123")
	if h.Compare(hash, "wrong") {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHasher_SaltedDigests(t *testing.T) {
	h := NewHasher(4)
	a, _ := h.Hash("secret123")
	b, _ := h.Hash("secret123")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
	if !h.Compare(a, "secret123") || !h.Compare(b, "secret123") {
		t.Error("both digests should verify")
	}
}

func TestHasher_CompareMalformedDigest(t *testing.T) {
	h := NewHasher(4)
	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$10$short"} {
		if h.Compare(digest, "secret123") {
			t.Errorf("Compare(%q) = true, want false", digest)
		}
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher(4)
	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Hash empty: want ErrEmptyPassword, got %v", err)
	}
}

func TestHasher_CompareAcrossCosts(t *testing.T) {
	hash, _ := NewHasher(5).Hash("secret123")
	if !NewHasher(4).Compare(hash, "secret123") {
		t.Error("Compare should use the cost embedded in the digest")
	}
}

func TestHasher_Cost(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost != DefaultBcryptCost {
		t.Errorf("zero cost should select default, got %d", h0.Cost)
	}
	if NewHasher(2).Cost != 4 {
		t.Errorf("cost below minimum should clamp to 4, got %d", NewHasher(2).Cost)
	}
	if NewHasher(40).Cost != 31 {
		t.Errorf("cost above maximum should clamp to 31, got %d", NewHasher(40).Cost)
	}
}
