package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/openwims/wims-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:     8,
		ArgonTime:         1,
		ArgonParallelism:  1,
		ArgonSaltLen:      8,
		ArgonKeyLen:       16,
		AllowLegacySHA256: true,
	}
}

func TestHashAndVerify(t *testing.T) {
	cfg := testPasswordConfig()

	encoded, err := HashPassword("longenough1", cfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("expected argon2id prefix, got %q", encoded)
	}

	ok, err := VerifyPassword("longenough1", encoded, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrongpassword", encoded, cfg)
	if err != nil {
		t.Fatalf("verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := testPasswordConfig()

	first, err := HashPassword("samepassword", cfg)
	if err != nil {
		t.Fatalf("hash first: %v", err)
	}
	second, err := HashPassword("samepassword", cfg)
	if err != nil {
		t.Fatalf("hash second: %v", err)
	}
	if first == second {
		t.Fatal("identical passwords must not share a digest")
	}
}

func TestVerifyLegacySHA256(t *testing.T) {
	cfg := testPasswordConfig()

	sum := sha256.Sum256([]byte("longenough1"))
	legacy := hex.EncodeToString(sum[:])

	if !IsLegacyDigest(legacy) {
		t.Fatal("expected hex sha256 to be detected as legacy")
	}
	if !NeedsRehash(legacy) {
		t.Fatal("legacy digest should request a rehash")
	}

	ok, err := VerifyPassword("longenough1", legacy, cfg)
	if err != nil {
		t.Fatalf("verify legacy: %v", err)
	}
	if !ok {
		t.Fatal("expected legacy digest to verify during migration window")
	}

	ok, err = VerifyPassword("wrongpassword", legacy, cfg)
	if err != nil {
		t.Fatalf("verify legacy mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected legacy mismatch to fail")
	}

	cfg.AllowLegacySHA256 = false
	ok, err = VerifyPassword("longenough1", legacy, cfg)
	if err != nil {
		t.Fatalf("verify legacy disabled: %v", err)
	}
	if ok {
		t.Fatal("legacy digests must not verify once the window closes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	cfg := testPasswordConfig()

	if _, err := VerifyPassword("whatever", "$argon2id$broken", cfg); err == nil {
		t.Fatal("expected malformed hash error")
	}
}
