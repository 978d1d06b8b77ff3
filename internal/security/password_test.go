package security

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(4)
	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must differ from the password")
	}
	if !hasher.Compare(hash, "correct horse") {
		t.Fatal("expected matching password to verify")
	}
	if hasher.Compare(hash, "wrong horse") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestPasswordHasherClampsCost(t *testing.T) {
	hasher := NewPasswordHasher(99)
	if _, err := hasher.Hash("pw"); err != nil {
		t.Fatalf("out-of-range cost must fall back to the default: %v", err)
	}
}
