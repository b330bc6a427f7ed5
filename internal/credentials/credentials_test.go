package credentials

import "testing"

func TestHashAndCompareRoundTrip(t *testing.T) {
	hasher := NewBcrypt()

	digest, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest must not equal the plaintext")
	}

	if !hasher.Compare("correct horse battery staple", digest) {
		t.Fatal("expected matching password to compare true")
	}
	if hasher.Compare("wrong password", digest) {
		t.Fatal("expected mismatching password to compare false")
	}
}
