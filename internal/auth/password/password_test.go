package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := Compare(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("Compare rejected the right password: %v", err)
	}
	if err := Compare(hash, "wrong password"); err == nil {
		t.Fatalf("Compare accepted a wrong password")
	}
}

func TestHash_ProducesUniqueSalts(t *testing.T) {
	first, err := Hash("shared secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := Hash("shared secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}
