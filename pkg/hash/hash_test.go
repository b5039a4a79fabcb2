package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known vector: sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := SHA256Hex("abc"); got != want {
		t.Errorf("SHA256Hex(abc) = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Deterministic(t *testing.T) {
	if SHA256Hex("192.168.1.1") != SHA256Hex("192.168.1.1") {
		t.Error("same input must hash identically")
	}
	if SHA256Hex("192.168.1.1") == SHA256Hex("192.168.1.2") {
		t.Error("different inputs should not collide")
	}
}

func TestShortHex(t *testing.T) {
	full := SHA256Hex("some-input")

	if got := ShortHex("some-input", 12); got != full[:12] {
		t.Errorf("ShortHex = %s, want %s", got, full[:12])
	}
	if len(ShortHex("some-input", 12)) != 12 {
		t.Error("ShortHex should return exactly n characters")
	}
}

func TestShortHex_OversizedN(t *testing.T) {
	full := SHA256Hex("x")
	if got := ShortHex("x", 1000); got != full {
		t.Errorf("oversized n should return the full hash, got %s", got)
	}
}
