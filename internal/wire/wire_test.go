package wire

import (
	"bytes"
	"testing"
	"time"
)

func TestEntryRoundTrip(t *testing.T) {
	exp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixNano()
	payload := []byte(`{"pid":"b006q2x0"}`)

	b := EncodeEntry(exp, payload)
	gotExp, gotPayload, err := DecodeEntry(b)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if gotExp != exp {
		t.Fatalf("expiresAt: got %d want %d", gotExp, exp)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("payload mismatch: got %q", gotPayload)
	}
}

func TestEntryZeroExpiryMeansNeverStale(t *testing.T) {
	b := EncodeEntry(0, []byte("x"))
	exp, _, err := DecodeEntry(b)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if exp != 0 {
		t.Fatalf("zero expiry should survive the frame, got %d", exp)
	}
}

func TestEntryEmptyPayload(t *testing.T) {
	b := EncodeEntry(42, nil)
	exp, payload, err := DecodeEntry(b)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if exp != 42 || len(payload) != 0 {
		t.Fatalf("got exp=%d payload=%q", exp, payload)
	}
}

// DecodeEntry must reject trailing bytes (strict framing).
func TestDecodeEntryRejectsTrailing(t *testing.T) {
	b := EncodeEntry(7, []byte("x"))
	b = append(b, 0xDE, 0xAD) // trailing junk
	if _, _, err := DecodeEntry(b); err == nil {
		t.Fatalf("DecodeEntry should reject trailing bytes")
	}
}

func TestDecodeEntryRejectsCorruptFrames(t *testing.T) {
	valid := EncodeEntry(7, []byte("x"))

	cases := map[string][]byte{
		"empty":       nil,
		"short":       valid[:hdrLen-1],
		"bad_magic":   append([]byte("XXXX"), valid[4:]...),
		"bad_version": mutate(valid, 4, 0xFF),
		"bad_kind":    mutate(valid, 5, 0xFF),
		"random":      []byte("not-wire-format"),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := DecodeEntry(b); err == nil {
				t.Fatalf("DecodeEntry should fail")
			}
		})
	}
}

func mutate(b []byte, i int, v byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[i] = v
	return out
}
