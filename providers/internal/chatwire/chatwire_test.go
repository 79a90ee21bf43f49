package chatwire

import (
	"bytes"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0xFF}
	url := DataURL(raw, "image/png")

	data, mime, ok, err := ParseDataURL(url)
	if err != nil || !ok {
		t.Fatalf("ParseDataURL() ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(data, raw) {
		t.Error("payload mismatch")
	}
	if mime != "image/png" {
		t.Errorf("mime = %q", mime)
	}
}

func TestParseDataURLRejectsRemoteURL(t *testing.T) {
	_, _, ok, err := ParseDataURL("https://cdn.example.com/out.png")
	if ok || err != nil {
		t.Errorf("remote URL: ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestParseDataURLBadPayload(t *testing.T) {
	_, _, ok, err := ParseDataURL("data:image/png;base64,!!!not-base64!!!")
	if !ok {
		t.Fatal("prefix matched, ok must be true")
	}
	if err == nil {
		t.Fatal("undecodable payload must be an error")
	}
}

func TestDataURLDefaultsMIME(t *testing.T) {
	_, mime, _, err := ParseDataURL(DataURL([]byte{1}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png default", mime)
	}
}
