package archive

import (
	"bytes"
	"testing"

	"github.com/go-bjson/bjson"
)

func sampleBuffer(t *testing.T) []byte {
	t.Helper()
	b := bjson.NewBuilder()
	if err := b.BeginObject(); err != nil {
		t.Fatal(err)
	}
	if err := b.AddString("name"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddString("bjson"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddString("values"); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginArray(); err != nil {
		t.Fatal(err)
	}
	for i := int64(0); i < 64; i++ {
		if err := b.AddI64(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.EndArray(); err != nil {
		t.Fatal(err)
	}
	if err := b.EndObject(); err != nil {
		t.Fatal(err)
	}
	buf, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	buf := sampleBuffer(t)
	codecs := []Codec{CodecNone, CodecS2, CodecZstd}
	for _, codec := range codecs {
		env, err := Encode(buf, codec)
		if err != nil {
			t.Fatalf("Encode(codec=%d) error: %v", codec, err)
		}
		out, err := Decode(env)
		if err != nil {
			t.Fatalf("Decode(codec=%d) error: %v", codec, err)
		}
		if !bytes.Equal(out, buf) {
			t.Fatalf("codec=%d: round trip mismatch", codec)
		}

		v, err := bjson.FromOwnedBytes(out)
		if err != nil {
			t.Fatalf("codec=%d: decoded bytes did not parse as bjson: %v", codec, err)
		}
		if v.String() == "" {
			t.Fatalf("codec=%d: unexpected empty rendering", codec)
		}
	}
}

func TestEncodeUnknownCodec(t *testing.T) {
	if _, err := Encode([]byte("x"), Codec(99)); err == nil {
		t.Fatal("expected error for unknown codec")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an envelope")); err == nil {
		t.Fatal("expected error for non-envelope input")
	}
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	if _, err := Decode([]byte("BJ")); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestZstdSmallerForRepetitiveData(t *testing.T) {
	buf := sampleBuffer(t)
	none, err := Encode(buf, CodecNone)
	if err != nil {
		t.Fatal(err)
	}
	zstd, err := Encode(buf, CodecZstd)
	if err != nil {
		t.Fatal(err)
	}
	if len(zstd) >= len(none) {
		t.Fatalf("zstd envelope (%d bytes) should compress repetitive data smaller than uncompressed (%d bytes)", len(zstd), len(none))
	}
}
