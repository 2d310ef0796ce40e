package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Codec selects the compressor used for an envelope.
type Codec uint8

const (
	// CodecNone stores the buffer uncompressed.
	CodecNone Codec = iota
	// CodecS2 favors encode/decode speed (klauspost/compress/s2).
	CodecS2
	// CodecZstd favors compression ratio (klauspost/compress/zstd).
	CodecZstd
)

const (
	magic          = "BJS1"
	headerLen      = len(magic) + 1 + 4 // magic + codec byte + uncompressed length
	defaultZstdLvl = zstd.SpeedDefault
)

// Encode wraps buf in a small envelope compressed with codec and returns
// it. The envelope records the codec and the original length so Decode
// never needs to guess.
func Encode(buf []byte, codec Codec) ([]byte, error) {
	var payload []byte
	switch codec {
	case CodecNone:
		payload = buf
	case CodecS2:
		payload = s2.Encode(nil, buf)
	case CodecZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(defaultZstdLvl))
		if err != nil {
			return nil, fmt.Errorf("archive: creating zstd encoder: %w", err)
		}
		defer enc.Close()
		payload = enc.EncodeAll(buf, nil)
	default:
		return nil, fmt.Errorf("archive: unknown codec %d", codec)
	}

	out := make([]byte, 0, headerLen+len(payload))
	out = append(out, magic...)
	out = append(out, byte(codec))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(buf)))
	out = append(out, lenBuf[:]...)
	out = append(out, payload...)
	return out, nil
}

// Decode reverses Encode, returning the original buffer bytes exactly as
// passed to Encode.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerLen || string(data[:len(magic)]) != magic {
		return nil, fmt.Errorf("archive: not a bjson envelope")
	}
	codec := Codec(data[len(magic)])
	uncompressedLen := binary.LittleEndian.Uint32(data[len(magic)+1 : headerLen])
	payload := data[headerLen:]

	switch codec {
	case CodecNone:
		if uint32(len(payload)) != uncompressedLen {
			return nil, fmt.Errorf("archive: length mismatch in uncompressed envelope")
		}
		return payload, nil
	case CodecS2:
		dst := make([]byte, 0, uncompressedLen)
		out, err := s2.Decode(dst, payload)
		if err != nil {
			return nil, fmt.Errorf("archive: s2 decode: %w", err)
		}
		return out, nil
	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("archive: creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedLen))
		if err != nil {
			return nil, fmt.Errorf("archive: zstd decode: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("archive: unknown codec %d", codec)
	}
}
