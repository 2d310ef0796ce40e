package bjson

import "math"

// numKind is the 1-byte kind prefix of a number record. Its low nibble
// always equals the record's payload length in bytes.
type numKind byte

const (
	numKindZero numKind = 0x00
	numKindI8   numKind = 0x01
	numKindI16  numKind = 0x02
	numKindI32  numKind = 0x04
	numKindI64  numKind = 0x08
	numKindU64  numKind = 0x18
	numKindF64  numKind = 0x28
)

func (k numKind) payloadLen() int { return int(k & 0x0F) }

// appendNumberI64 appends the narrowest number record that losslessly
// represents v and returns the updated buffer along with the offset of the
// record's kind byte.
func appendNumberI64(buf []byte, v int64) ([]byte, uint32) {
	off := uint32(len(buf))
	switch {
	case v == 0:
		buf = append(buf, byte(numKindZero))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		buf = append(buf, byte(numKindI8), byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		buf = append(buf, byte(numKindI16))
		buf = appendUint16(buf, uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		buf = append(buf, byte(numKindI32))
		buf = appendUint32(buf, uint32(int32(v)))
	default:
		buf = append(buf, byte(numKindI64))
		buf = appendUint64(buf, uint64(v))
	}
	return buf, off
}

// appendNumberU64 appends the narrowest number record that losslessly
// represents v. Values within the positive i64 range use the signed kinds;
// values strictly greater than i64::MAX use kind 0x18.
func appendNumberU64(buf []byte, v uint64) ([]byte, uint32) {
	if v <= math.MaxInt64 {
		return appendNumberI64(buf, int64(v))
	}
	off := uint32(len(buf))
	buf = append(buf, byte(numKindU64))
	buf = appendUint64(buf, v)
	return buf, off
}

// appendNumberF64 appends an f64 number record. v must be finite; the
// caller (Builder) is responsible for surfacing InvalidNumberError for
// NaN/Inf before calling this.
func appendNumberF64(buf []byte, v float64) ([]byte, uint32) {
	off := uint32(len(buf))
	buf = append(buf, byte(numKindF64))
	buf = appendUint64(buf, math.Float64bits(v))
	return buf, off
}

func appendUint16(buf []byte, v uint16) []byte {
	b := make([]byte, 2)
	nativeEndian.PutUint16(b, v)
	return append(buf, b...)
}

func appendUint32(buf []byte, v uint32) []byte {
	b := make([]byte, 4)
	nativeEndian.PutUint32(b, v)
	return append(buf, b...)
}

func appendUint64(buf []byte, v uint64) []byte {
	b := make([]byte, 8)
	nativeEndian.PutUint64(b, v)
	return append(buf, b...)
}

// NumberView is a borrowed view over a number record: the kind byte plus
// its payload.
type NumberView struct {
	data []byte
}

// numberViewAt reads the number record starting at byte offset off in buf.
func numberViewAt(buf []byte, off uint32) NumberView {
	k := numKind(buf[off])
	n := 1 + k.payloadLen()
	return NumberView{data: buf[off : int(off)+n]}
}

// Kind reports the record's kind byte.
func (n NumberView) Kind() byte { return byte(n.data[0]) }

// IsFloat reports whether the record was stored as an f64.
func (n NumberView) IsFloat() bool { return numKind(n.data[0]) == numKindF64 }

// IsUnsigned reports whether the record was stored as a u64 wider than
// i64::MAX.
func (n NumberView) IsUnsigned() bool { return numKind(n.data[0]) == numKindU64 }

func (n NumberView) payload() []byte { return n.data[1:] }

// AsI64 returns the record's value as int64. It succeeds for any signed
// kind, for a u64-kind record whose value is <= i64::MAX, and for an
// f64-kind record holding an integral value that fits in an int64.
func (n NumberView) AsI64() (int64, bool) {
	switch numKind(n.data[0]) {
	case numKindZero:
		return 0, true
	case numKindI8:
		return int64(int8(n.payload()[0])), true
	case numKindI16:
		return int64(int16(nativeEndian.Uint16(n.payload()))), true
	case numKindI32:
		return int64(int32(nativeEndian.Uint32(n.payload()))), true
	case numKindI64:
		return int64(nativeEndian.Uint64(n.payload())), true
	case numKindU64:
		u := nativeEndian.Uint64(n.payload())
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case numKindF64:
		f := math.Float64frombits(nativeEndian.Uint64(n.payload()))
		i := int64(f)
		if float64(i) == f {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsU64 returns the record's value as uint64. It succeeds for a u64-kind
// record, a non-negative signed record, or an f64-kind record holding a
// non-negative integral value that fits in a uint64.
func (n NumberView) AsU64() (uint64, bool) {
	switch numKind(n.data[0]) {
	case numKindU64:
		return nativeEndian.Uint64(n.payload()), true
	case numKindF64:
		f := math.Float64frombits(nativeEndian.Uint64(n.payload()))
		if f < 0 {
			return 0, false
		}
		u := uint64(f)
		if float64(u) == f {
			return u, true
		}
		return 0, false
	default:
		i, ok := n.AsI64()
		if !ok || i < 0 {
			return 0, false
		}
		return uint64(i), true
	}
}

// AsF64 returns the record's value as float64, widening any integer kind.
// Out-of-range widenings (magnitudes that cannot round-trip through f64)
// report absent rather than a lossy approximation.
func (n NumberView) AsF64() (float64, bool) {
	switch numKind(n.data[0]) {
	case numKindF64:
		return math.Float64frombits(nativeEndian.Uint64(n.payload())), true
	case numKindU64:
		u := nativeEndian.Uint64(n.payload())
		f := float64(u)
		if uint64(f) == u {
			return f, true
		}
		return 0, false
	default:
		i, ok := n.AsI64()
		if !ok {
			return 0, false
		}
		f := float64(i)
		if int64(f) == i {
			return f, true
		}
		return 0, false
	}
}

// Equal reports whether n and o represent the same mathematical value,
// independent of encoded kind (so 1 and 1.0 compare equal). Two
// integer-kind records are compared exactly, without going through a
// float64 widening that could lose precision above 2^53; float widening
// is only used when at least one side is float-kind.
func (n NumberView) Equal(o NumberView) bool {
	if !n.IsFloat() && !o.IsFloat() {
		return n.equalInteger(o)
	}
	fn, nok := n.AsF64()
	fo, ook := o.AsF64()
	return nok && ook && fn == fo
}

// equalInteger compares two integer-kind records (signed or wide u64)
// exactly.
func (n NumberView) equalInteger(o NumberView) bool {
	if ni, niok := n.AsI64(); niok {
		oi, ook := o.AsI64()
		return ook && ni == oi
	}
	nu, nuok := n.AsU64()
	ou, ouok := o.AsU64()
	return nuok && ouok && nu == ou
}

// Compare orders n and o by mathematical value. Two integer-kind records
// are compared exactly; float widening is only used when at least one
// side is float-kind.
func (n NumberView) Compare(o NumberView) int {
	if !n.IsFloat() && !o.IsFloat() {
		return n.compareInteger(o)
	}
	widen := func(x NumberView) float64 {
		if f, ok := x.AsF64(); ok {
			return f
		}
		// An integer beyond f64's exact range rounds to the nearest f64.
		if u, ok := x.AsU64(); ok {
			return float64(u)
		}
		i, _ := x.AsI64()
		return float64(i)
	}
	nf, of := widen(n), widen(o)
	switch {
	case nf < of:
		return -1
	case nf > of:
		return 1
	default:
		return 0
	}
}

// compareInteger orders two integer-kind records exactly. AsI64 fails for
// an integer-kind record only when it is a wide u64 (kind 0x18, always
// strictly greater than math.MaxInt64), so a side that fails AsI64 is
// always greater than a side that succeeds.
func (n NumberView) compareInteger(o NumberView) int {
	ni, niok := n.AsI64()
	oi, oiok := o.AsI64()
	switch {
	case niok && oiok:
		switch {
		case ni < oi:
			return -1
		case ni > oi:
			return 1
		default:
			return 0
		}
	case !niok && !oiok:
		nu, _ := n.AsU64()
		ou, _ := o.AsU64()
		switch {
		case nu < ou:
			return -1
		case nu > ou:
			return 1
		default:
			return 0
		}
	case !niok:
		return 1
	default:
		return -1
	}
}
