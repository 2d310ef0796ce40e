package bjson

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/klauspost/cpuid/v2"
)

// nativeEndian is the byte order entries and number-record payloads are
// encoded in. It is detected once, the way mebo's endian.CheckEndianness
// does it, rather than assumed from a build tag: the format is native-order
// only, and a runtime probe keeps that assumption honest on any arch this
// module is ported to.
var nativeEndian = detectNativeEndian()

func detectNativeEndian() binary.ByteOrder {
	var probe uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&probe))
	if b[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// hostInfo is populated once at init from cpuid and is purely diagnostic:
// no decode path in this package branches on CPU features today, since
// Entry/number-record decoding is not vectorized. It mirrors the capability
// probe simdjson-go gates its stage1 scanner selection on
// (simdjson_amd64.go vs simdjson_other.go), kept here as a ready hook for
// a future SIMD bulk-decode path.
var hostInfo = fmt.Sprintf("%s %s (features: avx2=%v sse4.2=%v)",
	cpuid.CPU.VendorString, cpuid.CPU.BrandName,
	cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.SSE42))

// HostInfo returns a human-readable description of the host CPU, for
// diagnostic logging.
func HostInfo() string { return hostInfo }
