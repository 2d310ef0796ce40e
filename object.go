package bjson

import "bytes"

// ObjectView is a borrowed, zero-copy view over a JSON object stored in
// buf. off is the object entry's offset: the byte position immediately
// past the trailer's size word.
//
// Key entries are packed ascending by the byte-lexicographic order of
// their key content (the canonical object order), so Get is a binary
// search and iteration is already in sorted order.
type ObjectView struct {
	buf []byte
	off uint32
}

func newObjectView(buf []byte, off uint32) ObjectView {
	return ObjectView{buf: buf, off: off}
}

func (o ObjectView) size() uint32 {
	return nativeEndian.Uint32(o.buf[o.off-4 : o.off])
}

// Len returns the number of key/value pairs in the object.
func (o ObjectView) Len() int {
	return int(nativeEndian.Uint32(o.buf[o.off-8 : o.off-4]))
}

func (o ObjectView) firstElem() uint32 {
	return o.off - o.size()
}

func (o ObjectView) packedEntries() []byte {
	n := o.Len()
	end := o.off - 8
	start := end - 8*uint32(n)
	return o.buf[start:end]
}

func (o ObjectView) keyEntryAt(i int) Entry {
	packed := o.packedEntries()
	return Entry(nativeEndian.Uint32(packed[i*8 : i*8+4]))
}

func (o ObjectView) valueEntryAt(i int) Entry {
	packed := o.packedEntries()
	return Entry(nativeEndian.Uint32(packed[i*8+4 : i*8+8]))
}

func (o ObjectView) keyAt(i int) []byte {
	return stringBytesAt(o.buf, o.keyEntryAt(i).Offset())
}

// Get looks up key by binary search over the sorted key-entry array.
func (o ObjectView) Get(key string) (ValueView, bool) {
	n := o.Len()
	kb := []byte(key)
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		cmp := bytes.Compare(o.keyAt(mid), kb)
		switch {
		case cmp == 0:
			return ValueView{buf: o.buf, entry: o.valueEntryAt(mid)}, true
		case cmp < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return ValueView{}, false
}

// ForEach calls fn for each key/value pair in ascending key order,
// stopping early if fn returns false.
func (o ObjectView) ForEach(fn func(key string, v ValueView) bool) {
	n := o.Len()
	for i := 0; i < n; i++ {
		k := string(o.keyAt(i))
		v := ValueView{buf: o.buf, entry: o.valueEntryAt(i)}
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns every key in ascending order.
func (o ObjectView) Keys() []string {
	n := o.Len()
	out := make([]string, 0, n)
	o.ForEach(func(k string, _ ValueView) bool {
		out = append(out, k)
		return true
	})
	return out
}
