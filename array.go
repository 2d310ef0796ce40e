package bjson

// ArrayView is a borrowed, zero-copy view over a JSON array stored in buf.
// off is the array entry's offset: the byte position immediately past the
// trailer's size word (see the Array trailer layout in the package docs).
type ArrayView struct {
	buf []byte
	off uint32
}

func newArrayView(buf []byte, off uint32) ArrayView {
	return ArrayView{buf: buf, off: off}
}

// size returns the trailer's total byte length, inclusive of itself.
func (a ArrayView) size() uint32 {
	return nativeEndian.Uint32(a.buf[a.off-4 : a.off])
}

// Len returns the number of elements in the array.
func (a ArrayView) Len() int {
	return int(nativeEndian.Uint32(a.buf[a.off-8 : a.off-4]))
}

// firstElem returns the buffer offset of the first element's byte.
func (a ArrayView) firstElem() uint32 {
	return a.off - a.size()
}

func (a ArrayView) packedEntries() []byte {
	n := a.Len()
	end := a.off - 8
	start := end - 4*uint32(n)
	return a.buf[start:end]
}

func (a ArrayView) entryAt(i int) Entry {
	packed := a.packedEntries()
	return Entry(nativeEndian.Uint32(packed[i*4 : i*4+4]))
}

// Get returns the i-th element. It returns false if i is out of range.
func (a ArrayView) Get(i int) (ValueView, bool) {
	if i < 0 || i >= a.Len() {
		return ValueView{}, false
	}
	return ValueView{buf: a.buf, entry: a.entryAt(i)}, true
}

// ForEach calls fn for each element in index order, stopping early if fn
// returns false.
func (a ArrayView) ForEach(fn func(i int, v ValueView) bool) {
	n := a.Len()
	packed := a.packedEntries()
	for i := 0; i < n; i++ {
		e := Entry(nativeEndian.Uint32(packed[i*4 : i*4+4]))
		if !fn(i, ValueView{buf: a.buf, entry: e}) {
			return
		}
	}
}

// Values materializes every element as a slice. Prefer ForEach or Get in
// hot paths to avoid the allocation.
func (a ArrayView) Values() []ValueView {
	n := a.Len()
	out := make([]ValueView, 0, n)
	a.ForEach(func(_ int, v ValueView) bool {
		out = append(out, v)
		return true
	})
	return out
}
