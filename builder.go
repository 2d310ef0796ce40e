package bjson

import "math"

// BuilderOption configures a Builder at construction time, in the style of
// simdjson-go's ParserOption.
type BuilderOption func(*Builder)

// WithInitialCapacity hints the initial size of the builder's backing
// buffer, to cut down on reallocation for documents of a known rough size
// (mirroring mebo/internal/pool's BlobBufferDefaultSize sizing knob).
func WithInitialCapacity(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.buf = make([]byte, 0, n)
		}
	}
}

type scopeKind uint8

const (
	scopeArray scopeKind = iota
	scopeObject
)

// pair is a collected (key-entry, value-entry) binding inside an open
// object scope, gathered in insertion order and sorted at end_object.
type pair struct {
	keyOff uint32 // offset of the key's string record
	value  Entry
}

type scope struct {
	kind  scopeKind
	start uint32 // buffer offset of the first element byte

	arrEntries []Entry // scopeArray only
	objPairs   []pair  // scopeObject only

	pendingKeyOff uint32
	awaitingValue bool // true after a key has been read, before its value
}

// Builder is a streaming state machine that consumes JSON events and emits
// a well-formed buffer. It is single-use: call Finish to obtain the owned
// buffer, after which the Builder must not be reused.
type Builder struct {
	buf    []byte
	scopes []*scope
	rooted bool
	done   bool
}

// NewBuilder returns a ready-to-use Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{buf: make([]byte, 0, 256)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) top() *scope {
	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1]
}

// checkValuePosition reports a protocol violation if the builder is
// currently inside an object scope awaiting a key, since only AddString
// may satisfy that position.
func (b *Builder) checkValuePosition() error {
	if b.done {
		return &ProtocolError{Msg: "builder already finished"}
	}
	if s := b.top(); s != nil && s.kind == scopeObject && !s.awaitingValue {
		return &ProtocolError{Msg: "expected a string key in object scope"}
	}
	if s := b.top(); s == nil && b.rooted {
		return &ProtocolError{Msg: "a root value has already been written"}
	}
	return nil
}

// emitValue records e as the value at the current position: into the
// enclosing array/object scope, or as the buffer's trailing root entry if
// no scope is open.
func (b *Builder) emitValue(e Entry) {
	s := b.top()
	if s == nil {
		b.buf = appendUint32(b.buf, uint32(e))
		b.rooted = true
		return
	}
	switch s.kind {
	case scopeArray:
		s.arrEntries = append(s.arrEntries, e)
	case scopeObject:
		s.objPairs = append(s.objPairs, pair{keyOff: s.pendingKeyOff, value: e})
		s.awaitingValue = false
	}
}

// AddNull writes a Null entry at the current value position.
func (b *Builder) AddNull() error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	b.emitValue(EntryNull())
	return nil
}

// AddBool writes a True/False entry at the current value position.
func (b *Builder) AddBool(v bool) error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	b.emitValue(EntryBool(v))
	return nil
}

// AddI64 appends the narrowest legal integer number record and an entry
// referencing it.
func (b *Builder) AddI64(v int64) error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	var off uint32
	b.buf, off = appendNumberI64(b.buf, v)
	b.emitValue(EntryNumber(off))
	return nil
}

// AddU64 appends the narrowest legal integer number record and an entry
// referencing it. Values within the positive i64 range use a signed kind;
// values strictly greater than i64::MAX use kind 0x18.
func (b *Builder) AddU64(v uint64) error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	var off uint32
	b.buf, off = appendNumberU64(b.buf, v)
	b.emitValue(EntryNumber(off))
	return nil
}

// AddF64 appends an f64 number record and an entry referencing it. NaN and
// ±Inf fail with InvalidNumberError.
func (b *Builder) AddF64(v float64) error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidNumberError{Value: v}
	}
	var off uint32
	b.buf, off = appendNumberF64(b.buf, v)
	b.emitValue(EntryNumber(off))
	return nil
}

// AddString writes s. Inside an object scope awaiting a key, it is
// interpreted as the key; otherwise it is a string value.
func (b *Builder) AddString(s string) error {
	if b.done {
		return &ProtocolError{Msg: "builder already finished"}
	}
	if top := b.top(); top != nil && top.kind == scopeObject && !top.awaitingValue {
		var off uint32
		b.buf, off = appendStringRecord(b.buf, s)
		top.pendingKeyOff = off
		top.awaitingValue = true
		return nil
	}
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	var off uint32
	b.buf, off = appendStringRecord(b.buf, s)
	b.emitValue(EntryString(off))
	return nil
}

// BeginArray opens a new array scope at the current value position.
func (b *Builder) BeginArray() error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	b.scopes = append(b.scopes, &scope{kind: scopeArray, start: uint32(len(b.buf))})
	return nil
}

// EndArray closes the innermost array scope: it writes the packed entry
// array, count and size, then emits the parent Array entry.
func (b *Builder) EndArray() error {
	s := b.top()
	if s == nil || s.kind != scopeArray {
		return &ProtocolError{Msg: "end_array outside an array scope"}
	}
	b.scopes = b.scopes[:len(b.scopes)-1]

	first := s.start
	for _, e := range s.arrEntries {
		b.buf = appendUint32(b.buf, uint32(e))
	}
	b.buf = appendUint32(b.buf, uint32(len(s.arrEntries)))
	size := uint32(len(b.buf)) + 4 - first
	b.buf = appendUint32(b.buf, size)

	b.emitValue(EntryArray(uint32(len(b.buf))))
	return nil
}

// BeginObject opens a new object scope at the current value position.
func (b *Builder) BeginObject() error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	b.scopes = append(b.scopes, &scope{kind: scopeObject, start: uint32(len(b.buf))})
	return nil
}

// EndObject closes the innermost object scope. It sorts the collected
// pairs by the byte-wise comparison of their key content, keeping the
// later insertion on duplicate keys, then writes the packed key/value
// entry array, count and size, and emits the parent Object entry.
func (b *Builder) EndObject() error {
	s := b.top()
	if s == nil || s.kind != scopeObject {
		return &ProtocolError{Msg: "end_object outside an object scope"}
	}
	if s.awaitingValue {
		return &ProtocolError{Msg: "end_object with a key missing its value"}
	}
	b.scopes = b.scopes[:len(b.scopes)-1]

	sorted := sortObjectPairs(b.buf, s.objPairs)

	first := s.start
	for _, p := range sorted {
		b.buf = appendUint32(b.buf, uint32(EntryString(p.keyOff)))
		b.buf = appendUint32(b.buf, uint32(p.value))
	}
	b.buf = appendUint32(b.buf, uint32(len(sorted)))
	size := uint32(len(b.buf)) + 4 - first
	b.buf = appendUint32(b.buf, size)

	b.emitValue(EntryObject(uint32(len(b.buf))))
	return nil
}

// AddValue copies a sub-value from a foreign view by recursively
// re-emitting its entries, string records and number records into this
// builder's buffer. This cannot be a raw byte splice: entries are offsets
// into their own buffer, and the destination buffer's length (and
// therefore every relocated offset) differs from the source's the moment
// anything else is appended.
func (b *Builder) AddValue(v ValueView) error {
	if err := b.checkValuePosition(); err != nil {
		return err
	}
	e, err := b.spliceValue(v)
	if err != nil {
		return err
	}
	b.emitValue(e)
	return nil
}

func (b *Builder) spliceValue(v ValueView) (Entry, error) {
	switch v.entry.Tag() {
	case TagNull:
		return EntryNull(), nil
	case TagTrue:
		return EntryTrue(), nil
	case TagFalse:
		return EntryFalse(), nil
	case TagString:
		s, _ := v.AsStr()
		var off uint32
		b.buf, off = appendStringRecord(b.buf, s)
		return EntryString(off), nil
	case TagNumber:
		n, _ := v.number()
		off := uint32(len(b.buf))
		b.buf = append(b.buf, n.data...)
		return EntryNumber(off), nil
	case TagArray:
		a, _ := v.AsArray()
		first := uint32(len(b.buf))
		entries := make([]Entry, 0, a.Len())
		for i := 0; i < a.Len(); i++ {
			elem, _ := a.Get(i)
			e, err := b.spliceValue(elem)
			if err != nil {
				return 0, err
			}
			entries = append(entries, e)
		}
		for _, e := range entries {
			b.buf = appendUint32(b.buf, uint32(e))
		}
		b.buf = appendUint32(b.buf, uint32(len(entries)))
		size := uint32(len(b.buf)) + 4 - first
		b.buf = appendUint32(b.buf, size)
		return EntryArray(uint32(len(b.buf))), nil
	case TagObject:
		o, _ := v.AsObject()
		first := uint32(len(b.buf))
		type kv struct {
			keyOff uint32
			value  Entry
		}
		kvs := make([]kv, 0, o.Len())
		for i := 0; i < o.Len(); i++ {
			var koff uint32
			b.buf, koff = appendStringRecord(b.buf, string(o.keyAt(i)))
			e, err := b.spliceValue(ValueView{buf: o.buf, entry: o.valueEntryAt(i)})
			if err != nil {
				return 0, err
			}
			kvs = append(kvs, kv{keyOff: koff, value: e})
		}
		for _, p := range kvs {
			b.buf = appendUint32(b.buf, uint32(EntryString(p.keyOff)))
			b.buf = appendUint32(b.buf, uint32(p.value))
		}
		b.buf = appendUint32(b.buf, uint32(len(kvs)))
		size := uint32(len(b.buf)) + 4 - first
		b.buf = appendUint32(b.buf, size)
		return EntryObject(uint32(len(b.buf))), nil
	default:
		return 0, &ParseError{Msg: "splicing value with unknown tag"}
	}
}

// Finish requires the scope stack to be empty and exactly one root value
// to have been written, and returns the owned buffer. The Builder must not
// be reused afterward.
func (b *Builder) Finish() ([]byte, error) {
	if len(b.scopes) != 0 {
		return nil, &ProtocolError{Msg: "finish called with an open scope"}
	}
	if !b.rooted {
		return nil, &ProtocolError{Msg: "finish called before any value was written"}
	}
	if b.done {
		return nil, &ProtocolError{Msg: "builder already finished"}
	}
	b.done = true
	return b.buf, nil
}

// sortObjectPairs sorts pairs by the byte content of their key (read from
// buf), keeping the later insertion when two pairs share a key.
func sortObjectPairs(buf []byte, pairs []pair) []pair {
	// Stable sort by key so that, among equal keys, the later original
	// insertion ends up last; then drop all but the last of each run.
	sorted := make([]pair, len(pairs))
	copy(sorted, pairs)
	insertionSortPairsByKey(buf, sorted)

	out := sorted[:0]
	for i := 0; i < len(sorted); i++ {
		if i+1 < len(sorted) && bytesEqual(keyBytes(buf, sorted[i]), keyBytes(buf, sorted[i+1])) {
			continue // a later pair with the same key follows; it wins
		}
		out = append(out, sorted[i])
	}
	return out
}

func keyBytes(buf []byte, p pair) []byte {
	return stringBytesAt(buf, p.keyOff)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// insertionSortPairsByKey performs a stable sort of pairs by key bytes.
// Object sizes in practice are small, so insertion sort's stability and
// simplicity win over an unstable O(n log n) sort that would need a
// separate tie-breaker to preserve last-write-wins semantics.
func insertionSortPairsByKey(buf []byte, pairs []pair) {
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && compareKeyBytes(buf, pairs[j-1], pairs[j]) > 0 {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
			j--
		}
	}
}

func compareKeyBytes(buf []byte, a, b pair) int {
	ab, bb := keyBytes(buf, a), keyBytes(buf, b)
	n := len(ab)
	if len(bb) < n {
		n = len(bb)
	}
	for i := 0; i < n; i++ {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ab) < len(bb):
		return -1
	case len(ab) > len(bb):
		return 1
	default:
		return 0
	}
}
