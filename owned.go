package bjson

// Value is a thin, exclusively-owned wrapper around a complete buffer. It
// offers the same read accessors as ValueView, plus the two supported
// mutations: ArrayPush and ObjectInsert, each an O(n) rewrite of the
// buffer.
type Value struct {
	buf []byte
}

// fromScalar runs a one-off build (a single scalar event, or one array or
// object scope for FromArray/FromObject) and panics on the resulting error.
// Among scalar events, only a non-finite float can fail outside of the
// Builder's scope/ordering protocol.
func fromScalar(add func(b *Builder) error) Value {
	b := NewBuilder(WithInitialCapacity(8))
	if err := add(b); err != nil {
		panic(err)
	}
	buf, err := b.Finish()
	if err != nil {
		panic(err)
	}
	return Value{buf: buf}
}

// NullValue returns the null value.
func NullValue() Value { return fromScalar(func(b *Builder) error { return b.AddNull() }) }

// FromBool returns a boolean Value.
func FromBool(v bool) Value { return fromScalar(func(b *Builder) error { return b.AddBool(v) }) }

// FromI64 returns an integer Value, encoded at the narrowest signed kind
// that represents v losslessly.
func FromI64(v int64) Value { return fromScalar(func(b *Builder) error { return b.AddI64(v) }) }

// FromU64 returns an integer Value, encoded at the narrowest kind that
// represents v losslessly (a signed kind for v <= math.MaxInt64, the wide
// unsigned kind otherwise).
func FromU64(v uint64) Value { return fromScalar(func(b *Builder) error { return b.AddU64(v) }) }

// FromF64 returns a float Value. It panics if v is NaN or infinite, the
// same cases AddF64 rejects with an *InvalidNumberError.
func FromF64(v float64) Value { return fromScalar(func(b *Builder) error { return b.AddF64(v) }) }

// FromString returns a string Value.
func FromString(s string) Value { return fromScalar(func(b *Builder) error { return b.AddString(s) }) }

// FromArray returns an array Value containing elems in order.
func FromArray(elems ...ValueView) Value {
	return fromScalar(func(b *Builder) error {
		if err := b.BeginArray(); err != nil {
			return err
		}
		for _, e := range elems {
			if err := b.AddValue(e); err != nil {
				return err
			}
		}
		return b.EndArray()
	})
}

// KV is a single key/value pair, as passed to FromObject.
type KV struct {
	Key   string
	Value ValueView
}

// FromObject returns an object Value containing pairs, canonically sorted
// by key (last write wins on duplicate keys), mirroring the sort/dedup
// EndObject already performs for a Builder-driven object.
func FromObject(pairs ...KV) Value {
	return fromScalar(func(b *Builder) error {
		if err := b.BeginObject(); err != nil {
			return err
		}
		for _, p := range pairs {
			if err := b.AddString(p.Key); err != nil {
				return err
			}
			if err := b.AddValue(p.Value); err != nil {
				return err
			}
		}
		return b.EndObject()
	})
}

// FromOwnedBytes wraps buf as a Value without copying. buf must be a
// complete, well-formed document (its last 4 bytes are the root entry);
// callers that built buf via a Builder's Finish, or validated it via
// FromBytes, satisfy this by construction.
func FromOwnedBytes(buf []byte) (Value, error) {
	if _, err := FromBytes(buf); err != nil {
		return Value{}, err
	}
	return Value{buf: buf}, nil
}

// View returns a borrowed ValueView over v's current buffer. The view
// becomes stale the instant v is mutated by ArrayPush or ObjectInsert.
func (v Value) View() ValueView {
	view, _ := FromBytes(v.buf)
	return view
}

// Bytes returns the owned buffer. The caller must not retain it across a
// call to ArrayPush/ObjectInsert, which may replace it.
func (v Value) Bytes() []byte { return v.buf }

// Clone returns an independent copy of v with a fresh backing array, so
// that mutating the clone never affects views taken over the original.
func (v Value) Clone() Value {
	cp := make([]byte, len(v.buf))
	copy(cp, v.buf)
	return Value{buf: cp}
}

// Tag, IsNull, AsBool, AsI64, AsU64, AsF64, AsStr, AsArray, AsObject, Get
// and GetKey delegate to the current View.

func (v Value) Tag() Tag                            { return v.View().Tag() }
func (v Value) IsNull() bool                        { return v.View().IsNull() }
func (v Value) AsBool() (bool, bool)                { return v.View().AsBool() }
func (v Value) AsI64() (int64, bool)                { return v.View().AsI64() }
func (v Value) AsU64() (uint64, bool)               { return v.View().AsU64() }
func (v Value) AsF64() (float64, bool)              { return v.View().AsF64() }
func (v Value) AsStr() (string, bool)               { return v.View().AsStr() }
func (v Value) AsArray() (ArrayView, bool)          { return v.View().AsArray() }
func (v Value) AsObject() (ObjectView, bool)        { return v.View().AsObject() }
func (v Value) Get(i int) (ValueView, bool)         { return v.View().Get(i) }
func (v Value) GetKey(key string) (ValueView, bool) { return v.View().GetKey(key) }
func (v Value) Interface() (interface{}, error)     { return v.View().Interface() }
func (v Value) MarshalJSON() ([]byte, error)        { return v.View().MarshalJSON() }
func (v Value) String() string                      { return v.View().String() }

// Equal reports whether v and o are logically equal (see the package-level
// Equal for the precise rules: numeric encoding and object insertion order
// are both ignored).
func (v Value) Equal(o Value) bool { return Equal(v.View(), o.View()) }

// Compare orders v and o per the package-level Compare.
func (v Value) Compare(o Value) int { return Compare(v.View(), o.View()) }

// Pretty renders v with 2-space indentation and newlines.
func (v Value) Pretty() string { return string(appendPretty(nil, v.View(), 0)) }

// Len returns the element/pair count if v's root is an array or object,
// and 0 otherwise.
func (v Value) Len() int {
	view := v.View()
	switch view.Tag() {
	case TagArray:
		a, _ := view.AsArray()
		return a.Len()
	case TagObject:
		o, _ := view.AsObject()
		return o.Len()
	default:
		return 0
	}
}

// ArrayPush appends nv to v, which must be rooted in an array. This
// rewrites the whole buffer (O(n) in the array's size) because the
// trailer's packed entry array and size word sit after every element.
func (v *Value) ArrayPush(nv ValueView) error {
	root := v.View()
	a, ok := root.AsArray()
	if !ok {
		return &TypeMismatchError{Want: TagArray, Got: root.Tag()}
	}
	b := NewBuilder(WithInitialCapacity(len(v.buf) + 64))
	if err := b.BeginArray(); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		elem, _ := a.Get(i)
		if err := b.AddValue(elem); err != nil {
			return err
		}
	}
	if err := b.AddValue(nv); err != nil {
		return err
	}
	if err := b.EndArray(); err != nil {
		return err
	}
	buf, err := b.Finish()
	if err != nil {
		return err
	}
	v.buf = buf
	return nil
}

// ObjectInsert binds key to nv in v, which must be rooted in an object,
// preserving sorted key order. If key already exists, its prior binding is
// skipped during re-emission and replaced by nv, rather than appending nv
// and relying on sort-time last-write-wins deduplication: skipping avoids
// ever writing the stale value's bytes into the new buffer. This rewrites
// the whole buffer (O(n) in the object's size).
func (v *Value) ObjectInsert(key string, nv ValueView) error {
	root := v.View()
	o, ok := root.AsObject()
	if !ok {
		return &TypeMismatchError{Want: TagObject, Got: root.Tag()}
	}
	b := NewBuilder(WithInitialCapacity(len(v.buf) + 64 + len(key)))
	if err := b.BeginObject(); err != nil {
		return err
	}
	for i := 0; i < o.Len(); i++ {
		k := o.keyAt(i)
		if string(k) == key {
			continue
		}
		if err := b.AddString(string(k)); err != nil {
			return err
		}
		if err := b.AddValue(ValueView{buf: o.buf, entry: o.valueEntryAt(i)}); err != nil {
			return err
		}
	}
	if err := b.AddString(key); err != nil {
		return err
	}
	if err := b.AddValue(nv); err != nil {
		return err
	}
	if err := b.EndObject(); err != nil {
		return err
	}
	buf, err := b.Finish()
	if err != nil {
		return err
	}
	v.buf = buf
	return nil
}
