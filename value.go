package bjson

// ValueView is a borrowed, zero-copy view over a single JSON value stored
// somewhere inside buf. It is freely copyable and safe to share across
// goroutines for as long as buf is not mutated.
type ValueView struct {
	buf   []byte
	entry Entry
}

// FromBytes interprets buf as a complete document: its last 4 bytes are
// read as the native-endian root Entry.
func FromBytes(buf []byte) (ValueView, error) {
	if len(buf) < 4 {
		return ValueView{}, &ParseError{Msg: "buffer shorter than a root entry"}
	}
	root := Entry(nativeEndian.Uint32(buf[len(buf)-4:]))
	return ValueView{buf: buf, entry: root}, nil
}

// Tag returns the underlying entry's tag.
func (v ValueView) Tag() Tag { return v.entry.Tag() }

// IsNull reports whether v is JSON null.
func (v ValueView) IsNull() bool { return v.entry.Tag() == TagNull }

// AsNull reports whether v is null; it carries no payload.
func (v ValueView) AsNull() bool { return v.IsNull() }

// AsBool returns v's boolean value, if v is a boolean.
func (v ValueView) AsBool() (bool, bool) {
	switch v.entry.Tag() {
	case TagTrue:
		return true, true
	case TagFalse:
		return false, true
	default:
		return false, false
	}
}

// number returns the NumberView backing v, if v is a number.
func (v ValueView) number() (NumberView, bool) {
	if v.entry.Tag() != TagNumber {
		return NumberView{}, false
	}
	return numberViewAt(v.buf, v.entry.Offset()), true
}

// AsI64 returns v's value as int64, if v is a number representable as one.
func (v ValueView) AsI64() (int64, bool) {
	n, ok := v.number()
	if !ok {
		return 0, false
	}
	return n.AsI64()
}

// AsU64 returns v's value as uint64, if v is a number representable as one.
func (v ValueView) AsU64() (uint64, bool) {
	n, ok := v.number()
	if !ok {
		return 0, false
	}
	return n.AsU64()
}

// AsF64 returns v's value as float64, widening integers where it can be
// done losslessly.
func (v ValueView) AsF64() (float64, bool) {
	n, ok := v.number()
	if !ok {
		return 0, false
	}
	return n.AsF64()
}

// AsStr returns v's string content, if v is a string.
func (v ValueView) AsStr() (string, bool) {
	if v.entry.Tag() != TagString {
		return "", false
	}
	return stringAt(v.buf, v.entry.Offset()), true
}

// AsArray returns v as an ArrayView, if v is an array.
func (v ValueView) AsArray() (ArrayView, bool) {
	if v.entry.Tag() != TagArray {
		return ArrayView{}, false
	}
	return newArrayView(v.buf, v.entry.Offset()), true
}

// AsObject returns v as an ObjectView, if v is an object.
func (v ValueView) AsObject() (ObjectView, bool) {
	if v.entry.Tag() != TagObject {
		return ObjectView{}, false
	}
	return newObjectView(v.buf, v.entry.Offset()), true
}

// Get indexes v as an array by position. It returns absent if v is not an
// array, or the index is out of range.
func (v ValueView) Get(i int) (ValueView, bool) {
	a, ok := v.AsArray()
	if !ok {
		return ValueView{}, false
	}
	return a.Get(i)
}

// GetKey indexes v as an object by key. It returns absent if v is not an
// object, or the key is not present.
func (v ValueView) GetKey(key string) (ValueView, bool) {
	o, ok := v.AsObject()
	if !ok {
		return ValueView{}, false
	}
	return o.Get(key)
}

// Interface converts v to a plain Go value: nil, bool, int64, uint64,
// float64, string, []interface{}, or map[string]interface{}.
func (v ValueView) Interface() (interface{}, error) {
	switch v.entry.Tag() {
	case TagNull:
		return nil, nil
	case TagTrue:
		return true, nil
	case TagFalse:
		return false, nil
	case TagNumber:
		n, _ := v.number()
		if i, ok := n.AsI64(); ok && !n.IsUnsigned() {
			return i, nil
		}
		if u, ok := n.AsU64(); ok {
			return u, nil
		}
		f, _ := n.AsF64()
		return f, nil
	case TagString:
		s, _ := v.AsStr()
		return s, nil
	case TagArray:
		a, _ := v.AsArray()
		out := make([]interface{}, 0, a.Len())
		var err error
		a.ForEach(func(_ int, e ValueView) bool {
			var iv interface{}
			iv, err = e.Interface()
			if err != nil {
				return false
			}
			out = append(out, iv)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	case TagObject:
		o, _ := v.AsObject()
		out := make(map[string]interface{}, o.Len())
		var err error
		o.ForEach(func(k string, e ValueView) bool {
			var iv interface{}
			iv, err = e.Interface()
			if err != nil {
				return false
			}
			out[k] = iv
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, &ParseError{Msg: "corrupt tape: unknown tag"}
	}
}

// MarshalJSON renders v as compact JSON text.
func (v ValueView) MarshalJSON() ([]byte, error) {
	return appendCompact(nil, v), nil
}

// String renders v as compact JSON text.
func (v ValueView) String() string {
	return string(appendCompact(nil, v))
}
