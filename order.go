package bjson

import "bytes"

// kindClass orders the top-level dispatch of Compare: Object > Array >
// Boolean > Number > String > Null (highest precedence first, so a larger
// class constant sorts greater).
func kindClass(t Tag) int {
	switch t {
	case TagNull:
		return 0
	case TagString:
		return 1
	case TagNumber:
		return 2
	case TagFalse, TagTrue:
		return 3
	case TagArray:
		return 4
	case TagObject:
		return 5
	default:
		return -1
	}
}

// Compare defines the total order over values described in the package
// docs: by kind class first, then within a class by the rules below.
// Equality at this level is purely structural/logical: 1 and 1.0 compare
// equal, and object insertion order never affects the result.
func Compare(a, b ValueView) int {
	ca, cb := kindClass(a.entry.Tag()), kindClass(b.entry.Tag())
	if ca != cb {
		if ca < cb {
			return -1
		}
		return 1
	}
	switch a.entry.Tag() {
	case TagNull:
		return 0
	case TagFalse, TagTrue:
		av, _ := a.AsBool()
		bv, _ := b.AsBool()
		if av == bv {
			return 0
		}
		if !av && bv {
			return -1
		}
		return 1
	case TagNumber:
		na, _ := a.number()
		nb, _ := b.number()
		return na.Compare(nb)
	case TagString:
		as, _ := a.AsStr()
		bs, _ := b.AsStr()
		return bytes.Compare([]byte(as), []byte(bs))
	case TagArray:
		return compareArrays(a, b)
	case TagObject:
		return compareObjects(a, b)
	default:
		return 0
	}
}

func compareArrays(a, b ValueView) int {
	aa, _ := a.AsArray()
	ba, _ := b.AsArray()
	if aa.Len() != ba.Len() {
		if aa.Len() < ba.Len() {
			return -1
		}
		return 1
	}
	n := aa.Len()
	for i := 0; i < n; i++ {
		ea, _ := aa.Get(i)
		eb, _ := ba.Get(i)
		if c := Compare(ea, eb); c != 0 {
			return c
		}
	}
	return 0
}

func compareObjects(a, b ValueView) int {
	ao, _ := a.AsObject()
	bo, _ := b.AsObject()
	if ao.Len() != bo.Len() {
		if ao.Len() < bo.Len() {
			return -1
		}
		return 1
	}
	n := ao.Len()
	for i := 0; i < n; i++ {
		ak, av := ao.keyAt(i), ValueView{buf: ao.buf, entry: ao.valueEntryAt(i)}
		bk, bv := bo.keyAt(i), ValueView{buf: bo.buf, entry: bo.valueEntryAt(i)}
		if c := bytes.Compare(ak, bk); c != 0 {
			return c
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether a and b are logically equal: same mathematical
// value ignoring numeric encoding, same string content, element-wise equal
// arrays, and objects equal regardless of insertion order (well-formed
// objects are already canonicalized by sort order, so this reduces to
// Compare == 0).
func Equal(a, b ValueView) bool { return Compare(a, b) == 0 }
