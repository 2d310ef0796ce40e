package bjson

import "testing"

func parseFixture(t *testing.T, build func(b *Builder)) ValueView {
	t.Helper()
	b := NewBuilder()
	build(b)
	buf, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	v, err := FromBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestArrayViewGetOutOfRange(t *testing.T) {
	v := parseFixture(t, func(b *Builder) {
		must(t, b.BeginArray())
		must(t, b.AddI64(1))
		must(t, b.EndArray())
	})
	a, _ := v.AsArray()
	if _, ok := a.Get(-1); ok {
		t.Fatal("Get(-1) should be absent")
	}
	if _, ok := a.Get(1); ok {
		t.Fatal("Get(1) should be absent on a 1-element array")
	}
	if v.Tag() != TagArray {
		t.Fatal("expected array tag")
	}
	if _, ok := v.AsObject(); ok {
		t.Fatal("numeric-indexed value should not present as an object")
	}
}

func TestObjectViewGetMissing(t *testing.T) {
	v := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("a"))
		must(t, b.AddI64(1))
		must(t, b.EndObject())
	})
	o, _ := v.AsObject()
	if _, ok := o.Get("missing"); ok {
		t.Fatal("Get(missing) should be absent")
	}
	if _, ok := v.Get(0); ok {
		t.Fatal("string-keyed value should not present as an array")
	}
}

func TestObjectGetMatchesIteration(t *testing.T) {
	v := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("z"))
		must(t, b.AddI64(26))
		must(t, b.AddString("a"))
		must(t, b.AddI64(1))
		must(t, b.AddString("m"))
		must(t, b.AddI64(13))
		must(t, b.EndObject())
	})
	o, _ := v.AsObject()
	o.ForEach(func(k string, iterVal ValueView) bool {
		direct, ok := o.Get(k)
		if !ok {
			t.Fatalf("Get(%q) missing after iteration yielded it", k)
		}
		if !Equal(direct, iterVal) {
			t.Fatalf("Get(%q) != iterated value", k)
		}
		return true
	})
}

func TestValueOrderingTotalOrder(t *testing.T) {
	mk := func(build func(b *Builder)) ValueView { return parseFixture(t, build) }
	vNull := mk(func(b *Builder) { must(t, b.AddNull()) })
	vStr := mk(func(b *Builder) { must(t, b.AddString("str")) })
	vNegOne := mk(func(b *Builder) { must(t, b.AddI64(-1)) })
	vZero := mk(func(b *Builder) { must(t, b.AddI64(0)) })
	vPi := mk(func(b *Builder) { must(t, b.AddF64(3.14)) })
	vFalse := mk(func(b *Builder) { must(t, b.AddBool(false)) })
	vTrue := mk(func(b *Builder) { must(t, b.AddBool(true)) })
	vArr := mk(func(b *Builder) { must(t, b.BeginArray()); must(t, b.EndArray()) })
	vObj := mk(func(b *Builder) { must(t, b.BeginObject()); must(t, b.EndObject()) })

	ordered := []ValueView{vNull, vStr, vNegOne, vZero, vPi, vFalse, vTrue, vArr, vObj}
	for i := 0; i < len(ordered)-1; i++ {
		if Compare(ordered[i], ordered[i+1]) >= 0 {
			t.Fatalf("element %d should compare less than element %d", i, i+1)
		}
	}
	// Transitivity spot check across non-adjacent pairs.
	if Compare(vNull, vObj) >= 0 {
		t.Fatal("null should compare less than object")
	}
}

func TestValueEqualityIgnoresNumericEncodingAndKeyOrder(t *testing.T) {
	intOne := parseFixture(t, func(b *Builder) { must(t, b.AddI64(1)) })
	floatOne := parseFixture(t, func(b *Builder) { must(t, b.AddF64(1.0)) })
	if !Equal(intOne, floatOne) {
		t.Fatal("1 and 1.0 should be logically equal")
	}

	objAB := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("a"))
		must(t, b.AddI64(1))
		must(t, b.AddString("b"))
		must(t, b.AddI64(2))
		must(t, b.EndObject())
	})
	objBA := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("b"))
		must(t, b.AddI64(2))
		must(t, b.AddString("a"))
		must(t, b.AddI64(1))
		must(t, b.EndObject())
	})
	if !Equal(objAB, objBA) {
		t.Fatal("objects built with different insertion order should compare equal")
	}
}

func TestValuePrettyPrint(t *testing.T) {
	v := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("a"))
		must(t, b.BeginArray())
		must(t, b.AddI64(1))
		must(t, b.AddI64(2))
		must(t, b.EndArray())
		must(t, b.EndObject())
	})
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got := string(appendPretty(nil, v, 0)); got != want {
		t.Fatalf("pretty print = %q, want %q", got, want)
	}
}

func TestValueInterfaceConversion(t *testing.T) {
	v := parseFixture(t, func(b *Builder) {
		must(t, b.BeginObject())
		must(t, b.AddString("n"))
		must(t, b.AddI64(5))
		must(t, b.AddString("s"))
		must(t, b.AddString("hi"))
		must(t, b.EndObject())
	})
	out, err := v.Interface()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := out.(map[string]interface{})
	if !ok {
		t.Fatalf("Interface() = %T, want map[string]interface{}", out)
	}
	if m["n"].(int64) != 5 || m["s"].(string) != "hi" {
		t.Fatalf("unexpected map contents: %#v", m)
	}
}

func TestQuotedStringEscaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\tb", `"a\tb"`},
		{"\x01", "\"\\u0001\""},
		{"\U0001F600", "\"\\ud83d\\ude00\""},
	}
	for _, tt := range tests {
		got := string(appendQuoted(nil, tt.in))
		if got != tt.want {
			t.Fatalf("appendQuoted(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
