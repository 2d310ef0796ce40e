package bjson

import (
	"math"
	"testing"
)

func mustFinish(t *testing.T, b *Builder) []byte {
	t.Helper()
	buf, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return buf
}

func TestBuilderNullRoot(t *testing.T) {
	b := NewBuilder()
	if err := b.AddNull(); err != nil {
		t.Fatal(err)
	}
	buf := mustFinish(t, b)
	if len(buf) != 4 {
		t.Fatalf("expected a 4-byte buffer, got %d bytes", len(buf))
	}
	v, err := FromBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsNull() {
		t.Fatal("expected root to be null")
	}
	if string(appendCompact(nil, v)) != "null" {
		t.Fatalf("print = %q, want null", appendCompact(nil, v))
	}
}

func TestBuilderArrayOfScalars(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginArray())
	must(t, b.AddI64(1))
	must(t, b.AddNull())
	must(t, b.AddBool(true))
	must(t, b.AddString("s"))
	must(t, b.EndArray())
	buf := mustFinish(t, b)

	v, err := FromBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := v.AsArray()
	if !ok {
		t.Fatal("expected array root")
	}
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
	if got := string(appendCompact(nil, v)); got != `[1,null,true,"s"]` {
		t.Fatalf("print = %q", got)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestBuilderObjectSortsKeys(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginObject())
	must(t, b.AddString("b"))
	must(t, b.AddI64(2))
	must(t, b.AddString("a"))
	must(t, b.AddI64(1))
	must(t, b.EndObject())
	buf := mustFinish(t, b)

	v, _ := FromBytes(buf)
	if got := string(appendCompact(nil, v)); got != `{"a":1,"b":2}` {
		t.Fatalf("print = %q, want {\"a\":1,\"b\":2}", got)
	}

	o, _ := v.AsObject()
	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}
}

func TestBuilderObjectDuplicateKeyLastWins(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginObject())
	must(t, b.AddString("a"))
	must(t, b.AddI64(1))
	must(t, b.AddString("a"))
	must(t, b.AddI64(2))
	must(t, b.EndObject())
	buf := mustFinish(t, b)

	v, _ := FromBytes(buf)
	o, _ := v.AsObject()
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
	val, ok := o.Get("a")
	if !ok {
		t.Fatal("expected key a")
	}
	if i, _ := val.AsI64(); i != 2 {
		t.Fatalf("a = %d, want 2 (last write should win)", i)
	}
}

func TestBuilderNestedContainers(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginObject())
	must(t, b.AddString("items"))
	must(t, b.BeginArray())
	must(t, b.BeginObject())
	must(t, b.AddString("id"))
	must(t, b.AddU64(1))
	must(t, b.EndObject())
	must(t, b.EndArray())
	must(t, b.EndObject())
	buf := mustFinish(t, b)

	v, _ := FromBytes(buf)
	if got := string(appendCompact(nil, v)); got != `{"items":[{"id":1}]}` {
		t.Fatalf("print = %q", got)
	}
}

func TestBuilderProtocolViolations(t *testing.T) {
	t.Run("end_array outside array scope", func(t *testing.T) {
		b := NewBuilder()
		must(t, b.BeginObject())
		if err := b.EndArray(); err == nil {
			t.Fatal("expected protocol violation")
		}
	})
	t.Run("non-string key", func(t *testing.T) {
		b := NewBuilder()
		must(t, b.BeginObject())
		if err := b.AddI64(1); err == nil {
			t.Fatal("expected protocol violation for non-string key")
		}
	})
	t.Run("end_object with dangling key", func(t *testing.T) {
		b := NewBuilder()
		must(t, b.BeginObject())
		must(t, b.AddString("a"))
		if err := b.EndObject(); err == nil {
			t.Fatal("expected protocol violation: key without a value")
		}
	})
	t.Run("finish with open scope", func(t *testing.T) {
		b := NewBuilder()
		must(t, b.BeginArray())
		must(t, b.AddNull())
		if _, err := b.Finish(); err == nil {
			t.Fatal("expected protocol violation: unclosed scope")
		}
	})
	t.Run("two root values", func(t *testing.T) {
		b := NewBuilder()
		must(t, b.AddNull())
		if err := b.AddNull(); err == nil {
			t.Fatal("expected protocol violation: second root value")
		}
	})
	t.Run("finish before any value", func(t *testing.T) {
		b := NewBuilder()
		if _, err := b.Finish(); err == nil {
			t.Fatal("expected protocol violation: nothing written")
		}
	})
}

func TestBuilderInvalidNumber(t *testing.T) {
	b := NewBuilder()
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := b.AddF64(f); err == nil {
			t.Fatalf("expected invalid number error for %v", f)
		}
	}
}

func TestBuilderAddValueSplicesForeignView(t *testing.T) {
	src := NewBuilder()
	must(t, src.BeginArray())
	must(t, src.AddI64(1))
	must(t, src.AddString("x"))
	must(t, src.EndArray())
	srcBuf := mustFinish(t, src)
	srcVal, _ := FromBytes(srcBuf)

	dst := NewBuilder()
	must(t, dst.BeginObject())
	must(t, dst.AddString("nested"))
	must(t, dst.AddValue(srcVal))
	must(t, dst.EndObject())
	dstBuf := mustFinish(t, dst)

	v, _ := FromBytes(dstBuf)
	if got := string(appendCompact(nil, v)); got != `{"nested":[1,"x"]}` {
		t.Fatalf("print = %q", got)
	}
}

func TestBuilderWithInitialCapacity(t *testing.T) {
	b := NewBuilder(WithInitialCapacity(1024))
	if cap(b.buf) < 1024 {
		t.Fatalf("cap = %d, want >= 1024", cap(b.buf))
	}
}
