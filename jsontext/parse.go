package jsontext

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-bjson/bjson"
)

// Parse parses a complete JSON document in data and returns the equivalent
// owned bjson.Value. Trailing non-whitespace data after the root value,
// malformed syntax, invalid UTF-8, and non-finite numbers all fail with a
// *bjson.ParseError.
func Parse(data []byte, opts ...Option) (bjson.Value, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	var builderOpts []bjson.BuilderOption
	if cfg.bufHint > 0 {
		builderOpts = append(builderOpts, bjson.WithInitialCapacity(cfg.bufHint))
	}
	b := bjson.NewBuilder(builderOpts...)

	if !utf8.Valid(data) {
		return bjson.Value{}, &bjson.ParseError{Msg: "invalid UTF-8"}
	}
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	if err := drive(iter, b); err != nil {
		return bjson.Value{}, err
	}
	if err := checkTrailing(iter); err != nil {
		return bjson.Value{}, err
	}

	buf, err := b.Finish()
	if err != nil {
		return bjson.Value{}, &bjson.ParseError{Msg: "incomplete document", Cause: err}
	}
	return bjson.FromOwnedBytes(buf)
}

// ParseReader reads r to EOF and parses it as a single JSON document.
func ParseReader(r io.Reader, opts ...Option) (bjson.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return bjson.Value{}, &bjson.ParseError{Msg: "reading input", Cause: err}
	}
	return Parse(data, opts...)
}

// drive reads exactly one JSON value from iter and emits the matching
// bjson.Builder events, recursing into arrays and objects.
func drive(iter *jsoniter.Iterator, b *bjson.Builder) error {
	switch iter.WhatIsNext() {
	case jsoniter.InvalidValue:
		return wrapIterErr(iter)
	case jsoniter.NilValue:
		iter.ReadNil()
		if err := checkIterErr(iter); err != nil {
			return err
		}
		return b.AddNull()
	case jsoniter.BoolValue:
		v := iter.ReadBool()
		if err := checkIterErr(iter); err != nil {
			return err
		}
		return b.AddBool(v)
	case jsoniter.NumberValue:
		return driveNumber(iter, b)
	case jsoniter.StringValue:
		s := iter.ReadString()
		if err := checkIterErr(iter); err != nil {
			return err
		}
		return b.AddString(s)
	case jsoniter.ArrayValue:
		return driveArray(iter, b)
	case jsoniter.ObjectValue:
		return driveObject(iter, b)
	default:
		return &bjson.ParseError{Msg: "unexpected token"}
	}
}

func driveArray(iter *jsoniter.Iterator, b *bjson.Builder) error {
	if err := b.BeginArray(); err != nil {
		return err
	}
	var elemErr error
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		if err := drive(it, b); err != nil {
			elemErr = err
			return false
		}
		return true
	})
	if elemErr != nil {
		return elemErr
	}
	if err := checkIterErr(iter); err != nil {
		return err
	}
	return b.EndArray()
}

func driveObject(iter *jsoniter.Iterator, b *bjson.Builder) error {
	if err := b.BeginObject(); err != nil {
		return err
	}
	var fieldErr error
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		if err := b.AddString(key); err != nil {
			fieldErr = err
			return false
		}
		if err := drive(it, b); err != nil {
			fieldErr = err
			return false
		}
		return true
	})
	if fieldErr != nil {
		return fieldErr
	}
	if err := checkIterErr(iter); err != nil {
		return err
	}
	return b.EndObject()
}

// driveNumber decides between the integer and float builder events by
// inspecting the literal's text, not just its value: a JSON literal like
// 3.0 must stay a float even though it equals the integer 3.
func driveNumber(iter *jsoniter.Iterator, b *bjson.Builder) error {
	num := iter.ReadNumber()
	if err := checkIterErr(iter); err != nil {
		return err
	}
	s := string(num)
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &bjson.ParseError{Msg: fmt.Sprintf("invalid number %q", s), Cause: err}
		}
		return b.AddF64(f)
	}
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &bjson.ParseError{Msg: fmt.Sprintf("integer %q out of range", s), Cause: err}
		}
		return b.AddI64(i)
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return &bjson.ParseError{Msg: fmt.Sprintf("integer %q out of range", s), Cause: err}
	}
	return b.AddU64(u)
}

func checkIterErr(iter *jsoniter.Iterator) error {
	if iter.Error != nil && iter.Error != io.EOF {
		return &bjson.ParseError{Msg: "malformed JSON", Cause: iter.Error}
	}
	return nil
}

func wrapIterErr(iter *jsoniter.Iterator) error {
	if iter.Error != nil && iter.Error != io.EOF {
		return &bjson.ParseError{Msg: "malformed JSON", Cause: iter.Error}
	}
	return &bjson.ParseError{Msg: "unexpected end of input"}
}

// checkTrailing fails if anything other than whitespace remains after the
// root value.
func checkTrailing(iter *jsoniter.Iterator) error {
	iter.WhatIsNext()
	if iter.Error == io.EOF {
		return nil
	}
	if iter.Error != nil {
		return &bjson.ParseError{Msg: "malformed JSON", Cause: iter.Error}
	}
	// Any non-whitespace byte left over is trailing data, whether or not it
	// could start a value (a ',' or the 's' of "trues" cannot).
	return &bjson.ParseError{Msg: "trailing data after root value"}
}
