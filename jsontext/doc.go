// Package jsontext adapts textual JSON into the event sequence consumed by
// a bjson.Builder. The core bjson package never imports a text tokenizer,
// so this package is where the wire text actually gets scanned, using
// github.com/json-iterator/go's low-level Iterator as the pull parser.
//
// This is not a streaming/incremental parser: Parse consumes a complete
// buffer (or reads an io.Reader to EOF) and drives exactly one JSON value
// to completion before checking for trailing data.
package jsontext
