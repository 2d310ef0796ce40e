/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bjson implements a binary JSON value representation: a single
// contiguous byte buffer ("the tape") from which any sub-value can be
// located, iterated, compared and rendered back to text without allocating
// additional nodes.
//
// A document is assembled by a Builder from a linear sequence of events
// (add_null, add_bool, add_i64/u64/f64, add_string, begin/end array,
// begin/end object) and yields an owned Value. A Value exposes the same
// borrowed-view accessors as ValueView but additionally allows array
// append and object insert, each an O(n) rewrite of the backing buffer.
//
// Views (ValueView, ArrayView, ObjectView, NumberView) are immutable
// borrows over a byte slice: they never copy, and are safe to share freely
// across goroutines as long as the backing buffer outlives them.
//
// Parsing of textual JSON, and an optional compressed on-disk envelope for
// the buffer, live in the jsontext and archive subpackages respectively;
// the core package has no dependency on a text tokenizer. Rendering back to
// text (compact and pretty) is done by this package.
package bjson
