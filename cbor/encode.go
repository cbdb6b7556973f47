// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"bytes"
	"errors"
	"io"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

// getEncMode returns a cached EncMode, initializing it on first use.
func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
			// Empty name lists must still be written as length-prefixed arrays
			NilContainers: _cbor.NilContainerAsEmpty,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

func Encode(data any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

// StreamEncoder writes a sequence of CBOR items to an io.Writer, one item per call
type StreamEncoder struct {
	enc     *_cbor.Encoder
	counter *countingWriter
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// NewStreamEncoder creates an encoder that appends items to w
func NewStreamEncoder(w io.Writer) (*StreamEncoder, error) {
	if w == nil {
		return nil, errors.New("stream encoder requires a writer")
	}
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	counter := &countingWriter{w: w}
	return &StreamEncoder{
		enc:     em.NewEncoder(counter),
		counter: counter,
	}, nil
}

// Position returns the number of bytes written so far
func (e *StreamEncoder) Position() int {
	return e.counter.n
}

// Encode writes v as the next CBOR item
func (e *StreamEncoder) Encode(v any) error {
	return e.enc.Encode(v)
}

func (e *StreamEncoder) WriteString(s string) error {
	return e.enc.Encode(s)
}

func (e *StreamEncoder) WriteUint(v uint64) error {
	return e.enc.Encode(v)
}

func (e *StreamEncoder) WriteBool(v bool) error {
	return e.enc.Encode(v)
}
