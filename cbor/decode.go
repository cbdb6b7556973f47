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
	"fmt"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			MaxNestedLevels: maxNestedLevels,
			// Duplicate keys would make the decoded value depend on map order
			DupMapKey: _cbor.DupMapKeyEnforcedAPF,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// StreamDecoder provides sequential CBOR decoding with position tracking.
// It is the reading half of StreamEncoder.
type StreamDecoder struct {
	dec  *_cbor.Decoder
	data []byte
}

// NewStreamDecoder creates a decoder for sequential CBOR item extraction with position tracking.
func NewStreamDecoder(data []byte) (*StreamDecoder, error) {
	decMode, err := getDecMode()
	if err != nil {
		return nil, err
	}
	if decMode == nil {
		return nil, errors.New("CBOR decoder mode not initialized")
	}
	return &StreamDecoder{
		dec:  decMode.NewDecoder(bytes.NewReader(data)),
		data: data,
	}, nil
}

// Position returns the current byte position in the stream.
func (d *StreamDecoder) Position() int {
	return d.dec.NumBytesRead()
}

// EOF returns true if the decoder has reached the end of the data.
func (d *StreamDecoder) EOF() bool {
	return d.dec.NumBytesRead() >= len(d.data)
}

// Remaining returns the number of bytes not yet consumed
func (d *StreamDecoder) Remaining() int {
	return len(d.data) - d.dec.NumBytesRead()
}

// Decode decodes the next CBOR item into dest and returns its byte range.
// Returns (startOffset, length, error).
func (d *StreamDecoder) Decode(dest any) (int, int, error) {
	start := d.dec.NumBytesRead()
	if err := d.dec.Decode(dest); err != nil {
		return 0, 0, err
	}
	end := d.dec.NumBytesRead()
	return start, end - start, nil
}

// PeekType returns the major type of the next item without consuming it
func (d *StreamDecoder) PeekType() (uint8, error) {
	pos := d.dec.NumBytesRead()
	if pos >= len(d.data) {
		return 0, errors.New("unexpected end of data")
	}
	return d.data[pos] & CborTypeMask, nil
}

func (d *StreamDecoder) ReadString() (string, error) {
	if err := d.expectType(CborTypeTextString); err != nil {
		return "", err
	}
	var ret string
	if _, _, err := d.Decode(&ret); err != nil {
		return "", err
	}
	return ret, nil
}

func (d *StreamDecoder) ReadUint() (uint64, error) {
	if err := d.expectType(CborTypeUint); err != nil {
		return 0, err
	}
	var ret uint64
	if _, _, err := d.Decode(&ret); err != nil {
		return 0, err
	}
	return ret, nil
}

func (d *StreamDecoder) ReadBool() (bool, error) {
	pos := d.dec.NumBytesRead()
	if pos >= len(d.data) {
		return false, errors.New("unexpected end of data")
	}
	// The upstream decoder will happily turn a null into false, so check the byte directly
	if b := d.data[pos]; b != CborSimpleFalse && b != CborSimpleTrue {
		return false, fmt.Errorf("expected bool at offset %d, got 0x%x", pos, b)
	}
	var ret bool
	if _, _, err := d.Decode(&ret); err != nil {
		return false, err
	}
	return ret, nil
}

func (d *StreamDecoder) expectType(majorType uint8) error {
	actual, err := d.PeekType()
	if err != nil {
		return err
	}
	if actual != majorType {
		return fmt.Errorf(
			"expected CBOR major type 0x%x at offset %d, got 0x%x",
			majorType,
			d.dec.NumBytesRead(),
			actual,
		)
	}
	return nil
}
