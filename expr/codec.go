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

package expr

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/blinklabs-io/eqns/cbor"
	"github.com/blinklabs-io/eqns/name"
)

const DefaultMaxDepth = 4096

// Encoder writes expressions as a flat sequence of CBOR items.
//
// Node layout: kind tag, then
//
//	bvar, sort:  uint
//	const:       name
//	app:         fn, arg
//	lambda, pi:  binder name, binder type, body
//	mdata:       uint entry count, (key name, value tag, value)*, inner
//	macro:       uint arg count, args, MacroDef.Write output
type Encoder struct {
	stream *cbor.StreamEncoder
}

func NewEncoder(w io.Writer) (*Encoder, error) {
	stream, err := cbor.NewStreamEncoder(w)
	if err != nil {
		return nil, err
	}
	return &Encoder{stream: stream}, nil
}

// EncodeExpr serializes a single expression
func EncodeExpr(e *Expr) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf)
	if err != nil {
		return nil, err
	}
	if err := enc.WriteExpr(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (enc *Encoder) WriteString(s string) error {
	return enc.stream.WriteString(s)
}

func (enc *Encoder) WriteUint(v uint64) error {
	return enc.stream.WriteUint(v)
}

func (enc *Encoder) WriteBool(v bool) error {
	return enc.stream.WriteBool(v)
}

func (enc *Encoder) WriteName(n name.Name) error {
	return enc.stream.Encode(n)
}

// WriteNames writes a length-prefixed list of names
func (enc *Encoder) WriteNames(names []name.Name) error {
	if names == nil {
		names = []name.Name{}
	}
	return enc.stream.Encode(names)
}

func (enc *Encoder) WriteExpr(e *Expr) error {
	if e == nil {
		return fmt.Errorf("cannot encode nil expression")
	}
	if err := enc.WriteUint(uint64(e.kind)); err != nil {
		return err
	}
	switch e.kind {
	case KindBVar, KindSort:
		return enc.WriteUint(e.value)
	case KindConst:
		return enc.WriteName(e.name)
	case KindApp:
		if err := enc.WriteExpr(e.fn); err != nil {
			return err
		}
		return enc.WriteExpr(e.arg)
	case KindLambda, KindPi:
		if err := enc.WriteName(e.name); err != nil {
			return err
		}
		if err := enc.WriteExpr(e.binderType); err != nil {
			return err
		}
		return enc.WriteExpr(e.body)
	case KindMData:
		if err := enc.writeKVMap(e.data); err != nil {
			return err
		}
		return enc.WriteExpr(e.inner)
	case KindMacro:
		if err := enc.WriteUint(uint64(len(e.args))); err != nil {
			return err
		}
		for _, arg := range e.args {
			if err := enc.WriteExpr(arg); err != nil {
				return err
			}
		}
		if err := e.macro.Write(enc); err != nil {
			return fmt.Errorf("write %s macro: %w", e.macro.Name(), err)
		}
		return nil
	}
	return fmt.Errorf("cannot encode expression of kind %s", e.kind)
}

func (enc *Encoder) writeKVMap(m KVMap) error {
	if err := enc.WriteUint(uint64(m.Len())); err != nil {
		return err
	}
	for _, entry := range m.entries {
		if err := enc.WriteName(entry.key); err != nil {
			return err
		}
		var err error
		switch v := entry.value.(type) {
		case BoolValue:
			if err = enc.WriteUint(dataKindBool); err == nil {
				err = enc.WriteBool(bool(v))
			}
		case NatValue:
			if err = enc.WriteUint(dataKindNat); err == nil {
				err = enc.WriteUint(uint64(v))
			}
		case NameValue:
			if err = enc.WriteUint(dataKindName); err == nil {
				err = enc.WriteName(name.Name(v))
			}
		case StringValue:
			if err = enc.WriteUint(dataKindString); err == nil {
				err = enc.WriteString(string(v))
			}
		default:
			err = fmt.Errorf("cannot encode metadata value %T", v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type DecoderOptionFunc func(*Decoder)

// WithMaxDepth limits how deeply nested the decoded tree may be
func WithMaxDepth(maxDepth int) DecoderOptionFunc {
	return func(d *Decoder) {
		d.maxDepth = maxDepth
	}
}

// Decoder reads expressions written by Encoder
type Decoder struct {
	stream   *cbor.StreamDecoder
	macros   *MacroRegistry
	maxDepth int
	depth    int
}

func NewDecoder(
	data []byte,
	macros *MacroRegistry,
	opts ...DecoderOptionFunc,
) (*Decoder, error) {
	if macros == nil {
		macros = NewMacroRegistry()
	}
	stream, err := cbor.NewStreamDecoder(data)
	if err != nil {
		return nil, err
	}
	d := &Decoder{
		stream:   stream,
		macros:   macros,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// DecodeExpr deserializes a single expression, rejecting trailing data
func DecodeExpr(
	data []byte,
	macros *MacroRegistry,
	opts ...DecoderOptionFunc,
) (*Expr, error) {
	d, err := NewDecoder(data, macros, opts...)
	if err != nil {
		return nil, err
	}
	e, err := d.ReadExpr()
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, d.Corrupted(nil, "%d trailing bytes", len(data)-d.Position())
	}
	return e, nil
}

func (d *Decoder) Position() int {
	return d.stream.Position()
}

func (d *Decoder) EOF() bool {
	return d.stream.EOF()
}

// Corrupted builds a CorruptedStreamError at the current position
func (d *Decoder) Corrupted(err error, format string, args ...any) error {
	return &CorruptedStreamError{
		Offset: d.Position(),
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

func (d *Decoder) ReadString() (string, error) {
	s, err := d.stream.ReadString()
	if err != nil {
		return "", d.Corrupted(err, "read string")
	}
	return s, nil
}

func (d *Decoder) ReadUint() (uint64, error) {
	v, err := d.stream.ReadUint()
	if err != nil {
		return 0, d.Corrupted(err, "read uint")
	}
	return v, nil
}

// ReadUint32 reads an unsigned integer that must fit in 32 bits
func (d *Decoder) ReadUint32() (uint32, error) {
	v, err := d.ReadUint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, d.Corrupted(nil, "value %d does not fit in 32 bits", v)
	}
	return uint32(v), nil
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.stream.ReadBool()
	if err != nil {
		return false, d.Corrupted(err, "read bool")
	}
	return b, nil
}

func (d *Decoder) ReadName() (name.Name, error) {
	var n name.Name
	if _, _, err := d.stream.Decode(&n); err != nil {
		return name.Anonymous, d.Corrupted(err, "read name")
	}
	return n, nil
}

func (d *Decoder) ReadNames() ([]name.Name, error) {
	if t, err := d.stream.PeekType(); err != nil || t != cbor.CborTypeArray {
		return nil, d.Corrupted(err, "expected name list")
	}
	var names []name.Name
	if _, _, err := d.stream.Decode(&names); err != nil {
		return nil, d.Corrupted(err, "read name list")
	}
	return names, nil
}

func (d *Decoder) ReadExpr() (*Expr, error) {
	if d.depth >= d.maxDepth {
		return nil, d.Corrupted(nil, "expression nested deeper than %d", d.maxDepth)
	}
	d.depth++
	defer func() { d.depth-- }()
	tag, err := d.ReadUint()
	if err != nil {
		return nil, err
	}
	kind := Kind(tag)
	if tag > math.MaxUint8 || !kind.valid() {
		return nil, d.Corrupted(nil, "unknown expression kind %d", tag)
	}
	switch kind {
	case KindBVar:
		v, err := d.ReadUint()
		if err != nil {
			return nil, err
		}
		return BVar(v), nil
	case KindSort:
		v, err := d.ReadUint()
		if err != nil {
			return nil, err
		}
		return Sort(v), nil
	case KindConst:
		n, err := d.ReadName()
		if err != nil {
			return nil, err
		}
		return Const(n), nil
	case KindApp:
		fn, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		arg, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		return App(fn, arg), nil
	case KindLambda, KindPi:
		n, err := d.ReadName()
		if err != nil {
			return nil, err
		}
		binderType, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		body, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		if kind == KindLambda {
			return Lambda(n, binderType, body), nil
		}
		return Pi(n, binderType, body), nil
	case KindMData:
		m, err := d.readKVMap()
		if err != nil {
			return nil, err
		}
		inner, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		return MData(m, inner), nil
	case KindMacro:
		return d.readMacro()
	}
	return nil, d.Corrupted(nil, "unknown expression kind %d", tag)
}

func (d *Decoder) readMacro() (*Expr, error) {
	numArgs, err := d.ReadUint()
	if err != nil {
		return nil, err
	}
	// Every argument takes at least one byte, which bounds any honest count
	if remaining := d.stream.Remaining(); numArgs > uint64(remaining) {
		return nil, d.Corrupted(nil, "macro argument count %d exceeds stream size", numArgs)
	}
	args := make([]*Expr, 0, numArgs)
	for range numArgs {
		arg, err := d.ReadExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	opcode, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	reader, ok := d.macros.Lookup(opcode)
	if !ok {
		return nil, d.Corrupted(nil, "unknown macro opcode %q", opcode)
	}
	return reader(d, args)
}

func (d *Decoder) readKVMap() (KVMap, error) {
	count, err := d.ReadUint()
	if err != nil {
		return KVMap{}, err
	}
	var m KVMap
	for range count {
		key, err := d.ReadName()
		if err != nil {
			return KVMap{}, err
		}
		if m.Contains(key) {
			return KVMap{}, d.Corrupted(nil, "duplicate metadata key %s", key)
		}
		valueKind, err := d.ReadUint()
		if err != nil {
			return KVMap{}, err
		}
		switch valueKind {
		case dataKindBool:
			v, err := d.ReadBool()
			if err != nil {
				return KVMap{}, err
			}
			m = m.SetBool(key, v)
		case dataKindNat:
			v, err := d.ReadUint()
			if err != nil {
				return KVMap{}, err
			}
			m = m.SetNat(key, v)
		case dataKindName:
			v, err := d.ReadName()
			if err != nil {
				return KVMap{}, err
			}
			m = m.SetName(key, v)
		case dataKindString:
			v, err := d.ReadString()
			if err != nil {
				return KVMap{}, err
			}
			m = m.SetString(key, v)
		default:
			return KVMap{}, d.Corrupted(nil, "unknown metadata value kind %d", valueKind)
		}
	}
	return m, nil
}
