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
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/blinklabs-io/eqns/name"
	"github.com/cespare/xxhash/v2"
)

// DataValue is a value stored in a KVMap
type DataValue interface {
	isDataValue()
	TypeName() string
}

type BoolValue bool

type NatValue uint64

type NameValue name.Name

type StringValue string

func (BoolValue) isDataValue()   {}
func (NatValue) isDataValue()    {}
func (NameValue) isDataValue()   {}
func (StringValue) isDataValue() {}

func (BoolValue) TypeName() string   { return "bool" }
func (NatValue) TypeName() string    { return "nat" }
func (NameValue) TypeName() string   { return "name" }
func (StringValue) TypeName() string { return "string" }

// Stream tags for DataValue variants
const (
	dataKindBool uint64 = iota
	dataKindNat
	dataKindName
	dataKindString
)

type kvEntry struct {
	key   name.Name
	value DataValue
}

// KVMap is an immutable map from names to data values. Entries are kept
// sorted by key, so two maps holding the same bindings are equal regardless
// of the order they were built in. The zero value is the empty map.
type KVMap struct {
	entries []kvEntry
}

func (m KVMap) Len() int {
	return len(m.entries)
}

func (m KVMap) find(key name.Name) (int, bool) {
	return slices.BinarySearchFunc(
		m.entries,
		key,
		func(e kvEntry, k name.Name) int {
			return strings.Compare(string(e.key), string(k))
		},
	)
}

// Set returns a new map with key bound to value
func (m KVMap) Set(key name.Name, value DataValue) KVMap {
	idx, found := m.find(key)
	entries := make([]kvEntry, 0, len(m.entries)+1)
	entries = append(entries, m.entries[:idx]...)
	entries = append(entries, kvEntry{key: key, value: value})
	if found {
		idx++
	}
	entries = append(entries, m.entries[idx:]...)
	return KVMap{entries: entries}
}

func (m KVMap) Get(key name.Name) (DataValue, bool) {
	idx, found := m.find(key)
	if !found {
		return nil, false
	}
	return m.entries[idx].value, true
}

func (m KVMap) Contains(key name.Name) bool {
	_, found := m.find(key)
	return found
}

func (m KVMap) SetBool(key name.Name, v bool) KVMap {
	return m.Set(key, BoolValue(v))
}

// GetBool returns the boolean bound to key. ok is false if the key is
// missing or bound to a value of another type.
func (m KVMap) GetBool(key name.Name) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(BoolValue)
	return bool(b), ok
}

func (m KVMap) SetNat(key name.Name, v uint64) KVMap {
	return m.Set(key, NatValue(v))
}

func (m KVMap) GetNat(key name.Name) (uint64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(NatValue)
	return uint64(n), ok
}

func (m KVMap) SetName(key name.Name, v name.Name) KVMap {
	return m.Set(key, NameValue(v))
}

func (m KVMap) GetName(key name.Name) (name.Name, bool) {
	v, ok := m.Get(key)
	if !ok {
		return name.Anonymous, false
	}
	n, ok := v.(NameValue)
	return name.Name(n), ok
}

func (m KVMap) SetString(key name.Name, v string) KVMap {
	return m.Set(key, StringValue(v))
}

func (m KVMap) GetString(key name.Name) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(StringValue)
	return string(s), ok
}

// Keys returns the bound keys in sorted order
func (m KVMap) Keys() []name.Name {
	ret := make([]name.Name, 0, len(m.entries))
	for _, e := range m.entries {
		ret = append(ret, e.key)
	}
	return ret
}

func (m KVMap) Equal(other KVMap) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i].key != other.entries[i].key {
			return false
		}
		if m.entries[i].value != other.entries[i].value {
			return false
		}
	}
	return true
}

func (m KVMap) hash() uint64 {
	h := xxhash.New()
	var b [8]byte
	for _, e := range m.entries {
		_, _ = h.WriteString(string(e.key))
		switch v := e.value.(type) {
		case BoolValue:
			binary.LittleEndian.PutUint64(b[:], dataKindBool)
			_, _ = h.Write(b[:])
			if v {
				_, _ = h.Write([]byte{1})
			} else {
				_, _ = h.Write([]byte{0})
			}
		case NatValue:
			binary.LittleEndian.PutUint64(b[:], dataKindNat)
			_, _ = h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], uint64(v))
			_, _ = h.Write(b[:])
		case NameValue:
			binary.LittleEndian.PutUint64(b[:], dataKindName)
			_, _ = h.Write(b[:])
			_, _ = h.WriteString(string(v))
		case StringValue:
			binary.LittleEndian.PutUint64(b[:], dataKindString)
			_, _ = h.Write(b[:])
			_, _ = h.WriteString(string(v))
		}
	}
	return h.Sum64()
}

func (m KVMap) String() string {
	var sb strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(e.key.String())
		sb.WriteString(":=")
		switch v := e.value.(type) {
		case BoolValue:
			sb.WriteString(strconv.FormatBool(bool(v)))
		case NatValue:
			sb.WriteString(strconv.FormatUint(uint64(v), 10))
		case NameValue:
			sb.WriteString("`" + name.Name(v).String())
		case StringValue:
			sb.WriteString(strconv.Quote(string(v)))
		}
	}
	return sb.String()
}
