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
	"fmt"
	"strings"
)

// DumpStream renders each item of a CBOR item sequence on its own line,
// prefixed with its byte offset. Decoding stops at the first malformed item,
// which is reported in place of the rest of the stream.
func DumpStream(data []byte) string {
	var ret strings.Builder
	d, err := NewStreamDecoder(data)
	if err != nil {
		return fmt.Sprintf("error: %s\n", err)
	}
	for !d.EOF() {
		var item any
		start, _, err := d.Decode(&item)
		if err != nil {
			fmt.Fprintf(&ret, "%04d: error: %s\n", d.Position(), err)
			break
		}
		fmt.Fprintf(&ret, "%04d: ", start)
		dumpItem(&ret, item, "")
	}
	return ret.String()
}

func dumpItem(ret *strings.Builder, item any, prefix string) {
	switch v := item.(type) {
	case []any:
		if len(v) == 0 {
			ret.WriteString("[]\n")
			return
		}
		ret.WriteString("[\n")
		newPrefix := prefix + "  "
		for _, val := range v {
			ret.WriteString("      " + newPrefix)
			dumpItem(ret, val, newPrefix)
		}
		ret.WriteString("      " + prefix + "]\n")
	default:
		fmt.Fprintf(ret, "%#v\n", v)
	}
}
