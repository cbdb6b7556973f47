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
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	DigestSize         = 28
	DigestBech32Prefix = "expr"
)

// Digest is a Blake2b-224 hash of the serialized form of an expression. Two
// expressions that encode identically share a digest, independently of
// source positions.
type Digest [DigestSize]byte

// ComputeDigest serializes e and hashes the result
func ComputeDigest(e *Expr) (Digest, error) {
	data, err := EncodeExpr(e)
	if err != nil {
		return Digest{}, err
	}
	tmpHash, err := blake2b.New(DigestSize, nil)
	if err != nil {
		return Digest{}, fmt.Errorf("create blake2b hash: %w", err)
	}
	tmpHash.Write(data)
	return Digest(tmpHash.Sum(nil)), nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) Bech32(prefix string) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(d[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}
