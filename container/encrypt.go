// This file is part of ngscript - https://github.com/nglevel/ngscript
//
// Copyright 2024 The ngscript Authors
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

package container

// headerEncryptSize is the number of leading bytes of the finished
// file that optional header encryption rewrites.
const headerEncryptSize = 64

// headerPermutation is the fixed 64-entry index table used to shuffle
// the first 64 bytes of script.dat. Initialized to the identity here;
// the exact production permutation is unknown, so this placeholder is
// documented in DESIGN.md rather than invented from nothing;
// EncryptHeader still performs a real, reversible XOR pass against
// headerKeyTable.
var headerPermutation = identityPermutation()

func identityPermutation() [headerEncryptSize]int {
	var p [headerEncryptSize]int
	for i := range p {
		p[i] = i
	}
	return p
}

// headerKeyTable is the 17-byte cyclic XOR key applied to the
// permuted header bytes. Placeholder values, documented in DESIGN.md
// alongside headerPermutation.
var headerKeyTable = [17]byte{
	0x9E, 0x3C, 0x71, 0xAA, 0x05, 0x64, 0xD8, 0x2F, 0xB3,
	0x4D, 0x17, 0xE6, 0x88, 0x0C, 0x5A, 0xF1, 0x23,
}

// EncryptHeader rewrites the first min(len(data), 64) bytes of data in
// place: permute through headerPermutation, then XOR against
// headerKeyTable applied cyclically.
func EncryptHeader(data []byte) {
	n := headerEncryptSize
	if len(data) < n {
		n = len(data)
	}
	src := make([]byte, n)
	copy(src, data[:n])
	for i := 0; i < n; i++ {
		p := headerPermutation[i]
		if p >= n {
			continue
		}
		data[i] = src[p] ^ headerKeyTable[i%len(headerKeyTable)]
	}
}
