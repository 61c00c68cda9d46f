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

package classic

import "github.com/nglevel/ngscript/model"

// Byte tags for the classic directive dialect.
const (
	tagFMV          byte = 0x80
	tagLevel             = model.TagLevel
	tagTitle             = model.TagTitle
	tagTerminator        = model.TagTerminator
	tagCut          byte = 0x84
	tagResidentCut1 byte = 0x85
	tagLayer1       byte = 0x89
	tagLayer2       byte = 0x8A
	tagUVRotate     byte = 0x8B
	tagLegend       byte = 0x8C
	tagLensFlare    byte = 0x8D
	tagMirror       byte = 0x8E
	tagFog          byte = 0x8F
	tagAnimatingMIP byte = 0x90
	tagLoadCamera   byte = 0x91
	tagResetHUB     byte = 0x92
	tagKeyBase      byte = 0x93
	tagPuzzleBase   byte = 0x9F
	tagPickupBase   byte = 0xAB
	tagExamineBase  byte = 0xAF
	tagKeyComboBase byte = 0xB2
	tagPuzComboBase byte = 0xC2
	tagPikComboBase byte = 0xD2
)

// maxInventoryItem is the largest item number accepted by the
// Key/Puzzle/Pickup/Examine family and their combos (the historical
// engine supports up to 12 of each).
const maxInventoryItem = 12

// flagBits maps a flag-only directive name (e.g. YoungLara=, Horizon=)
// to the bit it sets in the section's 16-bit flags word.
var flagBits = map[string]uint16{
	"YoungLara=": 1 << 0,
	"Horizon=":   1 << 1,
}

// fixedOrder lists classic commands in the order their stable sort key
// is computed against: key = 1000*index(command) (+ item*10 +piece for
// inventory commands). Names not present here receive key 9999, which
// places them after the first ten entries (FMV= through Legend=) and
// before the rest, in original order.
var fixedOrder = []string{
	"FMV=",
	"Cut=",
	"ResidentCut1=", "ResidentCut2=", "ResidentCut3=", "ResidentCut4=",
	"Layer1=", "Layer2=",
	"UVRotate=",
	"Legend=",
	"LensFlare=",
	"Mirror=",
	"Fog=",
	"AnimatingMIP=",
	"LoadCamera=",
	"ResetHUB=",
	"YoungLara=", "Horizon=",
	"Key=", "KeyCombo=",
	"Puzzle=", "PuzzleCombo=",
	"Pickup=", "PickupCombo=",
	"Examine=",
}

var fixedOrderIndex = func() map[string]int {
	m := make(map[string]int, len(fixedOrder))
	for i, n := range fixedOrder {
		m[n] = i
	}
	return m
}()

// inventoryItemFactor and inventoryPieceFactor are the per-item and
// per-combo-piece multipliers added to the base sort key.
const (
	inventoryItemFactor  = 10
	inventoryPieceFactor = 1
)

// IsReserved reports whether name is a classic [Level]/[Title]
// directive, which takes precedence over an NG schema of the same
// name: a name in the NG schema catalog that is not on the classic
// reserved list is treated as an NG command.
func IsReserved(name string) bool {
	if name == "Name=" {
		return true
	}
	_, ok := fixedOrderIndex[name]
	return ok
}

var inventoryCommands = map[string]bool{
	"Key=": true, "KeyCombo=": true,
	"Puzzle=": true, "PuzzleCombo=": true,
	"Pickup=": true, "PickupCombo=": true,
	"Examine=": true,
}
