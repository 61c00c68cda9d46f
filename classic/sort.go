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

import (
	"sort"
	"strconv"

	"github.com/nglevel/ngscript/model"
)

// AssignSortKeys computes each line's stable-sort key: 1000 *
// index-in-fixed-order, plus item*10 and piece*1 for inventory
// commands. Lines whose command is unknown get key 9999.
func AssignSortKeys(lines []model.SourceLine) {
	for i := range lines {
		l := &lines[i]
		idx, ok := fixedOrderIndex[l.Command]
		if !ok {
			l.SortKey = 9999
			continue
		}
		key := idx * 1000
		if inventoryCommands[l.Command] {
			item, piece := inventoryArgs(l.Args)
			key += item*inventoryItemFactor + piece*inventoryPieceFactor
		}
		l.SortKey = key
	}
}

// inventoryArgs extracts the item number (first argument) and, for
// combo commands, the piece number (second argument, 1 or 2) used in
// the sort key. Malformed numbers contribute 0.
func inventoryArgs(args []string) (item, piece int) {
	if len(args) > 0 {
		item, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		piece, _ = strconv.Atoi(args[1])
	}
	return item, piece
}

// StableSort sorts lines by SortKey, preserving original order for
// equal keys.
func StableSort(lines []model.SourceLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].SortKey < lines[j].SortKey
	})
}
