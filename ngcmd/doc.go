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

// Package ngcmd compiles NG commands: a schema-driven encoder that
// turns an evaluated model.NGCommand into a little-endian 16-bit-word
// stream, enforcing per-schema occurrence caps and performing the
// TriggerGroup -> TriggerGroupWord downgrade.
package ngcmd
