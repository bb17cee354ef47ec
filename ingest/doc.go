// Copyright 2025 Poiesic Systems
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


// Package ingest loads indicator catalogs into storage and embeds them.
//
// A catalog is read from CSV, validated, and stored before any embedding
// happens. Embedding then runs in concurrent batches over a worker pool;
// a batch that fails to embed is logged and skipped, leaving its records
// keyword-searchable until a later reembedding pass picks them up.
package ingest
