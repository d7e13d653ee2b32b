// Copyright 2023 The acquirecloud Authors
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
/*
Package forgetting contains the Map container - a thread-safe bounded
collection of key-value associations with LRU (Least Recently Used) pull out
discipline. The Map holds no more associations than the limit provided on its
creation. When a new association is added to the full Map, the association
which was not found for the longest time is forgotten to free the room. The
container uses golang generics, so it can be instantiated for different key
and value types.
*/
package forgetting
