/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package query is a small data fetching layer for JSON HTTP APIs.
//
// An API is declared as a set of named endpoints.  Queries read data and
// declare the cache tags they provide, mutations write data and declare the
// cache tags they invalidate.  Query results are cached by endpoint and
// argument, concurrent identical queries share a single request, and when a
// mutation invalidates a tag every cached query providing a matching tag is
// marked stale and its subscribers are notified.
//
// # Tags
//
// Tag types form a closed set declared when the API is created.  A tag
// identifier is either a concrete entity ID, the collection sentinel ListID,
// or the zero value, which matches every identifier of its type.
//
// # Transport
//
// Requests are issued by a BaseQuery.  NewFetchBaseQuery provides the default
// JSON over HTTP implementation, Retry wraps any BaseQuery with a bounded
// retry policy.  Errors wrapped with Fail are never retried.
package query
