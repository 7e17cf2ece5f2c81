/*
Copyright 2024-2025 the Unikorn Authors.
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

// Package api provides integration test utilities for the posts API.
//
// # Separate Client Implementation
//
// This package maintains a raw HTTP client (APIClient) alongside the cached
// postsapi.Client.  The raw client observes the server directly, so suites
// can tell what the cache served apart from what the server holds:
//
// 1. **API Contract Validation**: Having an independent client implementation
// serves as a form of triangulation on API correctness. Any legitimate change
// to the OpenAPI document must have a compensating change in this client.
//
// 2. **Test-Specific Features**: The raw client includes features tailored
// for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and response bodies
//
// # Servers
//
// Suites run against API_BASE_URL when it is set, otherwise every spec
// starts a seeded in-process server with StartServer.
package api
