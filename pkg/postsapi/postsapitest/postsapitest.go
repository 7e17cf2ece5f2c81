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

// Package postsapitest provides fault injection for the posts API client.
package postsapitest

import (
	"fmt"

	"github.com/unikorn-cloud/posts/pkg/postsapi"
	"github.com/unikorn-cloud/posts/pkg/query/querytest"
)

// FakeError is a placeholder failure payload.
type FakeError struct {
	Fake string `json:"fake"`
}

func (e *FakeError) Error() string {
	return fmt.Sprintf("injected failure: %s", e.Fake)
}

// ErrFakeLogin is returned by the first login of a client built with
// WithLoginFault.
//
//nolint:gochecknoglobals
var ErrFakeLogin = &FakeError{Fake: "error"}

// WithLoginFault makes the first login fail with ErrFakeLogin, without
// retrying and without contacting the server.  Later logins behave normally.
func WithLoginFault() postsapi.Option {
	return postsapi.WithEndpoints(func(e postsapi.Endpoints) postsapi.Endpoints {
		e.Login = e.Login.WithMiddleware(querytest.FailFirstAttempt(ErrFakeLogin))

		return e
	})
}
