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

package handler

import (
	"github.com/spf13/pflag"
)

// DefaultErrorProneFailures is how many calls fail before one succeeds.
const DefaultErrorProneFailures = 2

type Options struct {
	// ErrorProneFailures is the number of consecutive failures the
	// diagnostic endpoint returns before a success, the cycle repeats.
	ErrorProneFailures int
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.ErrorProneFailures, "error-prone-failures", DefaultErrorProneFailures, "Number of failures the error-prone endpoint returns before succeeding")
}
