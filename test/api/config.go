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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/pkg/server/handler"
)

var ErrInvalidConfig = errors.New("invalid test configuration")

type TestConfig struct {
	// BaseURL points at a running mock server, an in-process server is
	// started for every spec when empty.
	BaseURL            string
	Username           string
	Password           string
	RequestTimeout     time.Duration
	TestTimeout        time.Duration
	RetryDelay         time.Duration
	RequireAuth        bool
	ErrorProneFailures int
	SkipIntegration    bool
	LogRequests        bool
	LogResponses       bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Every value has a default, so the suites run without any configuration.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:            os.Getenv("API_BASE_URL"),
		Username:           getStringWithDefault("TEST_USERNAME", "test-automation"),
		Password:           getStringWithDefault("TEST_PASSWORD", "password"),
		RequestTimeout:     getDurationWithDefault("REQUEST_TIMEOUT", 10*time.Second),
		TestTimeout:        getDurationWithDefault("TEST_TIMEOUT", time.Minute),
		RetryDelay:         getDurationWithDefault("RETRY_DELAY", 10*time.Millisecond),
		RequireAuth:        getBoolWithDefault("REQUIRE_AUTH", false),
		ErrorProneFailures: getIntWithDefault("ERROR_PRONE_FAILURES", handler.DefaultErrorProneFailures),
		SkipIntegration:    getBoolWithDefault("SKIP_INTEGRATION", false),
		LogRequests:        getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:       getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validate checks the configuration is usable.
func validate(config *TestConfig) error {
	if config.BaseURL != "" {
		if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
			return fmt.Errorf("%w: API_BASE_URL: %w", ErrInvalidConfig, err)
		}
	}

	// The retry suites expect the diagnostic endpoint to eventually succeed.
	if config.ErrorProneFailures < 0 || config.ErrorProneFailures > query.DefaultMaxRetries {
		return fmt.Errorf("%w: ERROR_PRONE_FAILURES must be between 0 and %d", ErrInvalidConfig, query.DefaultMaxRetries)
	}

	return nil
}
