// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the triage
// console.
//
// The configuration file is selected by the --config flag or, failing
// that, the TRIAGE_CONFIG environment variable. Without either, the
// console runs on [Default]: a backend at http://localhost:8000, a 15
// second request timeout, and 4 second notices. There is no file
// search beyond those two sources.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches.
//
// The backend base URL is environment-level: TRIAGE_API_BASE_URL
// overrides the file. [LoadDotenv] reads a .env file into the process
// environment first, without replacing variables that are already set.
// ${VAR} and ${VAR:-default} patterns in the base URL are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with API, Notices, Logging
//   - [Default] -- returns a Config with development defaults
//   - [Load] -- resolves the file path and loads it
//   - [LoadFile] -- loads a specific file
//
// This package depends on no other triage-console packages.
package config
