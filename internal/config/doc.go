// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for gemini-chat.
//
// Configuration is read once at startup, with sensible defaults,
// environment variable overrides, and validation. It is never written back.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GEMINI_API_KEY, GEMINI_CHAT_*)
//   - ~/.gemini-chat/config.toml
//   - Built-in defaults
//
// A .env file in the working directory is loaded by the cli package before
// Load runs, so its values arrive here as environment variables.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if !cfg.HasCredential() {
//	    // show the API key alert
//	}
package config
