// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini adapts the Google Gen AI SDK to the session package.
//
// Endpoint opens one chat per session.SessionRequest using the Gemini API
// backend. Handle.Send returns the reply text, or a *RequestError whose
// message is the SDK error text and whose Kind classifies the failure.
package gemini
