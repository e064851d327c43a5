// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the gemini-chat TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Blue - Brand color for the header title, prompt, and Send button
  - Teal - "You" label
  - Violet - "Gemini" label
  - Amber - "System" label and the busy spinner
  - Rose - "System Error" label and alerts

# Theme (theme.go)

NewTheme detects the terminal color profile with termenv and builds every
style once. Label maps a model.Sender to its bold label style, and
SeparatorLine draws the muted rule that follows each transcript entry.

	theme := styles.NewTheme()
	line := theme.Label(model.SenderAssistant).Render("Gemini") + ": " + text
*/
package styles
