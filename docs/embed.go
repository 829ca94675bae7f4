// Copyright © 2026 The Quill authors

// Package docs embeds the Quill language guide for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
