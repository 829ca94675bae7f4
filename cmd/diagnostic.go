// Copyright © 2026 The Quill authors

package cmd

import (
	"io"

	"github.com/quill-lang/quill/diagnostic"
	"github.com/quill-lang/quill/lint"
	"github.com/spf13/viper"
)

func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(viper.GetString("color"))
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// lintAnnotation converts a lint finding for the renderer and adds the
// suppression hint.
func lintAnnotation(ld lint.Diagnostic) diagnostic.Diagnostic {
	d := ld.Annotation()
	d.Notes = append(d.Notes, "to suppress: add \"// nolint:"+d.Code+"\" at the end of this line")
	return d
}

// renderLintDiagnostics renders lint diagnostics with source excerpts.
func renderLintDiagnostics(w io.Writer, r *diagnostic.Renderer, diags []lint.Diagnostic) error {
	ds := make([]diagnostic.Diagnostic, len(diags))
	for i, ld := range diags {
		ds[i] = lintAnnotation(ld)
	}
	return r.RenderAll(w, ds)
}
