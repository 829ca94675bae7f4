// Copyright © 2026 The Quill authors

package main

import "github.com/quill-lang/quill/cmd"

func main() {
	cmd.Execute()
}
