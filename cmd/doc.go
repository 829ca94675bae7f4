// Copyright © 2026 The Quill authors

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/docs"
	"github.com/quill-lang/quill/lint"
	"github.com/spf13/cobra"
)

var (
	docWidth int
	docList  bool
)

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc [flags] [TOPIC]",
	Short: "Show the Quill language guide",
	Long: `Show the built-in Quill language guide.

Without a topic the whole guide is printed. A topic selects one section by
its title (any unambiguous prefix, case-insensitive). Two generated topics
are available as well: "builtins" lists the builtin functions with their
result types and "checks" describes every lint check.

Examples:
  quill doc                  Print the whole guide
  quill doc structs          Print the section on structs
  quill doc builtins         List builtins and their result types
  quill doc --list           List the topics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if docList {
			for _, t := range docTopics() {
				fmt.Fprintln(out, t) //nolint:errcheck // best-effort CLI output
			}
			return nil
		}
		topic := ""
		if len(args) == 1 {
			topic = args[0]
		}
		text, err := docText(topic, docWidth)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, wordwrap.String(text, docWidth))
		return err
	},
}

type docSection struct {
	title string
	body  string
}

// guideSections splits the guide on its "## " headings. The text before the
// first heading is not a topic.
func guideSections() []docSection {
	var out []docSection
	for _, chunk := range strings.Split(docs.LangGuide, "\n## ")[1:] {
		title, _, _ := strings.Cut(chunk, "\n")
		out = append(out, docSection{title: title, body: "## " + strings.TrimRight(chunk, "\n") + "\n"})
	}
	return out
}

func docTopics() []string {
	var topics []string
	for _, s := range guideSections() {
		topics = append(topics, strings.ToLower(s.title))
	}
	return append(topics, "builtins", "checks")
}

func docText(topic string, width int) (string, error) {
	switch strings.ToLower(topic) {
	case "":
		return docs.LangGuide, nil
	case "builtins":
		return builtinsDoc(), nil
	case "checks":
		return "## Checks\n\n" + lint.AnalyzerDoc(true, width), nil
	}
	var matches []docSection
	for _, s := range guideSections() {
		title := strings.ToLower(s.title)
		if title == strings.ToLower(topic) {
			return s.body, nil
		}
		if strings.HasPrefix(title, strings.ToLower(topic)) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no topic %q (try quill doc --list)", topic)
	case 1:
		return matches[0].body, nil
	default:
		titles := make([]string, len(matches))
		for i, m := range matches {
			titles[i] = strings.ToLower(m.title)
		}
		return "", fmt.Errorf("topic %q is ambiguous: %s", topic, strings.Join(titles, ", "))
	}
}

func builtinsDoc() string {
	var b strings.Builder
	b.WriteString("## Builtins\n\n")
	for _, name := range analysis.BuiltinNames() {
		t, _ := analysis.BuiltinReturnType(name)
		fmt.Fprintf(&b, "    %-12s %s\n", name, t)
	}
	b.WriteString("\nOther builtins (min, max, abs, ...) return a type that depends on\ntheir arguments and are not inferred.\n")
	return b.String()
}

func init() {
	rootCmd.AddCommand(docCmd)

	docCmd.Flags().IntVarP(&docWidth, "width", "w", 80,
		"Wrap text at this column.")
	docCmd.Flags().BoolVarP(&docList, "list", "l", false,
		"List the available topics.")
}
