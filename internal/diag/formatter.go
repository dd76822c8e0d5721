package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Formatter formats diagnostics in a Rust-style layout with source snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // Cache of source files by filename
}

// NewFormatter creates a new diagnostic formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source text for filename so Format does not
// need to read it from disk.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", fmt.Errorf("no source registered for anonymous input")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format writes a diagnostic, with a source snippet when the source is known.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	primary, label := f.primarySpan(d)
	if primary.IsValid() {
		if src, err := f.LoadSource(primary.Filename); err == nil {
			f.printSnippet(src, primary, label)
		} else {
			fmt.Fprintf(f.out, "  --> %s\n", primary.String())
		}
	}

	f.printHelp(d)
}

// primarySpan picks the first primary labeled span, falling back to d.Span.
func (f *Formatter) primarySpan(d Diagnostic) (Span, string) {
	for _, ls := range d.LabeledSpans {
		if ls.Style == "primary" {
			return ls.Span, ls.Label
		}
	}
	return d.Span, ""
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the offending line with one line of leading context and
// a caret underline beneath the span.
func (f *Formatter) printSnippet(src string, span Span, label string) {
	lines := strings.Split(src, "\n")
	if span.Line > len(lines) {
		fmt.Fprintf(f.out, "  --> %s\n", span.String())
		return
	}

	first := max(1, span.Line-1)
	width := len(fmt.Sprintf("%d", span.Line))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(f.out, "%s--> %s\n", gutter, span.String())
	fmt.Fprintf(f.out, "%s |\n", gutter)

	for n := first; n <= span.Line; n++ {
		fmt.Fprintf(f.out, "%*d | %s\n", width, n, strings.TrimRight(lines[n-1], "\r"))
	}

	content := lines[span.Line-1]
	var pad strings.Builder
	col := 1
	for _, r := range content {
		if col >= span.Column {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col++
	}

	carets := 1
	if span.End > span.Start && span.End <= len(src) {
		text := src[span.Start:span.End]
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[:nl]
		}
		carets = max(1, utf8.RuneCountInString(text))
	}

	underline := pad.String() + strings.Repeat("^", carets)
	if label != "" {
		underline += " " + label
	}
	fmt.Fprintf(f.out, "%s | %s\n", gutter, underline)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}

	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}
