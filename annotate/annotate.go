// Package annotate inserts commented-out custom-endpoint call sites into node
// source files. It operates on raw text line by line; it has no understanding
// of the target language's syntax.
package annotate

import (
	"fmt"
	"strings"
)

// AddImport inserts the helper import immediately after the last line
// referencing the import namespace. Reports whether an insertion happened:
// files that already carry the helper marker, or have no qualifying import
// line at all, are returned unchanged.
func (r Rules) AddImport(content string) (string, bool) {
	if strings.Contains(content, r.HelperMarker) {
		return content, false
	}

	lines := strings.Split(content, "\n")
	last := -1
	for i, line := range lines {
		if strings.Contains(line, r.ImportNamespace) {
			last = i
		}
	}
	if last < 0 {
		return content, false
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:last+1]...)
	out = append(out, r.ImportLine)
	out = append(out, lines[last+1:]...)
	return strings.Join(out, "\n"), true
}

// AddConfigComments inserts an indentation-matched boilerplate block above
// each recognized call site and returns the number of blocks inserted. The
// whole file is checked for the applied marker first, so a second run (with
// any provider) leaves an already annotated file alone.
func (r Rules) AddConfigComments(content, provider string) (string, int) {
	if strings.Contains(content, r.AppliedMarker) {
		return content, 0
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	count := 0
	for _, line := range lines {
		if r.matchesCallSite(line) {
			out = append(out, r.commentBlock(indentOf(line), provider)...)
			count++
		}
		out = append(out, line)
	}
	if count == 0 {
		return content, 0
	}
	return strings.Join(out, "\n"), count
}

func (r Rules) matchesCallSite(line string) bool {
	for _, marker := range r.CallSiteMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// indentOf returns the leading whitespace of line.
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// commentBlock builds the boilerplate inserted above one call site.
func (r Rules) commentBlock(indent, provider string) []string {
	p := indent + r.CommentPrefix
	return []string{
		p + " TODO: " + r.AppliedMarker,
		p + " Uncomment and modify the following lines:",
		p + " custom_api_base, custom_auth_kwargs = apply_custom_config(",
		p + fmt.Sprintf("     provider=%q,", provider),
		p + "     auth_kwargs=kwargs,",
		p + "     path=path  # Make sure 'path' variable exists",
		p + " )",
		p + fmt.Sprintf(" custom_path = transform_path_for_custom_api(path, provider=%q)", provider),
		p,
		p + " Then modify the operation to use:",
		p + "   - path=custom_path instead of path=path",
		p + "   - api_base=custom_api_base",
		p + "   - auth_kwargs=custom_auth_kwargs instead of auth_kwargs=kwargs",
		indent,
	}
}
