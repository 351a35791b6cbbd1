package insights

import (
	"regexp"
	"strings"
)

var boldRegex = regexp.MustCompile(`\*\*(.+?)\*\*`)

// RenderMarkup converts the markdown subset used by the summarization collaborator to HTML:
// "### " headings, "**bold**" spans and "- " list items, with consecutive items wrapped in one <ul>.
// Everything else, including HTML, passes through untouched.
func RenderMarkup(text string) string {
	lines := strings.Split(text, "\n")

	out := make([]string, 0, len(lines))
	var listItems []string
	flushList := func() {
		if len(listItems) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(listItems, "\n")+"</ul>")
		listItems = nil
	}

	for _, line := range lines {
		line = boldRegex.ReplaceAllString(line, "<strong>$1</strong>")

		if item, ok := strings.CutPrefix(line, "- "); ok {
			listItems = append(listItems, "<li>"+item+"</li>")
			continue
		}
		flushList()

		if heading, ok := strings.CutPrefix(line, "### "); ok {
			out = append(out, "<h3>"+heading+"</h3>")
			continue
		}
		out = append(out, line)
	}
	flushList()

	return strings.Join(out, "\n")
}
