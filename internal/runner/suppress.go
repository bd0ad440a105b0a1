package runner

import (
	"strings"

	"github.com/donaldgifford/phpspace/internal/lint"
	"github.com/donaldgifford/phpspace/internal/parser"
)

// suppressMarkers silence every issue on the line where a comment
// containing one of them starts.
var suppressMarkers = []string{"NOSONAR", "phpspace:ignore"}

func suppress(tree *parser.Tree, issues []lint.Issue) []lint.Issue {
	if len(issues) == 0 {
		return issues
	}

	quiet := make(map[int]bool)
	for _, c := range tree.Comments {
		for _, m := range suppressMarkers {
			if strings.Contains(c.Text, m) {
				quiet[c.Line] = true
				break
			}
		}
	}
	if len(quiet) == 0 {
		return issues
	}

	kept := issues[:0:0]
	for _, i := range issues {
		if !quiet[i.Line] {
			kept = append(kept, i)
		}
	}
	return kept
}
