// Package fragments provides template path constants for organized template management
package fragments

import "strings"

// Template path constants for organized fragment access
const (
	// Detection templates
	PreviewCard = "detection/preview_card.html"
	DetectError = "detection/detect_error.html"

	// History templates
	HistoryList = "history/history_list.html"
)

// All lists every fragment the server must be able to render
var All = []string{PreviewCard, DetectError, HistoryList}

// Name returns the template name without directory and extension
func Name(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".html")
}
