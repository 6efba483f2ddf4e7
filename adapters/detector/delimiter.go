package detector

import (
	"regexp"
	"strings"

	"structdetect/domain/structured"
)

// whitespaceRun matches two or more consecutive whitespace characters
var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// DetectDelimiter proposes a column separator for a single line.
// Candidates are tried in fixed priority order and the first one that
// splits the line into two or more parts wins; a single occurrence is
// enough. Column-count stability is left to LooksLikeStructuredData.
func DetectDelimiter(line string) (structured.Delimiter, bool) {
	for _, d := range structured.CandidateDelimiters {
		if len(strings.Split(line, string(d))) >= 2 {
			return d, true
		}
	}

	if whitespaceRun.MatchString(line) {
		return structured.DelimiterFixedWidth, true
	}

	return "", false
}
