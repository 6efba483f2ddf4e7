package detector

import (
	"strings"

	"structdetect/domain/structured"
)

// Vocabulary terms are matched as substrings of the lowercased header
var (
	rosterVocabulary = []string{
		"name", "first name", "firstname", "first_name", "last name", "lastname", "last_name",
		"student", "email", "e-mail", "phone", "mobile", "belt", "rank", "age", "dob",
		"date of birth", "birthday", "guardian", "parent", "contact", "address",
		"program", "level",
	}

	scheduleVocabulary = []string{
		"class", "time", "day", "instructor", "room", "location",
		"start", "end", "duration", "program", "level", "schedule",
	}

	leadVocabulary = []string{
		"lead", "prospect", "source", "status", "interest", "inquiry", "enquiry",
		"trial", "follow up", "followup", "follow-up", "follow_up",
	}
)

// HeaderScores counts headers matching each vocabulary
type HeaderScores struct {
	Roster   int `json:"roster"`
	Schedule int `json:"schedule"`
	Lead     int `json:"lead"`
}

// Max returns the highest of the three counts
func (s HeaderScores) Max() int {
	return max(s.Roster, s.Schedule, s.Lead)
}

// ScoreHeaders counts, per vocabulary, the headers containing any of its terms
func ScoreHeaders(headers []string) HeaderScores {
	var scores HeaderScores
	for _, header := range headers {
		h := strings.ToLower(header)
		if containsAny(h, rosterVocabulary) {
			scores.Roster++
		}
		if containsAny(h, scheduleVocabulary) {
			scores.Schedule++
		}
		if containsAny(h, leadVocabulary) {
			scores.Lead++
		}
	}
	return scores
}

// ClassifyHeaders picks the entity type with the strictly highest score.
// Ties resolve roster, then schedule, then lead. All-zero scores are unknown.
func ClassifyHeaders(headers []string) (structured.EntityType, int) {
	return pickType(ScoreHeaders(headers))
}

func pickType(scores HeaderScores) (structured.EntityType, int) {
	best := scores.Max()
	switch {
	case best == 0:
		return structured.TypeUnknown, 0
	case scores.Roster == best:
		return structured.TypeStudentRoster, best
	case scores.Schedule == best:
		return structured.TypeClassSchedule, best
	default:
		return structured.TypeLeadList, best
	}
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
