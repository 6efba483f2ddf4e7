package detector

import (
	"testing"

	"structdetect/domain/structured"

	"github.com/stretchr/testify/assert"
)

func TestScoreHeadersSubstringMatch(t *testing.T) {
	scores := ScoreHeaders([]string{"STUDENT_ID", "Parent Phone", "Trial Date", "Room"})
	assert.Equal(t, 2, scores.Roster)
	assert.Equal(t, 1, scores.Schedule)
	assert.Equal(t, 1, scores.Lead)
}

func TestScoreHeadersCountsEachHeaderOncePerType(t *testing.T) {
	scores := ScoreHeaders([]string{"Student First Name Email"})
	assert.Equal(t, HeaderScores{Roster: 1}, scores)
}

func TestClassifyHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected structured.EntityType
		score    int
	}{
		{"roster", []string{"Name", "Belt", "DOB"}, structured.TypeStudentRoster, 3},
		{"schedule", []string{"Class", "Instructor", "Room"}, structured.TypeClassSchedule, 3},
		{"lead", []string{"Prospect", "Inquiry", "Follow Up"}, structured.TypeLeadList, 3},
		{"unknown", []string{"Foo", "Bar"}, structured.TypeUnknown, 0},
		// Program and Level sit in both roster and schedule vocabularies.
		{"roster beats schedule on tie", []string{"Program", "Level"}, structured.TypeStudentRoster, 2},
		{"roster beats lead on tie", []string{"Email", "Source"}, structured.TypeStudentRoster, 1},
		{"schedule beats lead on tie", []string{"Room", "Status"}, structured.TypeClassSchedule, 1},
		{"strict max wins", []string{"Email", "Source", "Status"}, structured.TypeLeadList, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entityType, score := ClassifyHeaders(tt.headers)
			assert.Equal(t, tt.expected, entityType)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestTieBreakRosterOverScheduleAboveLead(t *testing.T) {
	headers := []string{"Student", "Room", "Program"}
	scores := ScoreHeaders(headers)
	assert.Equal(t, scores.Roster, scores.Schedule)
	assert.Greater(t, scores.Roster, scores.Lead)

	entityType, _ := ClassifyHeaders(headers)
	assert.Equal(t, structured.TypeStudentRoster, entityType)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		entityType  structured.EntityType
		maxScore    int
		headerCount int
		wantType    structured.EntityType
		want        float64
	}{
		{"no match", structured.TypeUnknown, 0, 4, structured.TypeUnknown, 0.3},
		{"one of four", structured.TypeLeadList, 1, 4, structured.TypeLeadList, 0.625},
		{"half", structured.TypeClassSchedule, 2, 4, structured.TypeClassSchedule, 0.75},
		{"all capped", structured.TypeStudentRoster, 4, 4, structured.TypeStudentRoster, 0.95},
		{"nine of ten", structured.TypeStudentRoster, 9, 10, structured.TypeStudentRoster, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, got := Confidence(tt.entityType, tt.maxScore, tt.headerCount)
			assert.Equal(t, tt.wantType, gotType)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t,
		"Detected lead list with 1 entry (columns: Lead, Source)",
		Summarize(structured.TypeLeadList, 1, []string{"Lead", "Source"}))
	assert.Equal(t,
		"Detected data with 3 entries (columns: A, B, C, D...)",
		Summarize(structured.TypeUnknown, 3, []string{"A", "B", "C", "D", "E"}))
	assert.Equal(t,
		"Detected class schedule with 2 entries (columns: Class, Day, Time, Room)",
		Summarize(structured.TypeClassSchedule, 2, []string{"Class", "Day", "Time", "Room"}))
}
