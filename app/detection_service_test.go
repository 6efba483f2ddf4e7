package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"structdetect/adapters/detector"
	"structdetect/adapters/excel"
	"structdetect/adapters/memory"
	"structdetect/adapters/profile"
	"structdetect/domain/core"
	"structdetect/domain/structured"
	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const rosterText = "Name\tEmail\tBelt Rank\n" +
	"John\tjohn@example.com\tWhite\n" +
	"Jane\tjane@example.com\tBlue\n" +
	"Bob\tbob@example.com\tGreen"

func newTestService(t *testing.T, mutate func(*config.DetectionConfig)) (*DetectionService, *memory.DetectionHistory) {
	t.Helper()
	cfg := config.DefaultDetectionConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	history := memory.NewDetectionHistory(cfg.HistoryCapacity)
	svc := NewDetectionService(
		detector.New(),
		profile.NewProfiler(profile.DefaultConfig()),
		excel.NewDataReader(excel.DefaultConfig(), internal.NewNopLogger()),
		history,
		cfg,
		internal.NewNopLogger(),
	)
	return svc, history
}

func TestDetectionService_Check(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	assert.True(t, svc.Check(ctx, rosterText).Structured)
	assert.False(t, svc.Check(ctx, "just a sentence").Structured)
	assert.Equal(t, 3, svc.Check(ctx, "abc").Bytes)
}

func TestDetectionService_Detect(t *testing.T) {
	svc, history := newTestService(t, func(c *config.DetectionConfig) { c.PreviewRows = 2 })
	ctx := context.Background()

	outcome, err := svc.Detect(ctx, rosterText)
	require.NoError(t, err)

	assert.Equal(t, structured.TypeStudentRoster, outcome.Result.Type)
	assert.Equal(t, 0.95, outcome.Result.Confidence)
	assert.Len(t, outcome.Result.Rows, 3)
	assert.Len(t, outcome.Preview, 2)
	assert.Len(t, outcome.Profiles, 3)
	assert.Equal(t, structured.KindEmail, outcome.Profiles[1].Kind)
	assert.False(t, outcome.ReviewRequired)
	assert.Equal(t, structured.SourcePaste, outcome.Source)
	assert.Equal(t, core.NewFingerprint(rosterText), outcome.Fingerprint)
	require.NotEmpty(t, outcome.ID)

	stored, err := history.GetByID(ctx, outcome.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.RowCount)
	assert.Equal(t, outcome.Result.Summary, stored.Summary)
}

func TestDetectionService_ReviewRequired(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		text   string
		review bool
	}{
		{"unknown headers", "Foo,Bar\n1,2", true},
		{"weak roster match", "Name,A1,B2,C3,X4,Y5\nx,1,2,3,4,5", true},
		{"strong roster match", rosterText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := svc.Detect(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.review, outcome.ReviewRequired)
		})
	}
}

func TestDetectionService_DetectErrors(t *testing.T) {
	svc, history := newTestService(t, func(c *config.DetectionConfig) { c.MaxInputBytes = 64 })
	ctx := context.Background()

	_, err := svc.Detect(ctx, "hello world")
	require.Error(t, err)
	assert.True(t, core.IsNotStructured(err))
	assert.Equal(t, errors.CodeNotStructured, errors.GetCode(err))

	_, err = svc.Detect(ctx, strings.Repeat("a,b\n", 20))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInputTooLarge)
	assert.Equal(t, errors.CodePayloadTooLarge, errors.GetCode(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Detect(cancelled, rosterText[:40])
	assert.ErrorIs(t, err, context.Canceled)

	recent, err := history.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestDetectionService_HistoryDisabled(t *testing.T) {
	svc, history := newTestService(t, func(c *config.DetectionConfig) { c.HistoryEnabled = false })
	ctx := context.Background()

	outcome, err := svc.Detect(ctx, rosterText)
	require.NoError(t, err)
	assert.Empty(t, outcome.ID)

	recent, err := history.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Save(ctx context.Context, entry *structured.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockHistory) GetByID(ctx context.Context, id core.DetectionID) (*structured.HistoryEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*structured.HistoryEntry)
	return entry, args.Error(1)
}

func (m *mockHistory) ListRecent(ctx context.Context, limit int) ([]*structured.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]*structured.HistoryEntry)
	return entries, args.Error(1)
}

func (m *mockHistory) CountByType(ctx context.Context) (map[structured.EntityType]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[structured.EntityType]int)
	return counts, args.Error(1)
}

func TestDetectionService_HistoryFailureKeepsDetection(t *testing.T) {
	history := new(mockHistory)
	history.On("Save", mock.Anything, mock.MatchedBy(func(e *structured.HistoryEntry) bool {
		return e.Type == structured.TypeStudentRoster && e.RowCount == 3
	})).Return(fmt.Errorf("connection refused")).Once()

	svc := NewDetectionService(detector.New(), nil, nil, history, config.DefaultDetectionConfig(), internal.NewNopLogger())

	outcome, err := svc.Detect(context.Background(), rosterText)
	require.NoError(t, err)
	assert.Empty(t, outcome.ID)
	assert.Nil(t, outcome.Profiles)
	history.AssertExpectations(t)
}

func TestDetectionService_HistoryErrorsAreDatabaseErrors(t *testing.T) {
	history := new(mockHistory)
	history.On("ListRecent", mock.Anything, 500).Return(nil, fmt.Errorf("connection reset")).Once()
	history.On("CountByType", mock.Anything).Return(nil, fmt.Errorf("connection reset")).Once()
	history.On("GetByID", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection reset")).Once()

	svc := NewDetectionService(detector.New(), nil, nil, history, config.DefaultDetectionConfig(), internal.NewNopLogger())

	_, err := svc.History(context.Background(), 0)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))

	_, err = svc.TypeCounts(context.Background())
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))

	_, err = svc.HistoryEntry(context.Background(), core.NewDetectionID().String())
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
	history.AssertExpectations(t)
}

func TestDetectionService_DetectFile(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	csv := "Lead Name,Source,Status\nAmy,Website,New\nBen,Referral,Contacted\n"
	outcome, err := svc.DetectFile(ctx, "leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, structured.TypeLeadList, outcome.Result.Type)
	assert.Equal(t, structured.SourceFile, outcome.Source)
	assert.Equal(t, "Lead Name\tSource\tStatus\nAmy\tWebsite\tNew\nBen\tReferral\tContacted", outcome.Result.RawText)

	_, err = svc.DetectFile(ctx, "leads.pdf", strings.NewReader(csv))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedMedia, errors.GetCode(err))

	_, err = svc.DetectFile(ctx, "empty.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptySource)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	noReader := NewDetectionService(detector.New(), nil, nil, nil, config.DefaultDetectionConfig(), nil)
	_, err = noReader.DetectFile(ctx, "leads.csv", strings.NewReader(csv))
	assert.Equal(t, errors.CodeUnsupportedMedia, errors.GetCode(err))
}

func TestDetectionService_DetectFileErrorCodes(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.DetectFile(ctx, "broken.xlsx", strings.NewReader("not a zip archive"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnreadableSource)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.DetectFile(ctx, "leads.csv", iotest.ErrReader(fmt.Errorf("disk read failed")))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternalError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "disk read failed")
}

func TestDetectionService_CheckFile(t *testing.T) {
	svc, history := newTestService(t, nil)
	ctx := context.Background()

	result, err := svc.CheckFile(ctx, "leads.csv", strings.NewReader("Lead,Source\nAmy,Website\n"))
	require.NoError(t, err)
	assert.True(t, result.Structured)

	result, err = svc.CheckFile(ctx, "notes.txt", strings.NewReader("just a note"))
	require.NoError(t, err)
	assert.False(t, result.Structured)

	result, err = svc.CheckFile(ctx, "empty.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, result.Structured)

	_, err = svc.CheckFile(ctx, "leads.pdf", strings.NewReader("%PDF"))
	assert.Equal(t, errors.CodeUnsupportedMedia, errors.GetCode(err))

	entries, err := history.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClassifyDefaultsToInternal(t *testing.T) {
	assert.Equal(t, errors.CodeInternalError, errors.GetCode(classify(fmt.Errorf("unexpected"))))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(classify(core.ErrEmptySource)))
	assert.Equal(t, errors.CodeNotStructured, errors.GetCode(classify(core.ErrNotStructured)))
	assert.ErrorIs(t, classify(context.Canceled), context.Canceled)
	assert.Nil(t, classify(nil))
}

func TestDetectionService_DetectBatch(t *testing.T) {
	svc, history := newTestService(t, func(c *config.DetectionConfig) { c.BatchConcurrency = 2 })
	ctx := context.Background()

	texts := []string{
		rosterText,
		"not a table",
		"Class,Day,Time\nBJJ,Mon,18:00",
		"Lead,Status\nAmy,New",
	}

	items, err := svc.DetectBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, items, len(texts))

	for i, item := range items {
		assert.Equal(t, i, item.Index)
	}
	assert.Equal(t, structured.TypeStudentRoster, items[0].Outcome.Result.Type)
	assert.Nil(t, items[1].Outcome)
	assert.Equal(t, errors.CodeNotStructured, items[1].Code)
	assert.NotEmpty(t, items[1].Error)
	assert.Equal(t, structured.TypeClassSchedule, items[2].Outcome.Result.Type)
	assert.Equal(t, structured.TypeLeadList, items[3].Outcome.Result.Type)
	assert.Equal(t, structured.SourceBatch, items[3].Outcome.Source)

	counts, err := history.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[structured.TypeStudentRoster]+counts[structured.TypeClassSchedule]+counts[structured.TypeLeadList])
}

func TestDetectionService_DetectBatchLimits(t *testing.T) {
	svc, _ := newTestService(t, func(c *config.DetectionConfig) { c.MaxBatchSize = 2 })
	ctx := context.Background()

	_, err := svc.DetectBatch(ctx, nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.DetectBatch(ctx, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, core.ErrBatchTooLarge)
	assert.Equal(t, errors.CodePayloadTooLarge, errors.GetCode(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.DetectBatch(cancelled, []string{rosterText})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectionService_History(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Detect(ctx, rosterText)
	require.NoError(t, err)
	second, err := svc.Detect(ctx, "Class,Day\nBJJ,Mon")
	require.NoError(t, err)

	entries, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	entry, err := svc.HistoryEntry(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, structured.TypeStudentRoster, entry.Type)

	_, err = svc.HistoryEntry(ctx, "not-a-uuid")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.HistoryEntry(ctx, core.NewDetectionID().String())
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	counts, err := svc.TypeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[structured.TypeStudentRoster])
	assert.Equal(t, 1, counts[structured.TypeClassSchedule])
}
