package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	"structdetect/domain/core"
	"structdetect/domain/structured"
	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/internal/errors"
	"structdetect/ports"

	"golang.org/x/sync/semaphore"
)

// ReviewThreshold is the confidence below which a detection is routed to
// manual review before import
const ReviewThreshold = 0.6

// DetectionService runs pasted or uploaded text through the detector and
// records successful detections
type DetectionService struct {
	detector ports.StructuredDetector
	profiler ports.ProfilerPort
	reader   ports.TabularReaderPort
	history  ports.DetectionHistoryRepository
	config   config.DetectionConfig
	logger   *internal.Logger
}

// CheckResult is the outcome of the cheap pre-check
type CheckResult struct {
	Structured bool `json:"structured"`
	Bytes      int  `json:"bytes"`
}

// DetectionOutcome wraps a detection with everything an import preview needs
type DetectionOutcome struct {
	ID             core.DetectionID                   `json:"id,omitempty" yaml:"id,omitempty"`
	Result         *structured.DetectedStructuredData `json:"result" yaml:"result"`
	Preview        []structured.Record                `json:"preview" yaml:"preview"`
	Profiles       []structured.ColumnProfile         `json:"profiles,omitempty" yaml:"profiles,omitempty"`
	ReviewRequired bool                               `json:"review_required" yaml:"review_required"`
	Source         structured.Source                  `json:"source" yaml:"source"`
	Fingerprint    core.Fingerprint                   `json:"fingerprint" yaml:"fingerprint"`
	RuntimeMs      int64                              `json:"runtime_ms" yaml:"runtime_ms"`
}

// BatchItem is one slot of a batch result, in input order
type BatchItem struct {
	Index   int               `json:"index"`
	Outcome *DetectionOutcome `json:"outcome,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
}

// NewDetectionService creates a detection service. profiler, reader and
// history may be nil; the matching features are then disabled.
func NewDetectionService(
	detector ports.StructuredDetector,
	profiler ports.ProfilerPort,
	reader ports.TabularReaderPort,
	history ports.DetectionHistoryRepository,
	cfg config.DetectionConfig,
	logger *internal.Logger,
) *DetectionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	return &DetectionService{
		detector: detector,
		profiler: profiler,
		reader:   reader,
		history:  history,
		config:   cfg,
		logger:   logger,
	}
}

// Check runs only the pre-check, for live feedback while the user types
func (s *DetectionService) Check(ctx context.Context, text string) CheckResult {
	return CheckResult{
		Structured: s.detector.LooksLikeStructuredData(text),
		Bytes:      len(text),
	}
}

// Detect runs full detection on pasted text
func (s *DetectionService) Detect(ctx context.Context, text string) (*DetectionOutcome, error) {
	return s.detect(ctx, text, structured.SourcePaste)
}

// CheckFile converts an upload to text and runs the pre-check on it. A file
// with no content is reported as not structured.
func (s *DetectionService) CheckFile(ctx context.Context, filename string, r io.Reader) (CheckResult, error) {
	text, err := s.readFile(ctx, filename, r)
	if err != nil {
		if stderrors.Is(err, core.ErrEmptySource) {
			return CheckResult{}, nil
		}
		return CheckResult{}, err
	}
	return s.Check(ctx, text), nil
}

// DetectFile converts an upload to text and detects it
func (s *DetectionService) DetectFile(ctx context.Context, filename string, r io.Reader) (*DetectionOutcome, error) {
	text, err := s.readFile(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	return s.detect(ctx, text, structured.SourceFile)
}

func (s *DetectionService) readFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	if s.reader == nil {
		return "", errors.UnsupportedMedia("file uploads are not enabled")
	}
	if !s.reader.Supports(filename) {
		return "", classify(core.NewUnsupportedFormatError(filename))
	}

	text, err := s.reader.ReadText(ctx, filename, r)
	if err != nil {
		s.logger.Warn("[DetectionService] failed to read %s: %v", filename, err)
		return "", classify(err)
	}
	return text, nil
}

// DetectBatch detects many texts with bounded parallelism. Per-item
// failures are reported in the item; only an oversized batch or a
// cancelled context fails the whole call.
func (s *DetectionService) DetectBatch(ctx context.Context, texts []string) ([]BatchItem, error) {
	if len(texts) == 0 {
		return nil, errors.InvalidInput("batch is empty")
	}
	if len(texts) > s.config.MaxBatchSize {
		return nil, classify(fmt.Errorf("%w: %d items > %d", core.ErrBatchTooLarge, len(texts), s.config.MaxBatchSize))
	}

	startTime := time.Now()
	items := make([]BatchItem, len(texts))
	sem := semaphore.NewWeighted(int64(s.config.BatchConcurrency))

	var wg sync.WaitGroup
	for i, text := range texts {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer sem.Release(1)

			item := BatchItem{Index: i}
			outcome, err := s.detect(ctx, text, structured.SourceBatch)
			if err != nil {
				item.Error = err.Error()
				item.Code = errors.GetCode(err)
			} else {
				item.Outcome = outcome
			}
			items[i] = item
		}(i, text)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("[DetectionService] batch of %d processed in %dms", len(texts), time.Since(startTime).Milliseconds())
	return items, nil
}

// History lists recent detections, newest first
func (s *DetectionService) History(ctx context.Context, limit int) ([]*structured.HistoryEntry, error) {
	if s.history == nil {
		return []*structured.HistoryEntry{}, nil
	}
	if limit <= 0 || limit > s.config.HistoryCapacity {
		limit = s.config.HistoryCapacity
	}

	entries, err := s.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to list detections"))
	}
	return entries, nil
}

// HistoryEntry returns one recorded detection
func (s *DetectionService) HistoryEntry(ctx context.Context, rawID string) (*structured.HistoryEntry, error) {
	id, err := core.ParseDetectionID(rawID)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.history == nil {
		return nil, errors.NotFound("detection")
	}

	entry, err := s.history.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, classify(err)
		}
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	return entry, nil
}

// TypeCounts tallies recorded detections per entity type
func (s *DetectionService) TypeCounts(ctx context.Context) (map[structured.EntityType]int, error) {
	if s.history == nil {
		return map[structured.EntityType]int{}, nil
	}
	counts, err := s.history.CountByType(ctx)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	return counts, nil
}

func (s *DetectionService) detect(ctx context.Context, text string, source structured.Source) (*DetectionOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(text) > s.config.MaxInputBytes {
		return nil, classify(core.NewInputTooLargeError(len(text), s.config.MaxInputBytes))
	}

	startTime := time.Now()
	data := s.detector.Detect(text)
	if data == nil {
		return nil, classify(fmt.Errorf("%w (%d bytes)", core.ErrNotStructured, len(text)))
	}

	outcome := &DetectionOutcome{
		Result:         data,
		Preview:        data.PreviewRows(s.config.PreviewRows),
		ReviewRequired: NeedsReview(data),
		Source:         source,
		Fingerprint:    core.NewFingerprint(data.RawText),
	}
	if s.profiler != nil {
		outcome.Profiles = s.profiler.ProfileColumns(data)
	}

	if s.config.HistoryEnabled && s.history != nil {
		entry := structured.NewHistoryEntry(data, source)
		if err := s.history.Save(ctx, entry); err != nil {
			// History is an audit trail; a failed write must not lose the detection
			s.logger.Warn("[DetectionService] failed to record detection %s: %v", entry.ID, err)
		} else {
			outcome.ID = entry.ID
		}
	}

	outcome.RuntimeMs = time.Since(startTime).Milliseconds()
	s.logger.Debug("[DetectionService] %s: %s (confidence %.2f, fingerprint %s)",
		source, data.Summary, data.Confidence, outcome.Fingerprint.Short())

	return outcome, nil
}

// NeedsReview reports whether a detection should be confirmed by a person
func NeedsReview(data *structured.DetectedStructuredData) bool {
	return data.Type == structured.TypeUnknown || data.Confidence < ReviewThreshold
}

// classify attaches the application error code matching a domain error
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, core.ErrInputTooLarge), stderrors.Is(err, core.ErrBatchTooLarge):
		return errors.WithCode(errors.CodePayloadTooLarge, err)
	case stderrors.Is(err, core.ErrUnsupportedFormat):
		return errors.WithCode(errors.CodeUnsupportedMedia, err)
	case stderrors.Is(err, core.ErrNotStructured):
		return errors.WithCode(errors.CodeNotStructured, err)
	case stderrors.Is(err, core.ErrNotFound):
		return errors.WithCode(errors.CodeNotFound, err)
	case stderrors.Is(err, core.ErrEmptySource), stderrors.Is(err, core.ErrUnreadableSource):
		return errors.WithCode(errors.CodeInvalidInput, err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return errors.WithCode(errors.CodeInternalError, err)
	}
}
