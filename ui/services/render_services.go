package services

import (
	"html/template"
	"strings"

	"structdetect/app"
	"structdetect/domain/structured"
	"structdetect/internal"
	"structdetect/ui/templates/fragments"
)

type RenderService struct {
	templates *template.Template
	logger    *internal.Logger
}

func NewRenderService(templates *template.Template, logger *internal.Logger) *RenderService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RenderService{
		templates: templates,
		logger:    logger,
	}
}

// RenderPreviewCard renders the import preview for one detection
func (s *RenderService) RenderPreviewCard(outcome *app.DetectionOutcome) string {
	return s.render(fragments.PreviewCard, outcome,
		`<div class="detection-card detection-card--error">Error rendering preview</div>`)
}

// RenderDetectError renders the message shown in place of a preview
func (s *RenderService) RenderDetectError(code, message string) string {
	data := struct {
		Code    string
		Message string
	}{
		Code:    code,
		Message: message,
	}
	return s.render(fragments.DetectError, data,
		`<div class="detection-card detection-card--error">Error rendering message</div>`)
}

// RenderHistoryList renders recent detections
func (s *RenderService) RenderHistoryList(entries []*structured.HistoryEntry) string {
	data := struct {
		Entries []*structured.HistoryEntry
	}{
		Entries: entries,
	}
	return s.render(fragments.HistoryList, data,
		`<div class="detection-history detection-history--error">Error rendering history</div>`)
}

func (s *RenderService) render(path string, data interface{}, fallback string) string {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, fragments.Name(path), data); err != nil {
		s.logger.Error("[RenderService] Failed to render %s: %v", path, err)
		return fallback
	}
	return buf.String()
}
