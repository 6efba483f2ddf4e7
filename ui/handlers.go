package ui

import (
	"net/http"

	"structdetect/app"
	"structdetect/internal/errors"

	"github.com/gin-gonic/gin"
)

// detectRequest keeps Text as a pointer so an empty paste is distinct from a missing field
type detectRequest struct {
	Text *string `json:"text" form:"text"`
}

func (s *Server) bindDetectRequest(c *gin.Context) (string, bool) {
	var req detectRequest
	if err := c.ShouldBind(&req); err != nil {
		s.respondError(c, bindError(err))
		return "", false
	}
	if req.Text == nil {
		s.respondError(c, errors.InvalidInput("text is required"))
		return "", false
	}
	return *req.Text, true
}

type batchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// handleCheck answers the cheap pre-check used for live paste feedback
func (s *Server) handleCheck(c *gin.Context) {
	text, ok := s.bindDetectRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.service.Check(c.Request.Context(), text))
}

// handleDetect runs full detection; HTMX callers receive the preview card
func (s *Server) handleDetect(c *gin.Context) {
	text, ok := s.bindDetectRequest(c)
	if !ok {
		return
	}

	outcome, err := s.service.Detect(c.Request.Context(), text)
	s.respondOutcome(c, outcome, err)
}

// handleDetectBatch detects several pastes at once
func (s *Server) handleDetectBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	items, err := s.service.DetectBatch(c.Request.Context(), req.Texts)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": items,
		"count":   len(items),
	})
}

// handleDetectFile detects an uploaded spreadsheet or text file
func (s *Server) handleDetectFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondOutcome(c, nil, bindError(err))
		return
	}
	if fileHeader.Size > s.uploadLimit {
		s.respondOutcome(c, nil, errors.PayloadTooLarge("uploaded file exceeds size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.respondOutcome(c, nil, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer file.Close()

	outcome, err := s.service.DetectFile(c.Request.Context(), fileHeader.Filename, file)
	s.respondOutcome(c, outcome, err)
}

// respondOutcome writes a detection result. HTMX callers get the preview card
// or the error fragment with status 200, since HTMX only swaps 2xx responses.
func (s *Server) respondOutcome(c *gin.Context, outcome *app.DetectionOutcome, err error) {
	if isHTMX(c) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err != nil {
			if errors.HTTPStatus(err) >= http.StatusInternalServerError {
				s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			c.String(http.StatusOK, s.render.RenderDetectError(errors.GetCode(err), err.Error()))
			return
		}
		c.String(http.StatusOK, s.render.RenderPreviewCard(outcome))
		return
	}

	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
