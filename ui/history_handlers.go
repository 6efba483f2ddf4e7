package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

// handleHistory lists recent detections
func (s *Server) handleHistory(c *gin.Context) {
	limit := queryInt(c, "limit", defaultHistoryLimit)

	entries, err := s.service.History(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if isHTMX(c) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, s.render.RenderHistoryList(entries))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detections": entries,
		"count":      len(entries),
	})
}

// handleHistoryEntry returns one recorded detection
func (s *Server) handleHistoryEntry(c *gin.Context) {
	entry, err := s.service.HistoryEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// handleHistoryStats returns detection counts per entity type
func (s *Server) handleHistoryStats(c *gin.Context) {
	counts, err := s.service.TypeCounts(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{
		"by_type": counts,
		"total":   total,
	})
}
