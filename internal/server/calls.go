package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetCalls(c *gin.Context) {
	userID := currentUserID(c)

	// Month boundaries are detected lazily, on the first counter read
	// after the calendar flips.
	if _, err := s.calltracker.CheckRollover(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	total, err := s.calltracker.Total(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_calls": total})
}

func (s *Server) handleLogCall(c *gin.Context) {
	userID := currentUserID(c)

	if _, err := s.calltracker.CheckRollover(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	total, err := s.calltracker.LogCall(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_calls": total})
}

func (s *Server) handleResetCalls(c *gin.Context) {
	if err := s.calltracker.ResetCalls(c.Request.Context(), currentUserID(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_calls": 0})
}

func (s *Server) handleCallHistory(c *gin.Context) {
	profile, err := s.profilesvc.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call_history": profile.CallHistory})
}
