package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/setterhq/setter-crm/internal/analytics"
	"github.com/setterhq/setter-crm/internal/prospect/pipeline"
)

func (s *Server) handleAnalytics(c *gin.Context) {
	scope := currentScope(c)
	prospects, err := s.prospectsvc.List(c.Request.Context(), scope)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Setters aggregate over their own prospects only; owners and admins
	// see the whole agency.
	if scope.HasAgency() && !scope.IsAdmin() {
		prospects = pipeline.OwnedBy(prospects, currentUserID(c))
	}

	summary := analytics.Summarize(prospects, s.clock.Now())

	profile, err := s.profilesvc.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	goals := profile.Goals.Data()

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"goals": gin.H{
			"monthly_commission":  goals.MonthlyCommission,
			"daily_calls":         goals.DailyCalls,
			"commission_progress": analytics.GoalProgress(summary.RealizedCommission, goals.MonthlyCommission),
		},
	})
}
