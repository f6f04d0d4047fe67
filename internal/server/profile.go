package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
)

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	JobTitle *string `json:"job_title"`
}

type updateGoalsRequest struct {
	MonthlyCommission *float64 `json:"monthly_commission"`
	DailyCalls        *int     `json:"daily_calls"`
}

func (s *Server) handleGetProfile(c *gin.Context) {
	profile, err := s.profilesvc.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.profilesvc.UpdateProfile(c.Request.Context(), currentUserID(c), profiledomain.UpdateProfileRequest{
		FullName: req.FullName,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.handleGetProfile(c)
}

func (s *Server) handleUpdateGoals(c *gin.Context) {
	var req updateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.profilesvc.UpdateGoals(c.Request.Context(), currentUserID(c), profiledomain.UpdateGoalsRequest{
		MonthlyCommission: req.MonthlyCommission,
		DailyCalls:        req.DailyCalls,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.handleGetProfile(c)
}
