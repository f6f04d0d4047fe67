package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	appointmentdomain "github.com/setterhq/setter-crm/internal/appointment/domain"
)

type createAppointmentRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	DurationMinutes *int    `json:"duration_minutes"`
	ProspectID      *string `json:"prospect_id"`
}

type updateAppointmentRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	ProspectID      *string `json:"prospect_id"`
}

func parseOptionalID(raw *string) (*snowflake.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Server) handleListAppointments(c *gin.Context) {
	appointments, err := s.appointmentsvc.List(c.Request.Context(), currentScope(c), c.Query("from"), c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (s *Server) handleCreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	prospectID, err := parseOptionalID(req.ProspectID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	appointment, err := s.appointmentsvc.Create(c.Request.Context(), currentScope(c), appointmentdomain.CreateRequest{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		ProspectID:      prospectID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (s *Server) handleGetAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	appointment, err := s.appointmentsvc.Get(c.Request.Context(), currentScope(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (s *Server) handleUpdateAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	prospectID, err := parseOptionalID(req.ProspectID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	appointment, err := s.appointmentsvc.Update(c.Request.Context(), currentScope(c), id, appointmentdomain.UpdateRequest{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		ProspectID:      prospectID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (s *Server) handleSetAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	appointment, err := s.appointmentsvc.SetStatus(c.Request.Context(), currentScope(c), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (s *Server) handleDeleteAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.appointmentsvc.Delete(c.Request.Context(), currentScope(c), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
