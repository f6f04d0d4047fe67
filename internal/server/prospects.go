package server

import (
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/setterhq/setter-crm/internal/export"
	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/setterhq/setter-crm/internal/prospect/pipeline"
)

func pathID(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return 0, false
	}
	return id, true
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

type createProspectRequest struct {
	Name           string   `json:"name" binding:"required"`
	Platform       string   `json:"platform"`
	Handle         string   `json:"handle"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	Value          *float64 `json:"value"`
	CommissionRate *float64 `json:"commission_rate"`
}

type updateProspectRequest struct {
	Name           *string  `json:"name"`
	Platform       *string  `json:"platform"`
	Handle         *string  `json:"handle"`
	Value          *float64 `json:"value"`
	CommissionRate *float64 `json:"commission_rate"`
	QualBudget     *bool    `json:"qual_budget"`
	QualAuthority  *bool    `json:"qual_authority"`
	QualNeed       *bool    `json:"qual_need"`
	QualTiming     *bool    `json:"qual_timing"`
}

func (s *Server) handleListProspects(c *gin.Context) {
	scope := currentScope(c)
	prospects, err := s.prospectsvc.List(c.Request.Context(), scope)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Filtering by creator is an owner/admin view.
	creator := ""
	if scope.IsAdmin() {
		creator = c.Query("creator")
	}

	filtered := pipeline.Apply(prospects, pipeline.Query{
		Search:   c.Query("search"),
		Platform: c.Query("platform"),
		Priority: c.Query("priority"),
		Creator:  creator,
		MinValue: queryFloat(c, "min_value"),
		MaxValue: queryFloat(c, "max_value"),
		SortBy:   c.Query("sort_by"),
	})
	c.JSON(http.StatusOK, gin.H{"prospects": filtered})
}

func (s *Server) handleListArchivedProspects(c *gin.Context) {
	prospects, err := s.prospectsvc.ListArchived(c.Request.Context(), currentScope(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prospects": prospects})
}

func (s *Server) handleCreateProspect(c *gin.Context) {
	var req createProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	prospect, err := s.prospectsvc.Create(c.Request.Context(), currentScope(c), prospectdomain.CreateRequest{
		Name:           req.Name,
		Platform:       req.Platform,
		Handle:         req.Handle,
		Status:         req.Status,
		Priority:       req.Priority,
		Value:          req.Value,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prospect)
}

func (s *Server) handleGetProspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	prospect, err := s.prospectsvc.Get(c.Request.Context(), currentScope(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (s *Server) handleUpdateProspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	prospect, err := s.prospectsvc.Update(c.Request.Context(), currentScope(c), id, prospectdomain.UpdateRequest{
		Name:           req.Name,
		Platform:       req.Platform,
		Handle:         req.Handle,
		Value:          req.Value,
		CommissionRate: req.CommissionRate,
		QualBudget:     req.QualBudget,
		QualAuthority:  req.QualAuthority,
		QualNeed:       req.QualNeed,
		QualTiming:     req.QualTiming,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (s *Server) handleDeleteProspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.prospectsvc.Delete(c.Request.Context(), currentScope(c), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleSetProspectStatus(c *gin.Context) {
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

	prospect, err := s.prospectsvc.SetStatus(c.Request.Context(), currentScope(c), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (s *Server) handleCycleProspectPriority(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	prospect, err := s.prospectsvc.CyclePriority(c.Request.Context(), currentScope(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (s *Server) handleMarkProspectContacted(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	prospect, err := s.prospectsvc.MarkContacted(c.Request.Context(), currentScope(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (s *Server) handleArchiveProspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.prospectsvc.Archive(c.Request.Context(), currentScope(c), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

func (s *Server) handleRestoreProspect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.prospectsvc.Restore(c.Request.Context(), currentScope(c), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

func (s *Server) handleListProspectNotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	notes, err := s.prospectsvc.Notes(c.Request.Context(), currentScope(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (s *Server) handleAddProspectNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	note, err := s.prospectsvc.AddNote(c.Request.Context(), currentScope(c), id, req.Content)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *Server) handleDeleteProspectNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteID")
	if !ok {
		return
	}
	if err := s.prospectsvc.DeleteNote(c.Request.Context(), currentScope(c), id, noteID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleExportProspects(c *gin.Context) {
	prospects, err := s.prospectsvc.List(c.Request.Context(), currentScope(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := export.Filename(s.clock.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.Prospects(prospects)))
}
