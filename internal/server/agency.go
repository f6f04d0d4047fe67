package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	authdomain "github.com/setterhq/setter-crm/internal/auth/domain"
)

type createAgencyRequest struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url"`
}

type updateAgencyRequest struct {
	Name    *string `json:"name"`
	LogoURL *string `json:"logo_url"`
}

type inviteMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

func (s *Server) handleCreateAgency(c *gin.Context) {
	var req createAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	agency, err := s.agencysvc.Create(c.Request.Context(), currentUserID(c), agencydomain.CreateAgencyRequest{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agency)
}

func (s *Server) handleGetAgency(c *gin.Context) {
	agency, err := s.agencysvc.Get(c.Request.Context(), currentScope(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, agency)
}

func (s *Server) handleUpdateAgency(c *gin.Context) {
	var req updateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.agencysvc.Update(c.Request.Context(), currentScope(c), agencydomain.UpdateAgencyRequest{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.handleGetAgency(c)
}

func (s *Server) handleListAgencyMembers(c *gin.Context) {
	members, err := s.agencysvc.Members(c.Request.Context(), currentScope(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) handleRemoveAgencyMember(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	if err := s.agencysvc.RemoveMember(c.Request.Context(), currentScope(c), userID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (s *Server) handleInviteMember(c *gin.Context) {
	var req inviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	invite, err := s.agencysvc.InviteMember(c.Request.Context(), currentScope(c), agencydomain.InviteRequest{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

func (s *Server) handleListAgencyInvitations(c *gin.Context) {
	invites, err := s.agencysvc.AgencyInvitations(c.Request.Context(), currentScope(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": invites})
}

// currentUserEmail loads the caller's email, which invitation checks
// key on.
func (s *Server) currentUserEmail(c *gin.Context) (string, error) {
	user, err := s.users.FindByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", authdomain.ErrUserNotFound
	}
	return user.Email, nil
}

func (s *Server) handleListMyInvitations(c *gin.Context) {
	email, err := s.currentUserEmail(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invites, err := s.agencysvc.PendingInvitations(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": invites})
}

func (s *Server) handleAcceptInvitation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email, err := s.currentUserEmail(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.agencysvc.AcceptInvitation(c.Request.Context(), currentUserID(c), email, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}
