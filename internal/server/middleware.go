package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
)

const (
	contextUserIDKey = "user_id"
	contextScopeKey  = "access_scope"
)

// AuthRequired resolves the session cookie and stores the user id plus
// the access scope on the request.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.Token(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		scope, err := s.agencysvc.Resolve(c.Request.Context(), session.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID)
		c.Set(contextScopeKey, scope)
		c.Next()
	}
}

func currentUserID(c *gin.Context) snowflake.ID {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(snowflake.ID)
	return id
}

func currentScope(c *gin.Context) agencydomain.Scope {
	v, ok := c.Get(contextScopeKey)
	if !ok {
		return agencydomain.Scope{}
	}
	scope, _ := v.(agencydomain.Scope)
	return scope
}
