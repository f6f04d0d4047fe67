// Package server wires the HTTP surface: routing, middleware and the
// JSON handlers on top of the domain services.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	appointmentdomain "github.com/setterhq/setter-crm/internal/appointment/domain"
	"github.com/setterhq/setter-crm/internal/assistant"
	authdomain "github.com/setterhq/setter-crm/internal/auth/domain"
	"github.com/setterhq/setter-crm/internal/auth/session"
	"github.com/setterhq/setter-crm/internal/calltracker"
	"github.com/setterhq/setter-crm/internal/clock"
	"github.com/setterhq/setter-crm/internal/config"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/setterhq/setter-crm/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	sessions       *session.Manager
	clock          clock.Clock
	authsvc        authdomain.Service
	users          authdomain.Repository
	profilesvc     profiledomain.Service
	agencysvc      agencydomain.Service
	prospectsvc    prospectdomain.Service
	appointmentsvc appointmentdomain.Service
	calltracker    calltracker.Service
	assistantsvc   assistant.Service
	chatLimiter    *ratelimit.Limiter
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Sessions       *session.Manager
	Clock          clock.Clock
	Authsvc        authdomain.Service
	Users          authdomain.Repository
	Profilesvc     profiledomain.Service
	Agencysvc      agencydomain.Service
	Prospectsvc    prospectdomain.Service
	Appointmentsvc appointmentdomain.Service
	Calltracker    calltracker.Service
	Assistantsvc   assistant.Service
	ChatLimiter    *ratelimit.Limiter
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:         p.Gin,
		sessions:       p.Sessions,
		clock:          p.Clock,
		authsvc:        p.Authsvc,
		users:          p.Users,
		profilesvc:     p.Profilesvc,
		agencysvc:      p.Agencysvc,
		prospectsvc:    p.Prospectsvc,
		appointmentsvc: p.Appointmentsvc,
		calltracker:    p.Calltracker,
		assistantsvc:   p.Assistantsvc,
		chatLimiter:    p.ChatLimiter,
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", s.handleSignup)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/me", s.AuthRequired(), s.handleMe)
	}

	private := api.Group("")
	private.Use(s.AuthRequired())

	profileGroup := private.Group("/profile")
	{
		profileGroup.GET("", s.handleGetProfile)
		profileGroup.PATCH("", s.handleUpdateProfile)
		profileGroup.PATCH("/goals", s.handleUpdateGoals)
	}

	prospectGroup := private.Group("/prospects")
	{
		prospectGroup.GET("", s.handleListProspects)
		prospectGroup.POST("", s.handleCreateProspect)
		prospectGroup.GET("/archived", s.handleListArchivedProspects)
		prospectGroup.GET("/export", s.handleExportProspects)
		prospectGroup.GET("/:id", s.handleGetProspect)
		prospectGroup.PATCH("/:id", s.handleUpdateProspect)
		prospectGroup.DELETE("/:id", s.handleDeleteProspect)
		prospectGroup.PUT("/:id/status", s.handleSetProspectStatus)
		prospectGroup.POST("/:id/priority", s.handleCycleProspectPriority)
		prospectGroup.POST("/:id/contacted", s.handleMarkProspectContacted)
		prospectGroup.POST("/:id/archive", s.handleArchiveProspect)
		prospectGroup.POST("/:id/restore", s.handleRestoreProspect)
		prospectGroup.GET("/:id/notes", s.handleListProspectNotes)
		prospectGroup.POST("/:id/notes", s.handleAddProspectNote)
		prospectGroup.DELETE("/:id/notes/:noteID", s.handleDeleteProspectNote)
	}

	appointmentGroup := private.Group("/appointments")
	{
		appointmentGroup.GET("", s.handleListAppointments)
		appointmentGroup.POST("", s.handleCreateAppointment)
		appointmentGroup.GET("/:id", s.handleGetAppointment)
		appointmentGroup.PATCH("/:id", s.handleUpdateAppointment)
		appointmentGroup.PUT("/:id/status", s.handleSetAppointmentStatus)
		appointmentGroup.DELETE("/:id", s.handleDeleteAppointment)
	}

	agencyGroup := private.Group("/agency")
	{
		agencyGroup.POST("", s.handleCreateAgency)
		agencyGroup.GET("", s.handleGetAgency)
		agencyGroup.PATCH("", s.handleUpdateAgency)
		agencyGroup.GET("/members", s.handleListAgencyMembers)
		agencyGroup.DELETE("/members/:userID", s.handleRemoveAgencyMember)
		agencyGroup.GET("/invitations", s.handleListAgencyInvitations)
		agencyGroup.POST("/invitations", s.handleInviteMember)
	}

	inviteGroup := private.Group("/invitations")
	{
		inviteGroup.GET("", s.handleListMyInvitations)
		inviteGroup.POST("/:id/accept", s.handleAcceptInvitation)
	}

	callGroup := private.Group("/calls")
	{
		callGroup.GET("", s.handleGetCalls)
		callGroup.POST("", s.handleLogCall)
		callGroup.POST("/reset", s.handleResetCalls)
		callGroup.GET("/history", s.handleCallHistory)
	}

	private.GET("/analytics", s.handleAnalytics)
	private.POST("/assistant/chat", s.handleAssistantChat)
}
