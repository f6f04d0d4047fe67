package main

import (
	"github.com/setterhq/setter-crm/internal/agency"
	"github.com/setterhq/setter-crm/internal/appointment"
	"github.com/setterhq/setter-crm/internal/assistant"
	"github.com/setterhq/setter-crm/internal/auth"
	"github.com/setterhq/setter-crm/internal/calltracker"
	"github.com/setterhq/setter-crm/internal/clock"
	"github.com/setterhq/setter-crm/internal/config"
	"github.com/setterhq/setter-crm/internal/logger"
	"github.com/setterhq/setter-crm/internal/migration"
	"github.com/setterhq/setter-crm/internal/profile"
	"github.com/setterhq/setter-crm/internal/prospect"
	"github.com/setterhq/setter-crm/internal/ratelimit"
	"github.com/setterhq/setter-crm/internal/server"
	"github.com/setterhq/setter-crm/pkg/db"
	"github.com/setterhq/setter-crm/pkg/id"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		id.Module,
		db.Module,
		migration.Module,
		auth.Module,
		profile.Module,
		agency.Module,
		prospect.Module,
		appointment.Module,
		calltracker.Module,
		assistant.Module,
		ratelimit.Module,
		server.Module,
	).Run()
}
