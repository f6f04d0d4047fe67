package migration

import (
	"github.com/setterhq/setter-crm/internal/agency/domain"
	appointmentdomain "github.com/setterhq/setter-crm/internal/appointment/domain"
	authdomain "github.com/setterhq/setter-crm/internal/auth/domain"
	"github.com/setterhq/setter-crm/internal/config"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module applies schema migrations on startup. Postgres uses the embedded
// SQL files; the sqlite and mysql dev paths fall back to AutoMigrate.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&profiledomain.Profile{},
				&prospectdomain.Prospect{},
				&prospectdomain.ProspectNote{},
				&appointmentdomain.Appointment{},
				&domain.Agency{},
				&domain.AgencyMember{},
				&domain.AgencyInvitation{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
