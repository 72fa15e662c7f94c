package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/platform/envutil"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the engagement-log database. DB_DISABLED=true returns (nil, nil)
// and the engine runs purely in memory. The default driver is an embedded
// sqlite file; DB_DRIVER=postgres switches to a shared server.
func New(baseLog *logger.Logger) (*Service, error) {
	if envutil.Bool("DB_DISABLED", false) {
		return nil, nil
	}
	log := baseLog.With("service", "DBService")

	var dialector gorm.Dialector
	switch driver := envutil.String("DB_DRIVER", "sqlite"); driver {
	case "postgres":
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		user := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "")
		name := envutil.String("POSTGRES_NAME", "mindpace")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(envutil.String("DB_PATH", "mindpace.db"))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Info("database connected", "driver", envutil.String("DB_DRIVER", "sqlite"))
	return &Service{db: gdb, log: log}, nil
}

func (s *Service) AutoMigrateAll() error {
	if s == nil {
		return nil
	}
	s.log.Info("running migrations")
	return s.db.AutoMigrate(
		&domain.EngagementEvent{},
	)
}

func (s *Service) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}
