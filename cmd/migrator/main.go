package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"

	"github.com/athebyme/gomarket-platform/catalog-admin/config"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

const (
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
	configFlag        = "config"
	downFlag          = "down"
	stepsFlag         = "steps"
)

type flags struct {
	storagePath    string
	migrationsPath string
	configPath     string
	down           bool
	steps          int
}

// migrationLogger реализация migrate.Logger поверх LoggerPort
type migrationLogger struct {
	logger  interfaces.LoggerPort
	verbose bool
}

func (ml *migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *migrationLogger) Verbose() bool {
	return ml.verbose
}

func main() {
	f := parseFlags()

	log, err := logger.NewZapLogger("info", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}

	if err := run(f, log); err != nil {
		log.Error("Ошибка миграции", interfaces.LogField{Key: "error", Value: err.Error()})
		os.Exit(2)
	}
}

func parseFlags() flags {
	var f flags
	pflag.StringVarP(&f.storagePath, storagePathFlag, "s", "", "user:password@host:port/db?sslmode=disable")
	pflag.StringVarP(&f.migrationsPath, migrationPathFlag, "m", "migrations", "каталог с миграциями")
	pflag.StringVarP(&f.configPath, configFlag, "c", "", "имя файла конфигурации, если storage-path не задан")
	pflag.BoolVar(&f.down, downFlag, false, "откатить миграции")
	pflag.IntVar(&f.steps, stepsFlag, 0, "число шагов; 0 применяет все")
	pflag.Parse()
	return f
}

func run(f flags, log interfaces.LoggerPort) error {
	if f.migrationsPath == "" {
		return fmt.Errorf("--%s flag: required", migrationPathFlag)
	}

	storagePath := f.storagePath
	if storagePath == "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return fmt.Errorf("--%s flag is empty and config is unusable: %w", storagePathFlag, err)
		}
		storagePath = storageFromConfig(cfg)
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", f.migrationsPath),
		fmt.Sprintf("pgx5://%s", storagePath),
	)
	if err != nil {
		return fmt.Errorf("failed to init migrate: %w", err)
	}
	defer m.Close()

	m.Log = &migrationLogger{logger: log, verbose: true}

	switch {
	case f.steps != 0 && f.down:
		err = m.Steps(-f.steps)
	case f.steps != 0:
		err = m.Steps(f.steps)
	case f.down:
		err = m.Down()
	default:
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		m.Log.Printf("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("Миграции применены",
		interfaces.LogField{Key: "version", Value: version},
		interfaces.LogField{Key: "dirty", Value: dirty},
	)
	return nil
}

// storageFromConfig собирает путь к БД из секции postgres
func storageFromConfig(cfg *config.Config) string {
	u := url.URL{
		User: url.UserPassword(cfg.Postgres.User, cfg.Postgres.Password),
		Host: cfg.Postgres.Host + ":" + strconv.Itoa(cfg.Postgres.Port),
		Path: "/" + cfg.Postgres.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.Postgres.SSLMode)
	u.RawQuery = q.Encode()

	// url.URL без схемы начинается с "//"
	return u.String()[2:]
}
