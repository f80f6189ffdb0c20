package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/nothingbut/bookshelf/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type key int

const ctxKey key = 0

// WithLogging marks ctx so that queries run under it are logged when the
// database was opened with DatabaseDebug.
func WithLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, true)
}

type logQueryHook struct {
	log logger.Logger
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if enabled, ok := ctx.Value(ctxKey).(bool); !ok || !enabled {
		return
	}
	qh.log.Debug(event.Query, logger.Data{"duration": time.Since(event.StartTime).String()})
}

// New opens the legacy export database. Connections retry briefly while the
// file is locked by another writer.
func New(cfg *config.Config) (*bun.DB, error) {
	connector, err := openConnector(sqliteshim.Driver(), cfg.DatabaseFilePath)
	if err != nil {
		return nil, err
	}

	sqldb := sql.OpenDB(&busyConnector{
		Connector: connector,
		policy:    newBackoff(cfg.DatabaseMaxRetries),
	})
	// The export is a single sqlite file; one connection keeps writers from
	// tripping over each other and keeps :memory: databases shared.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if cfg.DatabaseDebug {
		db.AddQueryHook(&logQueryHook{logger.NewWithLevel("debug")})
	}

	for i := 0; i < cfg.DatabaseConnectRetryCount; i++ {
		if _, err = db.Exec("SELECT 1"); err == nil {
			break
		}
		time.Sleep(cfg.DatabaseConnectRetryDelay)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.DatabaseFilePath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return nil, errors.Wrap(err, "failed to enable WAL mode")
		}
	}

	if _, err := db.Exec("PRAGMA busy_timeout=?", cfg.DatabaseBusyTimeout.Milliseconds()); err != nil {
		return nil, errors.Wrap(err, "failed to set busy_timeout")
	}

	return db, nil
}

func openConnector(drv driver.Driver, name string) (driver.Connector, error) {
	if dc, ok := drv.(driver.DriverContext); ok {
		connector, err := dc.OpenConnector(name)
		return connector, errors.WithStack(err)
	}
	return &dsnConnector{name: name, drv: drv}, nil
}

// dsnConnector adapts a driver without OpenConnector, as database/sql does.
type dsnConnector struct {
	name string
	drv  driver.Driver
}

func (c *dsnConnector) Connect(_ context.Context) (driver.Conn, error) {
	return c.drv.Open(c.name)
}

func (c *dsnConnector) Driver() driver.Driver {
	return c.drv
}
