package main

import (
	"os"

	"github.com/nothingbut/bookshelf/pkg/config"
	"github.com/nothingbut/bookshelf/pkg/database"
	"github.com/nothingbut/bookshelf/pkg/migrations"
	"github.com/nothingbut/bookshelf/pkg/version"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	if err := newApp().Run(os.Args); err != nil {
		log.Err(err).Fatal("bookshelf error")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "bookshelf",
		Usage:   "assemble a legacy e-book library export into book documents",
		Version: version.Version,
		Commands: []*cli.Command{
			assembleCommand(),
			serveCommand(),
			headingsCommand(),
			importCommand(),
			migrateCommand(),
		},
	}
}

// openDatabase loads the config, opens the export database and brings its
// schema up to date.
func openDatabase(c *cli.Context) (*config.Config, *bun.DB, error) {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	group, err := migrations.BringUpToDate(c.Context, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if group.ID != 0 {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	return cfg, db, nil
}
