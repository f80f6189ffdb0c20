package main

import (
	"fmt"

	"github.com/nothingbut/bookshelf/pkg/config"
	"github.com/nothingbut/bookshelf/pkg/database"
	"github.com/nothingbut/bookshelf/pkg/migrations"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func withMigrator(fn func(c *cli.Context, m *migrate.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		m := migrate.NewMigrator(db, migrations.Migrations)
		if err := m.Init(c.Context); err != nil {
			return err
		}
		return fn(c, m)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the export database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					group, err := m.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "There are no new migrations to run")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					group, err := m.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "There are no groups to roll back")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					ms, err := m.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "Unapplied migrations: %s\n", ms.Unapplied())
					fmt.Fprintf(c.App.Writer, "Last migration group: %s\n", ms.LastGroup())
					return nil
				}),
			},
		},
	}
}
