package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/contents"
	"github.com/kmclassics/kmclassics/pkg/database"
	"github.com/kmclassics/kmclassics/pkg/migrations"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	app := &cli.App{
		Name:        "migrations",
		Usage:       "manage the kmclassics database schema",
		Description: "Applies, rolls back and inspects schema migrations, and audits imported content.",
		Commands:    commands(db, migrations.NewMigrator(db)),
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Error("migrations failed")
		os.Exit(1)
	}
}

func commands(db *bun.DB, m *migrate.Migrator) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "create the bookkeeping tables",
			Action: func(c *cli.Context) error {
				return m.Init(c.Context)
			},
		},
		{
			Name:  "migrate",
			Usage: "apply pending migrations",
			Action: func(c *cli.Context) error {
				group, err := migrations.BringUpToDate(c.Context, db)
				if err != nil {
					return err
				}
				fmt.Printf("Applied %s\n", migrations.Describe(group))
				return nil
			},
		},
		{
			Name:  "rollback",
			Usage: "undo the most recent migration group",
			Action: func(c *cli.Context) error {
				group, err := m.Rollback(c.Context)
				if err != nil {
					return err
				}
				if group.IsZero() {
					fmt.Printf("Nothing to roll back\n")
					return nil
				}
				fmt.Printf("Rolled back %s\n", migrations.Describe(group))
				return nil
			},
		},
		{
			Name:      "create",
			Usage:     "write a new Go migration file",
			ArgsUsage: "<words of the migration name>",
			Action:    createAction(m),
		},
		{
			Name:   "status",
			Usage:  "show the last applied group and anything pending",
			Action: statusAction(db, m),
		},
		{
			Name:  "audit",
			Usage: "list content rows the API will skip",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "book",
					Usage: "only audit this book id, e.g. MC_00008",
				},
			},
			Action: auditAction(db),
		},
	}
}

func createAction(m *migrate.Migrator) cli.ActionFunc {
	return func(c *cli.Context) error {
		name := strings.Join(c.Args().Slice(), "_")
		if name == "" {
			return cli.Exit("a migration name is required", 1)
		}
		mf, err := m.CreateGoMigration(c.Context, name, migrate.WithGoTemplate(migrationTemplate))
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s to %s\n", mf.Name, mf.Path)
		return nil
	}
}

func statusAction(db *bun.DB, m *migrate.Migrator) cli.ActionFunc {
	return func(c *cli.Context) error {
		pending, err := migrations.Pending(c.Context, db)
		if err != nil {
			return err
		}
		ms, err := m.MigrationsWithStatus(c.Context)
		if err != nil {
			return err
		}
		fmt.Printf("Last applied: %s\n", migrations.Describe(ms.LastGroup()))
		if len(pending) == 0 {
			fmt.Printf("Schema is up to date\n")
			return nil
		}
		fmt.Printf("Pending: %s\n", strings.Join(pending, ", "))
		return nil
	}
}

func auditAction(db *bun.DB) cli.ActionFunc {
	return func(c *cli.Context) error {
		problems, err := contents.NewService(db).Audit(c.Context, c.String("book"))
		if err != nil {
			return err
		}
		for _, p := range problems {
			fmt.Printf("%s #%d: %s\n", p.BookID, p.ContentID, p.Reason)
		}
		if len(problems) > 0 {
			return cli.Exit(fmt.Sprintf("%d malformed content rows", len(problems)), 1)
		}
		fmt.Printf("All content rows are well formed\n")
		return nil
	}
}

// migrationTemplate is rendered with the package name. Steps are raw SQL so
// they match the schema the offline importer writes against.
const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, ` + "``" + `)
			return errors.WithStack(err)
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, ` + "``" + `)
			return errors.WithStack(err)
		},
	)
}
`
