package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	catalogapp "github.com/MamaFati/farmDirect/internal/application/catalog"
	"github.com/MamaFati/farmDirect/internal/application/permission"
	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/internal/infrastructure/persistence/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "marketctl",
		Usage: "farmDirect database administration",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply pending migrations", Action: migrateUp},
					{
						Name:   "down",
						Usage:  "roll back migrations",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"}},
						Action: migrateDown,
					},
					{Name: "version", Usage: "print the applied schema version", Action: migrateVersion},
				},
			},
			{
				Name:   "seed",
				Usage:  "create the default categories",
				Action: withCatalog(seed),
			},
			{
				Name:  "category",
				Usage: "manage product categories",
				Subcommands: []*cli.Command{
					{Name: "list", Action: withCatalog(listCategories)},
					{Name: "add", ArgsUsage: "NAME", Action: withCatalog(addCategory)},
					{Name: "delete", ArgsUsage: "ID", Action: withCatalog(deleteCategory)},
				},
			},
		},
	}
}

func openMigrator() (*postgres.Migrator, error) {
	db, err := config.LoadPostgres()
	if err != nil {
		return nil, err
	}
	return postgres.NewMigrator(db.MigrateURL())
}

func migrateUp(c *cli.Context) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	changed, err := m.Up()
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(c.App.Writer, "schema is up to date")
		return nil
	}
	fmt.Fprintln(c.App.Writer, "migrations applied")
	return nil
}

func migrateDown(c *cli.Context) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(c.Int("steps")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "rolled back %d migration(s)\n", c.Int("steps"))
	return nil
}

func migrateVersion(c *cli.Context) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, ok, err := m.Version()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.App.Writer, "no migrations applied")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "version %d (dirty: %t)\n", version, dirty)
	return nil
}

// withCatalog runs action against a catalog service backed by Postgres.
func withCatalog(action func(*cli.Context, *catalogapp.Service) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadPostgres()
		if err != nil {
			return err
		}
		pool, err := postgres.NewPool(c.Context, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		db := postgres.NewDB(pool)
		svc := catalogapp.NewService(
			db,
			postgres.NewProductRepository(db),
			postgres.NewCategoryRepository(db),
			permission.NewStore(postgres.NewPermissionRepository(db)),
		)
		return action(c, svc)
	}
}

func seed(c *cli.Context, svc *catalogapp.Service) error {
	n, err := svc.SeedCategories(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "created %d categories\n", n)
	return nil
}

func listCategories(c *cli.Context, svc *catalogapp.Service) error {
	categories, err := svc.ListCategories(c.Context)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", cat.ID, cat.Name)
	}
	return nil
}

func addCategory(c *cli.Context, svc *catalogapp.Service) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: marketctl category add NAME", 2)
	}
	cat, err := svc.CreateCategory(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\t%s\n", cat.ID, cat.Name)
	return nil
}

func deleteCategory(c *cli.Context, svc *catalogapp.Service) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: marketctl category delete ID", 2)
	}
	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid category id %q", c.Args().First()), 2)
	}
	return svc.DeleteCategory(c.Context, id)
}
