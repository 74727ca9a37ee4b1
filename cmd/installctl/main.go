// Command installctl administers the installation registry. It talks to the
// database directly; the API server never exposes registry writes.
//
// Usage:
//
//	installctl create [-note <text>]
//	installctl list
//	installctl delete <id>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/magiccap/imagehost/internal/config"
	"github.com/magiccap/imagehost/internal/db"
	"github.com/magiccap/imagehost/internal/install"
)

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: installctl <create|list|delete> [args]")
	}

	cfg := config.Load()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	repo := install.NewRepository(pool)

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		note := fs.String("note", "", "free-form note, e.g. who the installation belongs to")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		inst, err := repo.Create(ctx, uuid.NewString(), *note)
		if err != nil {
			return err
		}
		fmt.Println(inst.ID)
		return nil

	case "list":
		installs, err := repo.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOTE\tCREATED")
		for _, inst := range installs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", inst.ID, inst.Note, inst.CreatedAt.Format(time.RFC3339))
		}
		return tw.Flush()

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: installctl delete <id>")
		}
		return repo.Delete(ctx, args[1])

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "installctl:", err)
		os.Exit(1)
	}
}
