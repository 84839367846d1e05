package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/minhtpham/mealgrid/internal/api"
	"github.com/minhtpham/mealgrid/internal/cli"
	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/errors"
	"github.com/minhtpham/mealgrid/internal/logger"
	"github.com/minhtpham/mealgrid/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Server  string `help:"Planner backend base URL." default:"${server_url}"`
	Cache   string `help:"Offline cache database path." default:"${cache_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Create the offline cache database."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive planner." default:"1"`
	Week    cli.WeekCmd    `cmd:"" help:"Print the planner grid for a week."`
	Slot    cli.SlotCmd    `cmd:"" help:"Set or clear a planner slot."`
	Recipes cli.RecipesCmd `cmd:"" help:"List the recipe catalog."`
	Sync    cli.SyncCmd    `cmd:"" help:"Replay journaled saves against the backend."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly meal planner for the recipe backend"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"server_url": constants.DefaultServerURL,
			"cache_path": constants.DefaultCachePath,
		},
	)

	cachePath := expandHome(CLI.Cache)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(cachePath)}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	store := storage.NewSQLiteStore(cachePath)
	appCtx := &cli.Context{
		Client: api.NewClient(CLI.Server),
		Cache:  store,
	}

	// The init command creates the cache itself; everything else opens it
	// up front so degraded (offline) paths have somewhere to fall back to.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
	store.Close()
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
