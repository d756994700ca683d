package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/cmd/lodged/member"
	"github.com/lodgeworks/lodged/cmd/lodged/serve"
	"github.com/lodgeworks/lodged/cmd/lodged/user"
	"github.com/lodgeworks/lodged/pkg/config"
	logpkg "github.com/lodgeworks/lodged/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "lodged",
		Short:        "A membership directory and payment approval server",
		Long:         "Lodged serves a role-scoped membership directory and a payment request approval workflow.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		user.Command,
		member.Command,
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			log.Fatal("parse config file", "err", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		log.Fatal("parse environment", "err", err)
	}

	ctx = config.WithContext(ctx, cfg)

	logger, f, err := logpkg.NewLogger(cfg)
	if err != nil {
		log.Fatal("create logger", "err", err)
	}
	if f != nil {
		defer f.Close() //nolint:errcheck
	}

	log.SetDefault(logger)
	ctx = log.WithContext(ctx, logger)

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debugf)); err != nil {
		logger.Warn("couldn't set automaxprocs", "error", err)
	}

	if rootCmd.ExecuteContext(ctx) != nil {
		os.Exit(1)
	}
}
