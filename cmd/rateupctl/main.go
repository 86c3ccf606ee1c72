// Copyright (c) 2026 RateUp. All rights reserved.

// Command rateupctl is the operator tool for a RateUp deployment.
//
// # Subcommands
//
//   - hash-password : print a password hash in the stored credential format
//   - issue-token   : print a signed access token (JWT_SECRET)
//   - create-admin  : insert an administrator account (DATABASE_URL)
//   - migrate       : apply, roll back or inspect schema migrations
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/migration"
	pgstore "github.com/nifoox/rateup/internal/platform/postgres"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/users/auth"
)

// ctlConfig is the subset of the server environment the tool reads.
type ctlConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"rateup.api"`
}

type command struct {
	summary string
	run     func(cfg ctlConfig, args []string, stdout io.Writer) error
}

var commands = map[string]command{
	"hash-password": {"Print a password hash", runHashPassword},
	"issue-token":   {"Print a signed access token", runIssueToken},
	"create-admin":  {"Create an administrator account", runCreateAdmin},
	"migrate":       {"Apply or inspect schema migrations", runMigrate},
}

var commandOrder = []string{"hash-password", "issue-token", "create-admin", "migrate"}

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stdout)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := env.ParseAs[ctlConfig]()
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	return cmd.run(cfg, args[1:], stdout)
}

func printUsage(stdout io.Writer) {
	fmt.Fprintln(stdout, "Usage: rateupctl <command> [flags]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(stdout, "  %-14s %s\n", name, commands[name].summary)
	}
}

// parseFlags parses a subcommand's flags and reports whether help was requested.
func parseFlags(flagSet *pflag.FlagSet, args []string, stdout io.Writer) (bool, error) {
	flagSet.SetOutput(stdout)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return false, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return false, nil
}

// # hash-password

func runHashPassword(_ ctlConfig, args []string, stdout io.Writer) error {
	var password string

	flagSet := pflag.NewFlagSet("hash-password", pflag.ContinueOnError)
	flagSet.StringVar(&password, "password", "", "plaintext password to hash")

	if help, err := parseFlags(flagSet, args, stdout); help || err != nil {
		return err
	}
	if password == "" {
		return errors.New("--password is required")
	}

	hash, err := sec.NewHasher(sec.DefaultHasherParams).Hash(password)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, hash)
	return nil
}

// # issue-token

func runIssueToken(cfg ctlConfig, args []string, stdout io.Writer) error {
	var (
		id         int64
		email      string
		roles      []string
		rememberMe bool
	)

	flagSet := pflag.NewFlagSet("issue-token", pflag.ContinueOnError)
	flagSet.Int64Var(&id, "id", 0, "subject id")
	flagSet.StringVar(&email, "email", "", "subject email")
	flagSet.StringSliceVar(&roles, "roles", []string{string(sec.RoleUser)}, "comma-separated roles")
	flagSet.BoolVar(&rememberMe, "remember-me", false, "issue a long-lived token")

	if help, err := parseFlags(flagSet, args, stdout); help || err != nil {
		return err
	}
	if id <= 0 {
		return errors.New("--id must be a positive integer")
	}

	for i := range roles {
		roles[i] = strings.ToUpper(strings.TrimSpace(roles[i]))
	}
	parsed, ok := sec.ParseRoles(roles)
	if !ok || len(parsed) == 0 {
		return fmt.Errorf("invalid --roles %q", strings.Join(roles, ","))
	}

	tokens := sec.NewTokenService(cfg.JWTSecret, sec.WithIssuer(cfg.JWTIssuer))
	issued, err := tokens.Issue(id, parsed, email, rememberMe)
	if err != nil {
		if apperr.Is(err, apperr.CodeConfig) {
			return errors.New("JWT_SECRET is not set")
		}
		return err
	}

	fmt.Fprintln(stdout, issued.Token)
	fmt.Fprintf(stdout, "expires: %s\n", issued.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}

// # create-admin

func runCreateAdmin(cfg ctlConfig, args []string, stdout io.Writer) error {
	var input auth.RegisterInput

	flagSet := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
	flagSet.StringVar(&input.Username, "username", "admin", "administrator username")
	flagSet.StringVar(&input.Email, "email", "", "administrator email")
	flagSet.StringVar(&input.Password, "password", "", "administrator password")

	if help, err := parseFlags(flagSet, args, stdout); help || err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := auth.NewService(auth.NewUserRepository(pool), sec.NewHasher(sec.DefaultHasherParams), nil, logger)

	created, err := service.SeedAdmin(ctx, input)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(stdout, "an account with email %s already exists\n", input.Email)
		return nil
	}

	fmt.Fprintf(stdout, "administrator %s created\n", input.Username)
	return nil
}

// # migrate

func runMigrate(cfg ctlConfig, args []string, stdout io.Writer) error {
	var (
		down    int
		version bool
	)

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.IntVar(&down, "down", 0, "roll back this many migrations instead of applying")
	flagSet.BoolVar(&version, "version", false, "print the current schema version")

	if help, err := parseFlags(flagSet, args, stdout); help || err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	switch {
	case version:
		current, dirty, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "version: %d dirty: %t\n", current, dirty)
		return nil
	case down > 0:
		return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, down, logger)
	default:
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger)
	}
}
