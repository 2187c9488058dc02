package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"pokemedquest/internal/config"
	"pokemedquest/internal/database"
	"pokemedquest/internal/logger"
	"pokemedquest/internal/service"
)

const usage = `PokeMed Quest backup tool

Usage:
  backup export [-output file]           write accounts, avatars and progress to JSON
  backup import -input file [-clear]     load a JSON backup

Environment:
  DATABASE_TYPE    sqlite, postgres or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./data/application.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL
`

var errUsage = errors.New("usage")

// backupStore is the part of service.BackupService the commands drive
type backupStore interface {
	Export(path string) error
	Import(path string, clearData bool) (*service.ImportSummary, error)
}

func main() {
	if len(os.Args) < 2 || (os.Args[1] != "export" && os.Args[1] != "import") {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Tool output goes to the terminal, not the shell's log file
	zapLogger, err := logger.New(cfg.LogLevel, "stderr")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	store := service.NewBackupService(db, zapLogger)
	if err := run(store, os.Args[1:], os.Stdin, os.Stdout, time.Now); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		zapLogger.Fatal("Backup command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

// run dispatches one subcommand; args[0] is the command name
func run(store backupStore, args []string, in io.Reader, out io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(out)
		output := fs.String("output", "", "output file (default: backup_YYYYMMDD_HHMMSS.json)")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		return exportBackup(store, out, *output, now())

	case "import":
		fs := flag.NewFlagSet("import", flag.ContinueOnError)
		fs.SetOutput(out)
		input := fs.String("input", "", "input file (required)")
		clearData := fs.Bool("clear", false, "delete all existing data first")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		if *input == "" {
			fmt.Fprintln(out, "Error: -input is required")
			return errUsage
		}
		return importBackup(store, in, out, *input, *clearData)
	}

	return errUsage
}

func exportBackup(store backupStore, out io.Writer, path string, now time.Time) error {
	if path == "" {
		path = defaultBackupName(now)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := store.Export(path); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Export complete: %s (%.2f KB)\n", path, float64(info.Size())/1024)
	}
	return nil
}

func importBackup(store backupStore, in io.Reader, out io.Writer, path string, clearData bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}

	if clearData && !confirmClear(in, out) {
		fmt.Fprintln(out, "Import cancelled")
		return nil
	}

	summary, err := store.Import(path, clearData)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Import complete: %d users imported, %d skipped (username exists), %d avatars, %d progress records\n",
		summary.UsersImported, summary.UsersSkipped, summary.AvatarsImported, summary.ProgressImported)
	return nil
}

// confirmClear asks for a typed "yes" before existing data is wiped
func confirmClear(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "WARNING: this deletes every account, avatar and progress record. Type 'yes' to confirm: ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

func defaultBackupName(now time.Time) string {
	return fmt.Sprintf("backup_%s.json", now.Format("20060102_150405"))
}
