// Package main is the entry point for the gantt timeline.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/gantt/internal/config"
	"github.com/tgienger/gantt/internal/db"
	"github.com/tgienger/gantt/internal/export"
	"github.com/tgienger/gantt/internal/ui"
	"github.com/tgienger/gantt/internal/ui/views"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `gantt - right-to-left project timeline for the terminal

USAGE:
    gantt [OPTIONS]
    gantt [OPTIONS] export [--clipboard] <project> [file|-]
    gantt [OPTIONS] import <file|->

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --config <path>     Use this config file instead of ~/.config/gantt/config.yaml
    --db <path>         Use this database file
    --weekly            Open charts in the weekly view
    --init              Write a config file with the default values

EXPORT / IMPORT:
    export writes a project (by ID or title) as a JSON document to a file,
    to stdout with '-' or no file, or to the clipboard with --clipboard.
    import reads such a document and stores it as a new project.

KEYBINDINGS (chart):
    ↑/↓         Select row
    ←/→         Scroll later/earlier, or shift the bar while dragging
    m [ ]       Move bar, drag start edge, drag end edge
    Enter       Save the drag    Esc  Cancel / back
    v           Daily/weekly     t    Jump to today
    n g         New task, new group
    e d         Edit, delete     Space  Fold group
    ?           Help             q    Quit
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		weekly      bool
		configPath  string
		dbPath      string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Write default config file")
	flag.BoolVar(&weekly, "weekly", false, "Open charts in the weekly view")
	flag.StringVar(&configPath, "config", "", "Config file path")
	flag.StringVar(&dbPath, "db", "", "Database file path")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("gantt %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	if initConfig {
		return writeDefaultConfig(configPath)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if weekly {
		cfg.UI.DefaultView = "weekly"
	}

	cal, err := cfg.LocalCalendar()
	if err != nil {
		return err
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()
	database.SetLocation(cal.Location)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "export":
			return runExport(database, args[1:])
		case "import":
			return runImport(database, cfg, args[1:])
		default:
			return fmt.Errorf("unknown command %q (see --help)", args[0])
		}
	}

	return runApp(database, cfg, weekly)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func writeDefaultConfig(path string) error {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		return nil
	}

	if err := config.SaveTo(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("Created config file at: %s\n", path)
	return nil
}

// runApp starts the TUI. forceView keeps the configured view over the one
// saved from the last session.
func runApp(database *db.DB, cfg *config.Config, forceView bool) error {
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "gantt")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cal, err := cfg.LocalCalendar()
	if err != nil {
		return err
	}
	view, err := cfg.DefaultView()
	if err != nil {
		return err
	}

	app := ui.NewApp(database, views.ChartOptions{
		Calendar:        cal,
		Dimensions:      cfg.Dimensions(),
		View:            view,
		ForceView:       forceView,
		PixelsPerColumn: cfg.Timeline.PixelsPerColumn,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	log.Printf("starting gantt %s, calendar %s", version, cal.System)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

func runExport(database *db.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	toClipboard := fs.Bool("clipboard", false, "Copy the document to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: gantt export [--clipboard] <project> [file|-]")
	}

	project, err := database.FindProject(fs.Arg(0))
	if err != nil {
		return err
	}
	tasks, err := database.ListTasks(project.ID)
	if err != nil {
		return err
	}
	groups, err := database.ListGroups(project.ID)
	if err != nil {
		return err
	}

	doc := export.Build(*project, tasks, groups, time.Now())

	switch {
	case *toClipboard:
		var buf bytes.Buffer
		if err := export.Write(&buf, doc); err != nil {
			return err
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Copied %q (%d tasks) to the clipboard\n", project.Title, len(tasks))
		return nil

	case fs.NArg() < 2 || fs.Arg(1) == "-":
		return export.Write(os.Stdout, doc)
	}

	f, err := os.Create(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.Write(f, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %q (%d tasks) to %s\n", project.Title, len(tasks), fs.Arg(1))
	return f.Close()
}

func runImport(database *db.DB, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gantt import <file|->")
	}

	cal, err := cfg.LocalCalendar()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := export.Read(r, cal)
	if err != nil {
		return err
	}

	project, err := database.ImportProject(doc.Project, doc.Groups, doc.Tasks)
	if err != nil {
		return fmt.Errorf("failed to import %q: %w", doc.Project.Title, err)
	}
	fmt.Fprintf(os.Stderr, "Imported %q as %s (%d tasks, %d groups)\n",
		project.Title, project.ID, len(doc.Tasks), len(doc.Groups))
	return nil
}
