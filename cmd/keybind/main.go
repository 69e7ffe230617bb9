// Package main is the command line front end for the keybind engine. It
// inspects and edits the shortcut configuration that application surfaces
// consume through the engine API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/capture"
	"github.com/dshills/keybind/internal/conflict"
	"github.com/dshills/keybind/internal/engine"
	"github.com/dshills/keybind/internal/ext"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/registry"
	"github.com/dshills/keybind/internal/storage"
	"github.com/dshills/keybind/internal/watch"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

type options struct {
	catalogPath string
	extPaths    string
	statePath   string
	platform    string
	logLevel    string
}

func run() int {
	opts, args := parseFlags()

	log, err := newLogger(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(log)

	cmd := "list"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	// watch manages its own engine lifecycle across catalog reloads.
	if cmd == "watch" {
		return cmdWatch(opts, log)
	}

	eng, err := newEngine(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer eng.Close()

	switch cmd {
	case "list":
		return cmdList(eng)
	case "search":
		return cmdSearch(eng, args)
	case "set":
		return cmdSet(eng, args)
	case "capture":
		return cmdCapture(eng, args)
	case "reset":
		return cmdReset(eng, args)
	case "disable":
		return cmdDisable(eng, args)
	case "reset-all":
		eng.ResetAll()
		fmt.Println("All shortcuts restored to defaults.")
		return 0
	case "conflicts":
		return cmdConflicts(eng)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		flag.Usage()
		return 2
	}
}

func parseFlags() (options, []string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.catalogPath, "catalog", "", "Path to a TOML shortcut catalog (default: built-in)")
	flag.StringVar(&opts.extPaths, "ext", "", "Comma-separated Lua extension scripts to load")
	flag.StringVar(&opts.statePath, "state", "", "Path to the state database (default: in-memory)")
	flag.StringVar(&opts.platform, "platform", "", "Combo display style: mac or other (default: host)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keybind - shortcut binding and conflict inspection\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keybind [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list                 Show all shortcuts grouped by category (default)\n")
		fmt.Fprintf(os.Stderr, "  search <query>       Search shortcuts by label, description, or id\n")
		fmt.Fprintf(os.Stderr, "  set <id> <combo>     Bind a shortcut to a combo\n")
		fmt.Fprintf(os.Stderr, "  capture <id>         Capture the next key chord interactively and bind it\n")
		fmt.Fprintf(os.Stderr, "  reset <id>           Restore a shortcut to its default\n")
		fmt.Fprintf(os.Stderr, "  disable <id>         Remove a shortcut's binding\n")
		fmt.Fprintf(os.Stderr, "  reset-all            Restore every shortcut to its default\n")
		fmt.Fprintf(os.Stderr, "  conflicts            Audit current bindings for collisions\n")
		fmt.Fprintf(os.Stderr, "  watch                Re-audit whenever the catalog file changes (needs -catalog)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keybind %s\n", version)
		os.Exit(0)
	}

	return opts, flag.Args()
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), nil
}

func loadDefinitions(opts options) ([]registry.Definition, error) {
	defs := registry.Default()
	if opts.catalogPath != "" {
		loaded, err := registry.LoadFile(opts.catalogPath)
		if err != nil {
			return nil, err
		}
		defs = loaded
	}

	if opts.extPaths != "" {
		loader := ext.NewLoader()
		for _, path := range strings.Split(opts.extPaths, ",") {
			if err := loader.LoadFile(strings.TrimSpace(path)); err != nil {
				return nil, err
			}
		}
		defs = append(defs, loader.Definitions()...)
	}
	return defs, nil
}

func newEngine(opts options, log *slog.Logger) (*engine.Engine, error) {
	defs, err := loadDefinitions(opts)
	if err != nil {
		return nil, err
	}

	var st storage.Store
	if opts.statePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.statePath), 0o755); err != nil {
			return nil, err
		}
		bolt, err := storage.OpenBolt(opts.statePath)
		if err != nil {
			return nil, err
		}
		st = bolt
	} else {
		st = storage.NewMemStore()
	}

	return engine.New(engine.Options{
		Definitions: defs,
		Storage:     st,
		Platform:    platformFor(opts.platform),
		Logger:      log,
	})
}

func platformFor(name string) key.Platform {
	switch name {
	case "mac":
		return key.PlatformMac
	case "other":
		return key.PlatformOther
	default:
		if runtime.GOOS == "darwin" {
			return key.PlatformMac
		}
		return key.PlatformOther
	}
}

func cmdList(eng *engine.Engine) int {
	for _, g := range eng.Groups() {
		fmt.Printf("%s\n", strings.ToUpper(g.Category))
		for _, e := range g.Entries {
			display := e.Display
			if e.Disabled {
				display = "(disabled)"
			}
			fmt.Printf("  %-28s %-20s %s\n", e.ID, display, e.Label)
		}
		fmt.Println()
	}
	fmt.Printf("%d customized\n", eng.CustomizedCount())
	return 0
}

func cmdSearch(eng *engine.Engine, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: keybind search <query>")
		return 2
	}
	entries := eng.Search(args[0])
	if len(entries) == 0 {
		entries = eng.Suggest(args[0])
		if len(entries) == 0 {
			fmt.Println("No matches.")
			return 0
		}
		fmt.Println("No matches. Did you mean:")
	}
	for _, e := range entries {
		display := e.Display
		if e.Disabled {
			display = "(disabled)"
		}
		fmt.Printf("  %-28s %-20s %s\n", e.ID, display, e.Label)
	}
	return 0
}

func cmdSet(eng *engine.Engine, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: keybind set <id> <combo>")
		return 2
	}
	id, combo := args[0], args[1]

	c, err := eng.Detect(id, combo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if c != nil && c.Severity == conflict.SeverityError {
		fmt.Fprintf(os.Stderr, "Error: %q is already used by %s (%s)\n", combo, c.Label, c.ShortcutID)
		return 1
	}
	if err := eng.SetCustom(id, combo); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if c != nil {
		fmt.Printf("Warning: %q is also used by %s (%s) in another context.\n", combo, c.Label, c.ShortcutID)
	}
	eff, err := eng.Effective(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s bound to %s\n", id, eff.Combo)
	return 0
}

func cmdCapture(eng *engine.Engine, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: keybind capture <id>")
		return 2
	}
	id := args[0]

	session := eng.NewCaptureSession()
	if err := session.Begin(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	drawPrompt(screen, fmt.Sprintf("Press the new shortcut for %s (Escape cancels)", id))

	for session.State() == capture.StateCapturing {
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := session.Handle(key.EventFromTcell(ev)); err != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
	}
	screen.Fini()

	if session.State() != capture.StateCaptured {
		fmt.Println("Capture cancelled.")
		return 0
	}

	combo := session.Combo()
	res, err := session.Save()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !res.Saved {
		fmt.Fprintf(os.Stderr, "Error: %q is already used by %s (%s)\n",
			combo, res.Conflict.Label, res.Conflict.ShortcutID)
		return 1
	}
	if res.Conflict != nil {
		fmt.Printf("Warning: %q is also used by %s (%s) in another context.\n",
			combo, res.Conflict.Label, res.Conflict.ShortcutID)
	}
	fmt.Printf("%s bound to %s\n", id, combo)
	return 0
}

func drawPrompt(screen tcell.Screen, msg string) {
	screen.Clear()
	col := 0
	for _, r := range msg {
		screen.SetContent(col, 0, r, nil, tcell.StyleDefault)
		col++
	}
	screen.Show()
}

func cmdReset(eng *engine.Engine, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: keybind reset <id>")
		return 2
	}
	if err := eng.Reset(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s restored to default\n", args[0])
	return 0
}

func cmdDisable(eng *engine.Engine, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: keybind disable <id>")
		return 2
	}
	if err := eng.Disable(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s disabled\n", args[0])
	return 0
}

func cmdConflicts(eng *engine.Engine) int {
	collisions, err := eng.ScanConflicts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return reportCollisions(collisions)
}

func reportCollisions(collisions []conflict.Collision) int {
	if len(collisions) == 0 {
		fmt.Println("No conflicts.")
		return 0
	}
	for _, c := range collisions {
		fmt.Printf("  [%s] %s: %s (%s) vs %s (%s)\n",
			c.Severity, c.Combo, c.FirstLabel, c.FirstID, c.SecondLabel, c.SecondID)
	}
	return 1
}

func cmdWatch(opts options, log *slog.Logger) int {
	if opts.catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: keybind -catalog <path> watch")
		return 2
	}

	var mu sync.Mutex
	eng, err := newEngine(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	audit := func(e *engine.Engine) {
		collisions, err := e.ScanConflicts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		reportCollisions(collisions)
		fmt.Printf("%d shortcuts, %d customized\n", e.Registry().Len(), e.CustomizedCount())
	}
	audit(eng)

	w := watch.New(opts.catalogPath, func(string) error {
		// Validate the edited catalog before replacing the engine, so a
		// broken edit keeps the last good state running.
		defs, err := loadDefinitions(opts)
		if err != nil {
			return err
		}
		if _, err := registry.New(defs); err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		eng.Close()
		next, err := newEngine(opts, log)
		if err != nil {
			return err
		}
		eng = next
		audit(eng)
		return nil
	}, watch.WithLogger(log))

	if err := w.Start(); err != nil {
		eng.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	mu.Lock()
	defer mu.Unlock()
	eng.Close()
	return 0
}
