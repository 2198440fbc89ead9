package app

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popmenu/internal/backend"
	"github.com/atomicstack/popmenu/internal/format/table"
	"github.com/atomicstack/popmenu/internal/logging"
	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/menu"
	"github.com/atomicstack/popmenu/internal/menudef"
	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/tmux"
	"github.com/atomicstack/popmenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Config describes user-provided application options.
type Config struct {
	MenuFile string
	// Anchor positions keyboard-opened menus; negative axes centre them.
	Anchor        image.Point
	Keyboard      bool
	Once          bool
	List          bool
	NoAnimations  bool
	Exempt        []image.Rectangle
	SocketPath    string
	FocusInterval time.Duration
	Width         int
	Height        int
	Font          *text.Descriptor
}

// AnimationsDisabled makes Config usable as the engine's settings.
func (c Config) AnimationsDisabled() bool { return c.NoAnimations }

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	def, err := LoadDefinition(cfg.MenuFile)
	if err != nil {
		return err
	}
	if cfg.List {
		return WriteListing(os.Stdout, def)
	}

	width, height := screenSize(cfg)
	desktop := ui.NewDesktop(width, height)
	reg := menu.NewRegistry(desktop, ui.MenuOptions(cfg, cfg.Exempt))
	root := reg.FromDefinition(def)
	defer root.Destroy()
	if cfg.Font != nil {
		root.SetFont(cfg.Font)
	}

	opts := ui.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Anchor:   cfg.Anchor,
		Keyboard: cfg.Keyboard,
		Once:     cfg.Once,
	}
	// Outside tmux, with no socket named, the screen simply keeps its focus.
	if cfg.SocketPath == "" && os.Getenv("TMUX") == "" {
		events.App.FocusDisabled("not inside tmux")
	} else if socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath); err != nil {
		logging.Error(fmt.Errorf("resolve socket path: %w", err))
	} else {
		probe := tmux.NewProbe(socketPath, "")
		defer probe.Close()
		watcher := backend.NewWatcher(probe, cfg.FocusInterval)
		defer watcher.Stop()
		opts.Watcher = watcher
		opts.Judge = probe
	}

	model := ui.NewModel(desktop, root, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	desktop.Attach(program.Send)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	res := model.Result()
	events.App.Result(res.ID, res.Text)
	events.App.Stop(err)
	if err != nil {
		return err
	}
	if cfg.Once {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", res.ID, res.Text)
	}
	return nil
}

// LoadDefinition reads the menu file, or returns the demo menu when path is
// empty.
func LoadDefinition(path string) (menu.Definition, error) {
	if path == "" {
		return menudef.ParseString(demoMenu)
	}
	return menudef.Load(path)
}

func screenSize(cfg Config) (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	if cfg.Width > 0 {
		width = cfg.Width
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}
	return width, height
}

// WriteListing prints def as a table of labels indented by depth, ids and
// item states.
func WriteListing(w io.Writer, def menu.Definition) error {
	rows := [][]string{{"LABEL", "ID", "STATE"}}
	rows = appendRows(rows, def, 0)
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func appendRows(rows [][]string, def menu.Definition, depth int) [][]string {
	indent := strings.Repeat("  ", depth)
	for _, it := range def.Items {
		if it.Separator {
			rows = append(rows, []string{indent + "────", "", "separator"})
			continue
		}
		id := strconv.Itoa(it.ID)
		if it.Submenu != nil {
			id = ""
		}
		rows = append(rows, []string{indent + text.ParseLabel(it.Text).Display, id, itemState(it)})
		if it.Submenu != nil {
			rows = appendRows(rows, *it.Submenu, depth+1)
		}
	}
	return rows
}

func itemState(it menu.DefinitionItem) string {
	var parts []string
	if it.Submenu != nil {
		parts = append(parts, "submenu")
	}
	if it.Disabled {
		parts = append(parts, "disabled")
	}
	if it.Checked {
		parts = append(parts, "checked")
	}
	if it.Radio {
		parts = append(parts, "radio")
	}
	return strings.Join(parts, ",")
}
