package config

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popmenu/internal/app"
	"github.com/atomicstack/popmenu/internal/text"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// AnimationsDisabled lets a loaded configuration serve as menu settings.
func (c Config) AnimationsDisabled() bool {
	return c.App.AnimationsDisabled()
}

const (
	envMenuFile      = "POPMENU_FILE"
	envX             = "POPMENU_X"
	envY             = "POPMENU_Y"
	envKeyboard      = "POPMENU_KEYBOARD"
	envOnce          = "POPMENU_ONCE"
	envNoAnimations  = "POPMENU_NO_ANIMATIONS"
	envExempt        = "POPMENU_EXEMPT"
	envSocketPath    = "POPMENU_SOCKET"
	envFocusInterval = "POPMENU_FOCUS_INTERVAL"
	envWidth         = "POPMENU_WIDTH"
	envHeight        = "POPMENU_HEIGHT"
	envFont          = "POPMENU_FONT"
	envTrace         = "POPMENU_TRACE"
	envLogFile       = "POPMENU_LOG_FILE"
	envList          = "POPMENU_LIST"
)

const defaultFocusInterval = 500 * time.Millisecond

// ErrExempt reports an exemption rectangle that is not x,y,w,h.
var ErrExempt = errors.New("malformed exempt rectangle")

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popmenu", flag.ContinueOnError)
	usage := new(strings.Builder)
	fs.SetOutput(usage)

	menuFile := fs.String("menu", envOrDefault(env, envMenuFile, ""), "menu definition file (- reads stdin, empty uses the demo menu)")
	x := fs.Int("x", envOrInt(env, envX, -1), "anchor column (-1 centres the menu)")
	y := fs.Int("y", envOrInt(env, envY, -1), "anchor row (-1 centres the menu)")
	keyboard := fs.Bool("keyboard", envOrBool(env, envKeyboard, false), "open the menu in keyboard mode")
	once := fs.Bool("once", envOrBool(env, envOnce, false), "track the menu immediately, print the result and exit")
	noAnimations := fs.Bool("no-animations", envOrBool(env, envNoAnimations, false), "hide committed items immediately")
	exempt := fs.String("exempt", envOrDefault(env, envExempt, ""), "semicolon separated x,y,w,h rectangles where clicks never dismiss the menu")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket used for focus tracking")
	focusInterval := fs.Duration("focus-interval", envOrDuration(env, envFocusInterval, defaultFocusInterval), "how often tmux focus is polled")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "screen width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "screen height in rows (0 uses terminal height)")
	font := fs.String("font", envOrDefault(env, envFont, ""), "font descriptor name:size for raster rendering")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	list := fs.Bool("list", envOrBool(env, envList, false), "print the menu tree and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, fmt.Errorf("%w\n%s", err, usage.String())
		}
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	rects, err := ParseRects(*exempt)
	if err != nil {
		return Config{}, err
	}
	var desc *text.Descriptor
	if strings.TrimSpace(*font) != "" {
		d, err := text.ParseDescriptor(*font)
		if err != nil {
			return Config{}, fmt.Errorf("font: %w", err)
		}
		desc = &d
	}

	cfg := Config{
		App: app.Config{
			MenuFile:      *menuFile,
			Anchor:        image.Pt(*x, *y),
			Keyboard:      *keyboard,
			Once:          *once,
			List:          *list,
			NoAnimations:  *noAnimations,
			Exempt:        rects,
			SocketPath:    *socket,
			FocusInterval: *focusInterval,
			Width:         *width,
			Height:        *height,
			Font:          desc,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":          *menuFile,
			"x":             strconv.Itoa(*x),
			"y":             strconv.Itoa(*y),
			"keyboard":      strconv.FormatBool(*keyboard),
			"once":          strconv.FormatBool(*once),
			"noAnimations":  strconv.FormatBool(*noAnimations),
			"exempt":        *exempt,
			"socket":        *socket,
			"focusInterval": focusInterval.String(),
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"font":          *font,
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
			"list":          strconv.FormatBool(*list),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ParseRects reads semicolon separated x,y,w,h rectangles. Blank input yields
// no rectangles.
func ParseRects(s string) ([]image.Rectangle, error) {
	var rects []image.Rectangle
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %q", ErrExempt, part)
		}
		var v [4]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrExempt, part)
			}
			v[i] = n
		}
		// A literal keeps negative sizes visible to Validate; image.Rect would
		// swap the corners.
		rects = append(rects, image.Rectangle{
			Min: image.Pt(v[0], v[1]),
			Max: image.Pt(v[0]+v[2], v[1]+v[3]),
		})
	}
	return rects, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configurations the application cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("screen size must not be negative (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.FocusInterval <= 0 {
		return fmt.Errorf("focus interval must be positive (got %s)", cfg.App.FocusInterval)
	}
	for _, r := range cfg.App.Exempt {
		if r.Dx() <= 0 || r.Dy() <= 0 {
			return fmt.Errorf("%w: %v is empty", ErrExempt, r)
		}
	}
	if cfg.App.Once && cfg.App.List {
		return errors.New("--once and --list are mutually exclusive")
	}
	return nil
}
