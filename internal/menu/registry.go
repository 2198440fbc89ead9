package menu

import (
	"image"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/theme"
)

// Settings is the configuration the engine consults while tracking.
type Settings interface {
	AnimationsDisabled() bool
}

// StaticSettings is a fixed Settings value.
type StaticSettings struct {
	NoAnimations bool
}

func (s StaticSettings) AnimationsDisabled() bool { return s.NoAnimations }

// Options configure a Registry. Zero fields pick raster defaults.
type Options struct {
	// Theme opens the renderer for each new window. When it fails the
	// Fallback renderer is used instead.
	Theme    theme.Opener
	Fallback theme.Renderer
	Measurer text.Measurer
	Settings Settings
	Font     *text.Font
	// Exempt lists screen rectangles where pointer presses never count as
	// outside interaction.
	Exempt []image.Rectangle
}

// Registry is the process-wide tracking context. It knows which tree is
// tracking, which node receives keyboard input, and the window snapshots
// taken when tracking began. It is used from the tracking goroutine only.
type Registry struct {
	desktop  host.Desktop
	opener   theme.Opener
	fallback theme.Renderer
	measurer text.Measurer
	settings Settings
	font     *text.Font
	exempt   []image.Rectangle

	windows map[host.WindowID]*Menu

	// sessions is the chain of open nodes from the root down to the one
	// owning keyboard routing.
	sessions []*Menu
	root     *Menu

	oldActive     host.WindowID
	oldForeground host.WindowID
}

// NewRegistry returns an empty registry bound to d.
func NewRegistry(d host.Desktop, opts Options) *Registry {
	r := &Registry{
		desktop:  d,
		opener:   opts.Theme,
		fallback: opts.Fallback,
		measurer: opts.Measurer,
		settings: opts.Settings,
		font:     opts.Font,
		windows:  make(map[host.WindowID]*Menu),
	}
	if r.fallback == nil {
		r.fallback = theme.NewRaster(theme.DefaultPalette)
	}
	if r.opener == nil {
		r.opener = theme.Static(r.fallback)
	}
	if r.measurer == nil {
		r.measurer = text.FaceMeasurer{}
	}
	if r.settings == nil {
		r.settings = StaticSettings{}
	}
	if r.font == nil {
		r.font = text.Default()
	}
	r.SetExemptRegions(opts.Exempt)
	return r
}

// Desktop returns the desktop the registry tracks on.
func (r *Registry) Desktop() host.Desktop { return r.desktop }

// Active returns the node that owns keyboard routing, or nil.
func (r *Registry) Active() *Menu {
	if len(r.sessions) == 0 {
		return nil
	}
	return r.sessions[len(r.sessions)-1]
}

// ActiveRoot returns the root of the tree being tracked, or nil.
func (r *Registry) ActiveRoot() *Menu { return r.root }

// Depth reports how many tracking sessions are stacked.
func (r *Registry) Depth() int { return len(r.sessions) }

// setActive makes m the innermost session. The stack is rebuilt from m's
// ancestor chain so popping to a parent drops every deeper session.
func (r *Registry) setActive(m *Menu) {
	r.sessions = r.sessions[:0]
	if m == nil {
		return
	}
	for p := m; p != nil; p = p.parent {
		r.sessions = append(r.sessions, p)
	}
	for i, j := 0, len(r.sessions)-1; i < j; i, j = i+1, j-1 {
		r.sessions[i], r.sessions[j] = r.sessions[j], r.sessions[i]
	}
	if r.root == nil {
		r.root = r.sessions[0]
	}
}

func (r *Registry) clear() {
	r.sessions = nil
	r.root = nil
	r.oldActive = host.NoWindow
	r.oldForeground = host.NoWindow
}

// SetExemptRegions replaces the screen rectangles where presses are allowed
// without dismissing the menu.
func (r *Registry) SetExemptRegions(regions []image.Rectangle) {
	r.exempt = append([]image.Rectangle(nil), regions...)
}

func (r *Registry) isExempt(p image.Point) bool {
	for _, region := range r.exempt {
		if p.In(region) {
			return true
		}
	}
	return false
}

func (r *Registry) register(m *Menu) {
	if m.window != nil {
		r.windows[m.window.ID()] = m
	}
}

func (r *Registry) unregister(m *Menu) {
	if m.window != nil {
		delete(r.windows, m.window.ID())
	}
}

// menuFor returns the node owning window id, if any.
func (r *Registry) menuFor(id host.WindowID) *Menu {
	return r.windows[id]
}

// inFamily reports whether id belongs to the tree rooted at root.
func (r *Registry) inFamily(root *Menu, id host.WindowID) bool {
	m := r.windows[id]
	return m != nil && root != nil && m.Root() == root
}

func (r *Registry) animationsDisabled() bool {
	return r.settings.AnimationsDisabled()
}
