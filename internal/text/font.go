// Package text loads font faces and measures strings for menu layout.
package text

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrUnknownFace is returned (wrapped) for descriptors naming no known face.
var ErrUnknownFace = errors.New("text: unknown face")

const (
	basicName = "basic"
	dpi       = 72
)

var faces = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"italic":  goitalic.TTF,
	"mono":    gomono.TTF,
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*opentype.Font{}
)

// Descriptor names a face and a point size.
type Descriptor struct {
	Name string
	Size float64
}

func (d Descriptor) String() string {
	return d.Name + ":" + strconv.FormatFloat(d.Size, 'f', -1, 64)
}

// ParseDescriptor reads "name:size" (or just "name", which keeps the face's
// default size).
func ParseDescriptor(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}, fmt.Errorf("empty font descriptor")
	}
	name, size, hasSize := strings.Cut(s, ":")
	desc := Descriptor{Name: strings.ToLower(strings.TrimSpace(name)), Size: 13}
	if hasSize {
		v, err := strconv.ParseFloat(strings.TrimSpace(size), 64)
		if err != nil || v <= 0 {
			return Descriptor{}, fmt.Errorf("invalid font size %q", size)
		}
		desc.Size = v
	}
	if desc.Name != basicName {
		if _, ok := faces[desc.Name]; !ok {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownFace, desc.Name)
		}
	}
	return desc, nil
}

// Font is a loaded face plus the descriptor it came from.
type Font struct {
	desc Descriptor
	face font.Face
}

var defaultFont = &Font{
	desc: Descriptor{Name: basicName, Size: 13},
	face: basicfont.Face7x13,
}

// Default returns the built-in bitmap face. It never fails.
func Default() *Font {
	return defaultFont
}

// Open loads the face named by desc.
func Open(desc Descriptor) (*Font, error) {
	if desc.Name == basicName {
		return defaultFont, nil
	}
	ttf, ok := faces[desc.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFace, desc.Name)
	}
	f, err := parseFace(desc.Name, ttf)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    desc.Size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %s: %w", desc, err)
	}
	return &Font{desc: desc, face: face}, nil
}

func parseFace(name string, ttf []byte) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[name]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse face %s: %w", name, err)
	}
	parsed[name] = f
	return f, nil
}

func (f *Font) Descriptor() Descriptor { return f.desc }

func (f *Font) Face() font.Face { return f.face }

// Measurer reports the extent of a display string.
type Measurer interface {
	Measure(f *Font, s string) image.Point
}

// FaceMeasurer measures in pixels with the font's face.
type FaceMeasurer struct{}

func (FaceMeasurer) Measure(f *Font, s string) image.Point {
	if f == nil {
		f = defaultFont
	}
	face := f.Face()
	width := font.MeasureString(face, s).Ceil()
	height := face.Metrics().Height.Ceil()
	return image.Pt(width, height)
}
