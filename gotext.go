package trellis

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font families registered by NewGoTextShaper.
const (
	FamilyGo     = "Go"
	FamilyGoMono = "Go Mono"
)

// ErrUnknownFontFamily is returned when a family has not been registered.
var ErrUnknownFontFamily = errors.New("trellis: unknown font family")

// FontFaces holds the TTF/OTF data of one family. Only Regular is required;
// missing variants fall back to Regular.
type FontFaces struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

type fontFamily struct {
	regular    *text.GoTextFaceSource
	bold       *text.GoTextFaceSource
	italic     *text.GoTextFaceSource
	boldItalic *text.GoTextFaceSource
}

// GoTextShaper shapes text with ebiten's go-text backed faces.
type GoTextShaper struct {
	families map[string]*fontFamily
	fallback string
}

// NewGoTextShaper creates a shaper with the Go and Go Mono families
// registered. Go is the fallback for unknown families.
func NewGoTextShaper() (*GoTextShaper, error) {
	s := &GoTextShaper{families: make(map[string]*fontFamily), fallback: FamilyGo}
	if err := s.RegisterFamily(FamilyGo, FontFaces{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	}); err != nil {
		return nil, err
	}
	if err := s.RegisterFamily(FamilyGoMono, FontFaces{
		Regular:    gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// RegisterFamily parses and registers a font family under name, replacing
// any previous registration.
func (s *GoTextShaper) RegisterFamily(name string, faces FontFaces) error {
	if len(faces.Regular) == 0 {
		return fmt.Errorf("register family %q: regular face is required", name)
	}
	load := func(data []byte) (*text.GoTextFaceSource, error) {
		if len(data) == 0 {
			return nil, nil
		}
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("register family %q: %w", name, err)
		}
		return src, nil
	}
	f := &fontFamily{}
	var err error
	if f.regular, err = load(faces.Regular); err != nil {
		return err
	}
	if f.bold, err = load(faces.Bold); err != nil {
		return err
	}
	if f.italic, err = load(faces.Italic); err != nil {
		return err
	}
	if f.boldItalic, err = load(faces.BoldItalic); err != nil {
		return err
	}
	s.families[name] = f
	return nil
}

// SetFallback selects the family used for unknown family names.
func (s *GoTextShaper) SetFallback(name string) error {
	if _, ok := s.families[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFontFamily, name)
	}
	s.fallback = name
	return nil
}

// Face builds the face for a set of properties.
func (s *GoTextShaper) Face(p TextProps) (*text.GoTextFace, error) {
	fam, ok := s.families[p.Family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFontFamily, p.Family)
	}
	bold := p.Weight >= 600
	italic := p.Style == StyleItalic || p.Style == StyleOblique
	src := fam.regular
	switch {
	case bold && italic && fam.boldItalic != nil:
		src = fam.boldItalic
	case bold && fam.bold != nil:
		src = fam.bold
	case italic && fam.italic != nil:
		src = fam.italic
	}

	size := p.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	face := &text.GoTextFace{Source: src, Size: size}
	if p.Weight != 0 && p.Weight != WeightNormal && p.Weight != WeightBold {
		face.SetVariation(text.MustParseTag("wght"), float32(p.Weight))
	}
	if p.Stretch != 0 && p.Stretch != StretchNormal {
		face.SetVariation(text.MustParseTag("wdth"), float32(p.Stretch))
	}
	return face, nil
}

// Shape lays the string out into lines. Unknown families use the fallback.
func (s *GoTextShaper) Shape(str string, p TextProps, maxW, maxH float64) TextLayout {
	face, err := s.Face(p)
	if err != nil {
		p.Family = s.fallback
		face, err = s.Face(p)
		if err != nil {
			return &goTextLayout{}
		}
	}
	m := face.Metrics()
	lineHeight := m.HAscent + m.HDescent + m.HLineGap
	advance := func(line string) float64 { return text.Advance(line, face) }

	raw := wrapLines(str, maxW, p.Wrap, advance)
	if maxH > 0 && lineHeight > 0 {
		fit := max(int(maxH/lineHeight), 1)
		if len(raw) > fit {
			raw = raw[:fit]
		}
	}

	l := &goTextLayout{face: face, lineHeight: lineHeight}
	var widest float64
	widths := make([]float64, len(raw))
	for i, line := range raw {
		widths[i] = advance(line)
		widest = max(widest, widths[i])
	}
	alignW := widest
	if p.Wrap && maxW > 0 {
		alignW = maxW
	}
	for i, line := range raw {
		var x float64
		switch p.Align {
		case TextAlignCenter:
			x = (alignW - widths[i]) / 2
		case TextAlignRight:
			x = alignW - widths[i]
		}
		l.lines = append(l.lines, TextLine{Text: line, X: x, Y: float64(i) * lineHeight, Width: widths[i]})
	}
	l.size = Vec2{X: widest, Y: float64(len(raw)) * lineHeight}
	return l
}

// wrapLines splits s at newlines and, when wrap is on and maxW > 0, greedily
// at spaces so no line exceeds maxW. Words wider than maxW are broken
// between runes.
func wrapLines(s string, maxW float64, wrap bool, advance func(string) float64) []string {
	paragraphs := strings.Split(s, "\n")
	if !wrap || maxW <= 0 {
		return paragraphs
	}
	var out []string
	for _, para := range paragraphs {
		words := strings.Split(para, " ")
		cur := ""
		for i, word := range words {
			candidate := word
			if i > 0 {
				candidate = cur + " " + word
			}
			if i == 0 || advance(candidate) <= maxW {
				cur = candidate
			} else {
				out = append(out, cur)
				cur = word
			}
			for advance(cur) > maxW && utf8.RuneCountInString(cur) > 1 {
				head, tail := splitToWidth(cur, maxW, advance)
				out = append(out, head)
				cur = tail
			}
		}
		out = append(out, cur)
	}
	return out
}

// splitToWidth returns the longest rune prefix of s (at least one rune) that
// fits in maxW, and the remainder.
func splitToWidth(s string, maxW float64, advance func(string) float64) (string, string) {
	_, first := utf8.DecodeRuneInString(s)
	cut := first
	for i := range s {
		if i == 0 {
			continue
		}
		if advance(s[:i]) > maxW {
			break
		}
		cut = i
	}
	if advance(s[:cut]) > maxW {
		cut = first
	}
	return s[:cut], s[cut:]
}

// goTextLayout is the TextLayout produced by GoTextShaper.
type goTextLayout struct {
	face       *text.GoTextFace
	lines      []TextLine
	size       Vec2
	lineHeight float64
}

func (l *goTextLayout) Size() Vec2        { return l.size }
func (l *goTextLayout) Lines() []TextLine { return l.lines }

// Draw renders every line onto an ebiten surface.
func (l *goTextLayout) Draw(dst Surface, x, y float64, c Color) {
	es, ok := dst.(*EbitenSurface)
	if !ok || l.face == nil {
		return
	}
	img := es.Image()
	if img == nil {
		return
	}
	for _, line := range l.lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+line.X, y+line.Y)
		op.ColorScale.ScaleWithColor(c.toRGBA())
		text.Draw(img, line.Text, l.face, op)
	}
}

func (l *goTextLayout) Dispose() {
	l.lines = nil
	l.face = nil
}
