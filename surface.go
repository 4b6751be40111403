package trellis

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is an off-screen drawing target. Every element owns at most one,
// sized to its local bounds.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	// DrawSurface draws src with its top-left corner at dst.X, dst.Y and
	// the given opacity.
	DrawSurface(src Surface, dst Rect, opacity float64)
	PushClip(r Rect)
	PopClip()
	Dispose()
}

// Device creates surfaces. The core never touches platform handles itself.
type Device interface {
	NewSurface(w, h int) Surface
}

// EbitenDevice creates surfaces backed by *ebiten.Image.
type EbitenDevice struct{}

// NewSurface allocates a new offscreen image of the given size.
func (EbitenDevice) NewSurface(w, h int) Surface {
	return NewEbitenSurface(w, h)
}

// EbitenSurface is a Surface over an *ebiten.Image. Clip rectangles are
// applied by drawing into sub-images, which keep the parent's coordinates.
type EbitenSurface struct {
	image *ebiten.Image
	clips []image.Rectangle
	owned bool
}

// NewEbitenSurface creates a persistent offscreen canvas of the given size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return &EbitenSurface{image: ebiten.NewImage(w, h), owned: true}
}

// WrapScreen wraps an image the surface does not own, typically the screen
// passed to ebiten.Game.Draw. Resize and Dispose leave it alone.
func WrapScreen(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{image: img}
}

// Image returns the current draw target: the full image, or the sub-image of
// the innermost clip.
func (s *EbitenSurface) Image() *ebiten.Image {
	if s.image == nil {
		return nil
	}
	if n := len(s.clips); n > 0 {
		return s.image.SubImage(s.clips[n-1]).(*ebiten.Image)
	}
	return s.image
}

// Size returns the image size in pixels.
func (s *EbitenSurface) Size() (int, int) {
	if s.image == nil {
		return 0, 0
	}
	b := s.image.Bounds()
	return b.Dx(), b.Dy()
}

// Resize deallocates the old image and creates a new one at the given size.
func (s *EbitenSurface) Resize(w, h int) {
	if !s.owned {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
	}
	s.image = ebiten.NewImage(w, h)
	s.clips = s.clips[:0]
}

// Clear fills the whole image with transparent black.
func (s *EbitenSurface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// DrawSurface draws another EbitenSurface onto this one. Surfaces from other
// devices are ignored.
func (s *EbitenSurface) DrawSurface(src Surface, dst Rect, opacity float64) {
	es, ok := src.(*EbitenSurface)
	if !ok || es.image == nil || s.image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleAlpha(float32(clamp01(opacity)))
	s.Image().DrawImage(es.image, &op)
}

// PushClip restricts drawing to r intersected with the current clip.
func (s *EbitenSurface) PushClip(r Rect) {
	clip := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
	outer := s.image.Bounds()
	if n := len(s.clips); n > 0 {
		outer = s.clips[n-1]
	}
	s.clips = append(s.clips, clip.Intersect(outer))
}

// PopClip restores the previous clip. Panics without a matching PushClip.
func (s *EbitenSurface) PopClip() {
	if len(s.clips) == 0 {
		panic("trellis: PopClip without matching PushClip")
	}
	s.clips = s.clips[:len(s.clips)-1]
}

// Dispose deallocates the underlying image. The surface should not be used
// after calling Dispose.
func (s *EbitenSurface) Dispose() {
	if s.owned && s.image != nil {
		s.image.Deallocate()
	}
	s.image = nil
	s.clips = nil
}
