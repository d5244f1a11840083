// Package printlayout fits rendered content onto a single printed page.
package printlayout

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"
)

const (
	DPI          = 76
	PageWidthIn  = 8.5
	PageHeightIn = 11.0

	PageWidthPx  = PageWidthIn * DPI
	PageHeightPx = PageHeightIn * DPI

	// ScaleVar is the CSS custom property read by the print stylesheet.
	ScaleVar = "--print-scale"
	// WrapperClass marks the element that print styles scale.
	WrapperClass = "print-scale-wrapper"

	ResetDelay = time.Second
)

// Scale returns the factor that fits w×h pixels on a letter page at DPI,
// never enlarging. Non-positive or non-finite measurements yield 1.
func Scale(w, h float64) float64 {
	return Fit(w, h, PageWidthPx, PageHeightPx)
}

// Fit is Scale for an arbitrary page size in any unit shared by all four
// arguments.
func Fit(w, h, pageW, pageH float64) float64 {
	if !measurable(w) || !measurable(h) || !measurable(pageW) || !measurable(pageH) {
		return 1
	}
	return math.Min(1, math.Min(pageW/w, pageH/h))
}

func measurable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Measurer reports the natural size of the content to print.
type Measurer interface {
	Measure() (w, h float64)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func() (w, h float64)

func (f MeasureFunc) Measure() (float64, float64) { return f() }

// Wrapper holds the print override for one piece of content. The zero value
// is not usable; call NewWrapper.
type Wrapper struct {
	mu      sync.Mutex
	content Measurer
	wrapped bool
	scale   float64
	applied bool
	timer   *time.Timer

	// ResetDelay is how long the override survives after Print.
	ResetDelay time.Duration
}

// NewWrapper prepares content for printing. content may be nil, in which
// case Print just runs the trigger.
func NewWrapper(content Measurer) *Wrapper {
	return &Wrapper{content: content, ResetDelay: ResetDelay}
}

// Wrap places the content inside the scaling wrapper. Repeated calls reuse
// the existing wrapper and report false.
func (w *Wrapper) Wrap() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wrapLocked()
}

func (w *Wrapper) wrapLocked() bool {
	if w.wrapped || w.content == nil {
		return false
	}
	w.wrapped = true
	return true
}

// Apply wraps the content, measures it at its natural size and stores the
// resulting scale as the override. Without content it returns 1.
func (w *Wrapper) Apply() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.content == nil {
		return 1
	}
	w.wrapLocked()
	w.applied = false

	cw, ch := w.content.Measure()
	w.scale = Scale(cw, ch)
	w.applied = true
	return w.scale
}

// Current returns the applied override, if any.
func (w *Wrapper) Current() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale, w.applied
}

// Style renders the override as an inline style declaration, or "" when
// none is applied.
func (w *Wrapper) Style() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.applied {
		return ""
	}
	return fmt.Sprintf("%s: %s", ScaleVar, strconv.FormatFloat(w.scale, 'f', -1, 64))
}

// Reset removes the override.
func (w *Wrapper) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.applied = false
	w.scale = 0
}

// Print applies the override, runs trigger and schedules removal of the
// override after ResetDelay.
func (w *Wrapper) Print(trigger func() error) error {
	if w.content == nil {
		return trigger()
	}

	w.Apply()
	err := trigger()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.ResetDelay, w.Reset)
	w.mu.Unlock()

	return err
}
