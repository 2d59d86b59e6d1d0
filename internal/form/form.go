// Package form holds the toolkit-independent presentation logic of the
// weather form: one city input, one submit action and three output labels.
//
// A submission runs the lookup on its own goroutine and hands the outcome to
// a Display. While a lookup is in flight the form refuses new submissions,
// the equivalent of a disabled button.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// ErrBusy is returned by Submit while a previous lookup is still running.
var ErrBusy = errors.New("a lookup is already in progress")

type State int

const (
	Idle State = iota
	Fetching
	ShowingResult
	ShowingError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case ShowingResult:
		return "result"
	case ShowingError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// View is what a front-end draws. On error Temperature carries the message
// and the other two labels are cleared.
type View struct {
	State       State
	Busy        bool
	Temperature string
	Emoji       string
	Description string
}

// Display receives every view change. Render is called with the form locked,
// so it must not call back into the form.
type Display interface {
	Render(View)
}

type DisplayFunc func(View)

func (f DisplayFunc) Render(v View) { f(v) }

// Looker is the lookup the form drives; services.LookupService satisfies it.
type Looker interface {
	Lookup(ctx context.Context, city string) (types.Weather, error)
}

type Form struct {
	lookup  Looker
	display Display
	logger  *zap.Logger

	mu   sync.Mutex
	view View
	wg   sync.WaitGroup
}

// New builds a form in the Idle state and renders it once.
func New(lookup Looker, display Display, logger *zap.Logger) *Form {
	f := &Form{lookup: lookup, display: display, logger: logger}
	f.mu.Lock()
	f.display.Render(f.view)
	f.mu.Unlock()
	return f
}

// Submit starts a lookup for city and returns immediately. The outcome is
// delivered to the Display; Submit itself only fails with ErrBusy.
func (f *Form) Submit(ctx context.Context, city string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.view.State == Fetching {
		return ErrBusy
	}
	f.view.State = Fetching
	f.view.Busy = true
	f.display.Render(f.view)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		w, err := f.lookup.Lookup(ctx, city)
		f.finish(w, err)
	}()
	return nil
}

func (f *Form) finish(w types.Weather, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		le := types.AsLookupError(err)
		f.logger.Debug("form showing error", zap.String("kind", string(le.Kind)))
		f.view = View{State: ShowingError, Temperature: le.Message}
	} else {
		f.view = View{
			State:       ShowingResult,
			Temperature: FormatTemperature(w.TemperatureF),
			Emoji:       w.Emoji,
			Description: w.Description,
		}
	}
	f.display.Render(f.view)
}

// View returns a snapshot of what is currently displayed.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Wait blocks until no lookup is in flight.
func (f *Form) Wait() { f.wg.Wait() }

// FormatTemperature renders a temperature label with two decimals.
func FormatTemperature(fahrenheit float64) string {
	return fmt.Sprintf("%.2f °F", fahrenheit)
}
