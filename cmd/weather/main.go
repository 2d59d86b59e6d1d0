package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/namefreezers/weather-lookup/internal/app"
	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/form"
	"github.com/namefreezers/weather-lookup/internal/logging"
)

const prompt = "Enter city name: "

// terminal draws form views as three text lines.
type terminal struct {
	out   io.Writer
	title cases.Caser
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{out: out, title: cases.Title(language.English)}
}

func (t *terminal) Render(v form.View) {
	switch v.State {
	case form.Fetching:
		fmt.Fprintln(t.out, "Fetching weather...")
	case form.ShowingError:
		fmt.Fprintf(t.out, "\n  %s\n\n", v.Temperature)
	case form.ShowingResult:
		fmt.Fprintf(t.out, "\n  %s\n  %s\n  %s\n\n", v.Temperature, v.Emoji, t.title.String(v.Description))
	}
}

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so that the exit code is reported only
// after they have all executed.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("configuration error: %v", err)
		return 1
	}

	// Keep the terminal quiet unless asked otherwise.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger, err := logging.New(level)
	if err != nil {
		log.Printf("cannot initialize logger: %v", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, cleanup, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize lookup service", zap.Error(err))
		return 1
	}
	defer cleanup()

	f := form.New(svc, newTerminal(os.Stdout), logger)

	// One-shot mode: weather <city...>
	if len(os.Args) > 1 {
		city := strings.Join(os.Args[1:], " ")
		if err := f.Submit(ctx, city); err != nil {
			logger.Error("submit failed", zap.Error(err))
			return 1
		}
		f.Wait()
		if f.View().State == form.ShowingError {
			return 1
		}
		return 0
	}

	runInteractive(ctx, f, os.Stdin, os.Stdout)
	return 0
}

// runInteractive reads one city per line until EOF or until ctx is done.
// Input is read on its own goroutine so an interrupt at the prompt returns
// immediately; that goroutine stays parked on the reader until it yields.
func runInteractive(ctx context.Context, f *form.Form, in io.Reader, out io.Writer) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return
		}
		fmt.Fprint(out, prompt)

		var city string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return
			}
			city = line
		}

		if err := f.Submit(ctx, city); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		f.Wait()
	}
}
