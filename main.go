package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/olivier-w/climpviz/internal/config"
	"github.com/olivier-w/climpviz/internal/logger"
	"github.com/olivier-w/climpviz/internal/media"
	"github.com/olivier-w/climpviz/internal/playback"
	"github.com/olivier-w/climpviz/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: climpviz [file-or-directory]")
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	opts := ui.Options{
		Palette: cfg.Palette(),
		Style:   cfg.StartStyle(),
		FPS:     cfg.FPS,
		Profile: termenv.EnvColorProfile(),
		Logger:  log,
		Dir:     ".",
	}
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			opts.Dir = args[0]
		} else {
			if err := media.CheckKind(args[0]); err != nil {
				return err
			}
			opts.Path = args[0]
		}
	}

	analyser, err := playback.NewAnalyser(cfg.Analyser())
	if err != nil {
		return err
	}
	engine, err := playback.NewOtoEngine(analyser, log)
	if err != nil {
		log.Error("audio output unavailable", "error", err)
		if errors.Is(err, playback.ErrUnsupportedPlatform) {
			return fmt.Errorf("cannot start playback: %w", err)
		}
		return err
	}
	defer engine.Stop()
	opts.Engine = engine

	log.Info("starting", "style", cfg.Style, "fps", cfg.FPS, "fft_size", cfg.FFTSize)

	program := tea.NewProgram(ui.New(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// openLogger writes logs to the configured file, or discards them. The
// terminal belongs to the UI.
func openLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	lc := cfg.Logger()
	if cfg.LogFile == "" {
		return logger.NewLogger(lc), io.NopCloser(nil), nil
	}
	f, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	lc.Output = f
	return logger.NewLogger(lc), f, nil
}
