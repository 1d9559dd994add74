// Package scenepreview parses preview command flags and runs the terminal
// scene preview.
package scenepreview

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	entrypoint "github.com/atelierfolio/atelier/internal/platform/cmd"
	"github.com/atelierfolio/atelier/internal/preview"
)

// Config holds preview command configuration.
type Config struct {
	SceneTick time.Duration `env:"ATELIER_SCENE_TICK"        envDefault:"50ms"`
	Seed      int64         `env:"ATELIER_PREVIEW_SEED"      envDefault:"42"`
	Particles int           `env:"ATELIER_PREVIEW_PARTICLES" envDefault:"3000"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseConfig(fs, args, bindFlags)
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.DurationVar(&cfg.SceneTick, "tick", cfg.SceneTick, "frame interval")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "particle and shape seed")
	fs.IntVar(&cfg.Particles, "particles", cfg.Particles, "particle field capacity")
}

// Run takes over the terminal until ctx ends or the user quits.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePreview, func(ctx context.Context) error {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()
		screen.EnableMouse()

		return preview.New(screen, options(cfg)).Run(ctx)
	})
}

func options(cfg Config) preview.Options {
	return preview.Options{
		Tick:      cfg.SceneTick,
		Seed:      cfg.Seed,
		Particles: cfg.Particles,
	}
}
