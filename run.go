package willow2d

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the window size. Zero uses the engine's standard
	// size.
	Width, Height int
	Resizable     bool
	// TPS overrides Ebitengine's ticks per second when positive.
	TPS int
}

// Run opens a window and runs e until the window closes, then closes e.
func Run(e *Engine, cfg RunConfig) error {
	if e == nil {
		return eris.Wrap(ErrPrecondition, "run: nil engine")
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = e.settings.StandardWidth, e.settings.StandardHeight
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	e.log.Info().Str("title", cfg.Title).Int("width", w).Int("height", h).Msg("starting game loop")
	runErr := ebiten.RunGame(e)
	closeErr := e.Close()
	if runErr != nil {
		return eris.Wrap(runErr, "run game")
	}
	return closeErr
}
