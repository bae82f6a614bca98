package willow2d

import (
	"time"

	"github.com/rs/zerolog"
)

// FrameStats holds per-frame counts and timings of a scene's Render.
type FrameStats struct {
	// Entities is the number of registry entities the 2D pass visited.
	Entities int
	// Drawn is the number of entities with at least one mesh drawn.
	Drawn int
	// DrawCalls is the number of meshes drawn.
	DrawCalls int
	// SkippedNoMesh counts entities whose renderer had no mesh.
	SkippedNoMesh int
	// SkippedHidden counts entities whose renderer was hidden.
	SkippedHidden int

	RenderTime time.Duration
	UpdateTime time.Duration
}

// logFrameStats writes stats at debug level. Called when Settings.Debug is on.
func logFrameStats(l *zerolog.Logger, frame uint64, s FrameStats) {
	l.Debug().
		Uint64("frame", frame).
		Int("entities", s.Entities).
		Int("drawn", s.Drawn).
		Int("draw_calls", s.DrawCalls).
		Int("skipped_no_mesh", s.SkippedNoMesh).
		Int("skipped_hidden", s.SkippedHidden).
		Dur("render", s.RenderTime).
		Dur("update", s.UpdateTime).
		Msg("frame stats")
}
