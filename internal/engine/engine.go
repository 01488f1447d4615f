package engine

import (
	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/models"
)

// Engine holds the validated world content and the configuration, and
// mints sessions from them. It has no mutable state of its own.
type Engine struct {
	world *models.World
	cfg   *config.Config
}

// NewEngine loads the embedded world content.
func NewEngine(cfg *config.Config) (*Engine, error) {
	world, err := models.LoadWorld()
	if err != nil {
		return nil, err
	}
	return &Engine{world: world, cfg: cfg}, nil
}

// World is the static content the engine was built from.
func (e *Engine) World() *models.World { return e.world }

// NewSession starts a fresh run. Restarting means calling this again;
// nothing survives the old session.
func (e *Engine) NewSession() *Session {
	return NewSession(e.world, e.cfg)
}
