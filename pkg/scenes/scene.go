package scenes

import (
	"github.com/gonewx/arena/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene       = (*ArenaScene)(nil)
	_ game.Closer = (*ArenaScene)(nil)
	_ Scene       = (*GameOverScene)(nil)
	_ Scene       = (*LoadErrorScene)(nil)
)
