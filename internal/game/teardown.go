package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/logger"
)

// teardown releases acquired resources in reverse order of acquisition.
// Each release runs exactly once.
type teardown struct {
	steps []teardownStep
}

type teardownStep struct {
	name    string
	release func()
}

// push registers release to run when the teardown is unwound.
func (t *teardown) push(name string, release func()) {
	t.steps = append(t.steps, teardownStep{name: name, release: release})
}

// len returns the number of pending releases.
func (t *teardown) len() int {
	return len(t.steps)
}

// run unwinds all pending releases, last pushed first.
func (t *teardown) run() {
	for len(t.steps) > 0 {
		last := len(t.steps) - 1
		step := t.steps[last]
		t.steps = t.steps[:last]

		logger.Debug("releasing", zap.String("resource", step.name))
		step.release()
	}
}
