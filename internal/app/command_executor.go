package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/alchemyrand/internal/core/command"
)

// Run executes a deferred command taken off the host task queue.
// This is the imperative shell for commands built by the menu handlers.
func (c *Controller) Run(ctx context.Context, cmd command.Command) error {
	switch typed := cmd.(type) {
	case command.FinalizeNewGame:
		c.currentPlayer = typed.PlayerID
		c.logger.Info("new game identity",
			zap.Stringer("player", typed.PlayerID),
			zap.Stringer("previous", typed.Previous))
		c.shuffleInto(c.stateFor(typed.PlayerID), false, false)
		return nil
	case command.Reshuffle:
		c.logger.Info("reshuffling", zap.String("reason", typed.Reason), zap.Bool("force", typed.Force))
		c.shuffleInto(&c.shared, typed.Force, false)
		return nil
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}
