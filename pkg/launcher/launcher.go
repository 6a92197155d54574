// Package launcher builds an interactive menu from configuration.
package launcher

import (
	"fmt"

	"github.com/lvim-tech/cmenu/pkg/action"
	"github.com/lvim-tech/cmenu/pkg/config"
	"github.com/lvim-tech/cmenu/pkg/menu"
	"go.uber.org/zap"
)

// New builds an Interactive for cfg rendering to d and reading from in.
// Item order in cfg is the display order.
func New(cfg config.MenuConfig, d menu.Display, in menu.Input, env action.Env, logger *zap.Logger) (*menu.Interactive, error) {
	start := cfg.StartIndex
	if start == 0 {
		start = menu.DefaultStartingIndex
	}

	m, err := menu.New(cfg.Title, start)
	if err != nil {
		return nil, err
	}
	if cfg.ExitLabel != "" {
		if err := m.SetExitLabel(cfg.ExitLabel); err != nil {
			return nil, err
		}
	}

	interactive := menu.NewInteractive(m, d, in,
		menu.WithInvalidMessage(cfg.InvalidMessage),
		menu.WithPause(cfg.PauseAfterAction),
		menu.WithLogger(logger),
	)

	for idx, item := range cfg.Items {
		act, err := action.Build(item.Action, env)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", idx+1, item.Name, err)
		}

		if item.Key != nil {
			err = interactive.AddAt(*item.Key, item.Name, act)
		} else {
			err = interactive.Add(item.Name, act)
		}
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", idx+1, item.Name, err)
		}
	}

	return interactive, nil
}
