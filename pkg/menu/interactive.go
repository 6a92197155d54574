package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultInvalidMessage is shown after a key that matches no selection
const DefaultInvalidMessage = "Invalid choice"

const (
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyBackspace = '\b'
	keyDelete    = 0x7f
)

// Action runs when its selection is chosen
type Action func(ctx context.Context) error

// Interactive drives a Menu: it renders, reads a key and dispatches to the
// matching action until the exit key is chosen
type Interactive struct {
	menu    *Menu
	actions map[int]Action
	display Display
	input   Input

	invalidMessage string
	pause          bool
	logger         *zap.Logger
}

// Option configures an Interactive
type Option func(*Interactive)

// WithInvalidMessage overrides the message shown for unknown keys
func WithInvalidMessage(message string) Option {
	return func(i *Interactive) {
		if !isBlank(message) {
			i.invalidMessage = message
		}
	}
}

// WithPause waits for a key press after every action
func WithPause(pause bool) Option {
	return func(i *Interactive) {
		i.pause = pause
	}
}

// WithLogger sets the logger used for selection tracing
func WithLogger(logger *zap.Logger) Option {
	return func(i *Interactive) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInteractive wraps m with dispatch over d and in
func NewInteractive(m *Menu, d Display, in Input, opts ...Option) *Interactive {
	i := &Interactive{
		menu:           m,
		actions:        make(map[int]Action),
		display:        d,
		input:          in,
		invalidMessage: DefaultInvalidMessage,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Title returns the wrapped menu's title
func (i *Interactive) Title() string {
	return i.menu.Title()
}

// Menu returns the wrapped menu
func (i *Interactive) Menu() *Menu {
	return i.menu
}

// Add registers name under the next auto key and binds action to it
func (i *Interactive) Add(name string, action Action) error {
	key := i.menu.NextKey()
	if _, err := i.menu.AddSelection(name); err != nil {
		return err
	}
	i.actions[key] = action
	return nil
}

// AddAt registers name under key and binds action to it
func (i *Interactive) AddAt(key int, name string, action Action) error {
	if _, err := i.menu.AddSelectionAt(key, name); err != nil {
		return err
	}
	i.actions[key] = action
	return nil
}

// Open runs the menu loop until the exit key is chosen.
// ctx is checked between key presses; a read already blocked on input is not interrupted.
func (i *Interactive) Open(ctx context.Context) error {
	message := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.menu.Render(i.display, message); err != nil {
			return err
		}
		message = ""

		key, ok, err := i.readSelection()
		if err != nil {
			return err
		}
		if !ok {
			i.logger.Debug("invalid selection", zap.String("menu", i.menu.Title()))
			message = i.invalidMessage
			continue
		}
		if key == ExitKey {
			i.logger.Debug("menu exit", zap.String("menu", i.menu.Title()))
			return nil
		}

		label, _ := i.menu.Label(key)
		i.logger.Debug("menu selection",
			zap.String("menu", i.menu.Title()),
			zap.Int("key", key),
			zap.String("label", label),
		)

		action := i.actions[key]
		if action == nil {
			continue
		}
		if err := action(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			i.logger.Warn("action failed",
				zap.String("menu", i.menu.Title()),
				zap.Int("key", key),
				zap.Error(err),
			)
			message = fmt.Sprintf("%s: %v", label, err)
		}

		if i.pause {
			if err := WaitForKeyPress(i.display, i.input); err != nil {
				return err
			}
		}
	}
}

// readSelection reads keys until they resolve to a registered key or the
// exit key. ok is false when the typed sequence matches nothing.
func (i *Interactive) readSelection() (int, bool, error) {
	var typed strings.Builder
	for {
		r, err := i.input.ReadKey()
		if err != nil {
			return 0, false, err
		}

		switch {
		case r == keyEnter || r == keyNewline:
			if typed.Len() == 0 {
				continue
			}
			key, ok := i.resolve(typed.String())
			return key, ok, nil
		case r == keyBackspace || r == keyDelete:
			s := typed.String()
			if len(s) > 0 {
				typed.Reset()
				typed.WriteString(s[:len(s)-1])
			}
			continue
		case (r >= '0' && r <= '9') || (r == '-' && typed.Len() == 0):
			typed.WriteRune(r)
		default:
			return 0, false, nil
		}

		s := typed.String()
		exact, extendable := i.match(s)
		if !exact && !extendable {
			return 0, false, nil
		}
		if exact && !extendable {
			key, ok := i.resolve(s)
			return key, ok, nil
		}
	}
}

// match reports whether s names a key exactly and whether a longer key starts with s
func (i *Interactive) match(s string) (exact, extendable bool) {
	candidates := append([]int{ExitKey}, i.menu.order...)
	for _, key := range candidates {
		k := strconv.Itoa(key)
		if k == s {
			exact = true
		} else if strings.HasPrefix(k, s) {
			extendable = true
		}
	}
	return exact, extendable
}

func (i *Interactive) resolve(s string) (int, bool) {
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if key == ExitKey {
		return ExitKey, true
	}
	_, ok := i.menu.Label(key)
	return key, ok
}
