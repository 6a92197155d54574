// Package action turns configured action tables into runnable menu actions.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/lvim-tech/cmenu/pkg/menu"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownType is returned for an action type with no builder
	ErrUnknownType = errors.New("unknown action type")

	// ErrMissingField is returned when a required action field is empty
	ErrMissingField = errors.New("missing action field")
)

// Env holds the streams actions run against
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExecConfig runs an external command
type ExecConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Dir     string   `mapstructure:"dir"`
}

// EchoConfig prints a line of text
type EchoConfig struct {
	Text string `mapstructure:"text"`
}

type header struct {
	Type string `mapstructure:"type"`
}

// Build decodes raw into an action. An empty table yields a no-op action.
func Build(raw map[string]interface{}, env Env) (menu.Action, error) {
	if len(raw) == 0 {
		return func(context.Context) error { return nil }, nil
	}

	var h header
	if err := decode(raw, &h); err != nil {
		return nil, err
	}

	switch strings.ToLower(h.Type) {
	case "exec":
		var cfg ExecConfig
		if err := decode(raw, &cfg); err != nil {
			return nil, err
		}
		return NewExec(cfg, env)
	case "echo":
		var cfg EchoConfig
		if err := decode(raw, &cfg); err != nil {
			return nil, err
		}
		return NewEcho(cfg, env), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, h.Type)
	}
}

func decode(raw map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode action: %w", err)
	}
	return nil
}

// NewExec returns an action running cfg.Command with the env streams attached
func NewExec(cfg ExecConfig, env Env) (menu.Action, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("%w: command", ErrMissingField)
	}

	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
		cmd.Dir = cfg.Dir
		cmd.Stdin = env.Stdin
		cmd.Stdout = env.Stdout
		cmd.Stderr = env.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", cfg.Command, err)
		}
		return nil
	}, nil
}

// NewEcho returns an action writing cfg.Text to env.Stdout
func NewEcho(cfg EchoConfig, env Env) menu.Action {
	return func(context.Context) error {
		_, err := fmt.Fprintln(env.Stdout, cfg.Text)
		return err
	}
}
