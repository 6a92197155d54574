// Package menu provides numbered console menus.
// A Menu holds a title, an exit label and an insertion-ordered set of
// numbered selections, and renders them to a Display. Interactive wraps
// a Menu with key-to-action dispatch and satisfies Opener.
package menu

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultStartingIndex is the first auto-assigned key
	DefaultStartingIndex = 1

	// DefaultExitLabel is shown next to the reserved exit key
	DefaultExitLabel = "Back to Previous Menu"

	// ExitKey is reserved for leaving the menu and is never stored as an entry
	ExitKey = 0

	// PressAnyKeyPrompt is written by WaitForKeyPress
	PressAnyKeyPrompt = "Press any key to continue...."
)

// Opener is anything that can present itself as a menu and run interactively
type Opener interface {
	Title() string
	Open(ctx context.Context) error
}

// Display is the output sink a menu renders to
type Display interface {
	Clear() error
	WriteLine(line string) error
}

// Input reads one key press at a time
type Input interface {
	ReadKey() (rune, error)
}

// Entry is a single numbered selection
type Entry struct {
	Key   int
	Label string
}

// Menu stores and renders numbered selections
type Menu struct {
	title     string
	exitLabel string
	nextKey   int
	order     []int
	labels    map[int]string
}

// New creates an empty menu whose auto-assigned keys start at startingIndex
func New(title string, startingIndex int) (*Menu, error) {
	if isBlank(title) {
		return nil, fmt.Errorf("%w: title cannot be blank", ErrInvalidArgument)
	}
	if startingIndex <= 0 {
		return nil, fmt.Errorf("%w: starting index must be positive (got %d)", ErrInvalidArgument, startingIndex)
	}

	return &Menu{
		title:     title,
		exitLabel: DefaultExitLabel,
		nextKey:   startingIndex,
		labels:    make(map[int]string),
	}, nil
}

// Title returns the menu's display name
func (m *Menu) Title() string {
	return m.title
}

// ExitLabel returns the text shown next to the exit key
func (m *Menu) ExitLabel() string {
	return m.exitLabel
}

// SetExitLabel replaces the default exit label
func (m *Menu) SetExitLabel(text string) error {
	if isBlank(text) {
		return fmt.Errorf("%w: exit label cannot be blank", ErrInvalidArgument)
	}
	m.exitLabel = text
	return nil
}

// NextKey returns the key the next AddSelection call will use
func (m *Menu) NextKey() int {
	return m.nextKey
}

// AddSelection appends name under the next auto-assigned key.
// It returns the receiver so calls can be chained.
func (m *Menu) AddSelection(name string) (*Menu, error) {
	if isBlank(name) {
		return m, fmt.Errorf("%w: selection name cannot be blank", ErrInvalidArgument)
	}
	// An explicit key may already occupy the next auto slot.
	if _, exists := m.labels[m.nextKey]; exists {
		return m, fmt.Errorf("%w: auto key %d is already in use", ErrDuplicateKey, m.nextKey)
	}

	m.insert(m.nextKey, name)
	m.nextKey++
	return m, nil
}

// AddSelectionAt appends name under an explicit key without advancing the auto key.
// It returns the receiver so calls can be chained.
func (m *Menu) AddSelectionAt(key int, name string) (*Menu, error) {
	if isBlank(name) {
		return m, fmt.Errorf("%w: selection name cannot be blank", ErrInvalidArgument)
	}
	if key == ExitKey {
		return m, fmt.Errorf("%w: key %d is reserved for exit", ErrInvalidArgument, ExitKey)
	}
	if _, exists := m.labels[key]; exists {
		return m, fmt.Errorf("%w: key %d is already in use", ErrDuplicateKey, key)
	}

	m.insert(key, name)
	return m, nil
}

func (m *Menu) insert(key int, name string) {
	m.order = append(m.order, key)
	m.labels[key] = name
}

// Label returns the label registered under key
func (m *Menu) Label(key int) (string, bool) {
	label, ok := m.labels[key]
	return label, ok
}

// Len returns the number of registered selections, excluding the exit entry
func (m *Menu) Len() int {
	return len(m.order)
}

// Entries returns the selections in insertion order
func (m *Menu) Entries() []Entry {
	entries := make([]Entry, 0, len(m.order))
	for _, key := range m.order {
		entries = append(entries, Entry{Key: key, Label: m.labels[key]})
	}
	return entries
}

// Lines returns the rendered menu as lines, without clearing
func (m *Menu) Lines(message string) []string {
	lines := make([]string, 0, len(m.order)+4)
	lines = append(lines, m.title)
	for _, key := range m.order {
		lines = append(lines, formatEntry(key, m.labels[key]))
	}
	lines = append(lines, formatEntry(ExitKey, m.exitLabel))

	if !isBlank(message) {
		lines = append(lines, message, "")
	}
	return lines
}

// Render clears d and writes the menu to it.
// A non-blank message is written after the exit entry, followed by a blank line.
func (m *Menu) Render(d Display, message string) error {
	if err := d.Clear(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	for _, line := range m.Lines(message) {
		if err := d.WriteLine(line); err != nil {
			return fmt.Errorf("failed to write menu: %w", err)
		}
	}
	return nil
}

// WaitForKeyPress prompts on d and blocks until one key is read from in
func WaitForKeyPress(d Display, in Input) error {
	if err := d.WriteLine(PressAnyKeyPrompt); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	if _, err := in.ReadKey(); err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	return nil
}

func formatEntry(key int, label string) string {
	return fmt.Sprintf("%d - %s", key, label)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
