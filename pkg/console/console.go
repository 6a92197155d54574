// Package console provides the display and input adapters menus run on.
// Writer and Reader wrap plain streams, which also makes them usable as
// test doubles; Terminal reads single key presses from a TTY in raw mode.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const (
	keyInterrupt = 0x03
	keyEOT       = 0x04
)

var (
	// ErrInterrupted is returned when Ctrl-C is read in raw mode
	ErrInterrupted = errors.New("interrupted")
)

// IsInterrupted reports whether err came from Ctrl-C
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// Writer is a menu display over an io.Writer
type Writer struct {
	w     io.Writer
	clear bool
}

// NewWriter returns a display writing lines to w.
// When clear is false, Clear is a no-op.
func NewWriter(w io.Writer, clear bool) *Writer {
	return &Writer{w: w, clear: clear}
}

// Clear erases the screen and homes the cursor
func (w *Writer) Clear() error {
	if !w.clear {
		return nil
	}
	_, err := io.WriteString(w.w, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	return err
}

// WriteLine writes line followed by a newline
func (w *Writer) WriteLine(line string) error {
	_, err := fmt.Fprintln(w.w, line)
	return err
}

// Reader is a menu input over an io.Reader, one rune per key
type Reader struct {
	r *bufio.Reader
}

// NewReader returns an input reading runes from r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadKey returns the next rune
func (r *Reader) ReadKey() (rune, error) {
	key, _, err := r.r.ReadRune()
	if err != nil {
		return 0, err
	}
	return key, nil
}

// Terminal is a display and input bound to a pair of files, usually stdout and stdin
type Terminal struct {
	*Writer
	in       *os.File
	fallback *Reader
}

// NewTerminal returns a terminal over in and out
func NewTerminal(in, out *os.File) *Terminal {
	return &Terminal{
		Writer:   NewWriter(out, term.IsTerminal(int(out.Fd()))),
		in:       in,
		fallback: NewReader(in),
	}
}

// Stdio returns a terminal over os.Stdin and os.Stdout
func Stdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stdout)
}

// IsInteractive reports whether input comes from a TTY
func (t *Terminal) IsInteractive() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// ReadKey reads a single key press. On a TTY the terminal is switched to
// raw mode for the duration of the read so no Enter is needed; otherwise
// runes are read from a buffered stream.
func (t *Terminal) ReadKey() (rune, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return t.fallback.ReadKey()
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	return readRawKey(t.in)
}

func readRawKey(r io.Reader) (rune, error) {
	buf := make([]byte, utf8.UTFMax)
	n, err := r.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}

	switch buf[0] {
	case keyInterrupt:
		return 0, ErrInterrupted
	case keyEOT:
		return 0, io.EOF
	}

	key, _ := utf8.DecodeRune(buf[:n])
	return key, nil
}
