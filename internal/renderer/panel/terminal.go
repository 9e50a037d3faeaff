package panel

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// DefaultTitleColor is the title bar background.
const DefaultTitleColor = "#5f87af"

const tabWidth = 4

// Terminal is a full-screen read-only pager.
type Terminal struct {
	name       string
	screen     tcell.Screen
	owned      bool
	titleColor string
	titleStyle tcell.Style
	textStyle  tcell.Style

	contents string
	lines    []string
	width    int
	top      int
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithTitleColor sets the title bar color as a hex string.
func WithTitleColor(hex string) TerminalOption {
	return func(t *Terminal) {
		if hex != "" {
			t.titleColor = hex
		}
	}
}

// WithScreen draws on s instead of opening the real terminal. The
// caller owns s and must have initialized it.
func WithScreen(s tcell.Screen) TerminalOption {
	return func(t *Terminal) {
		t.screen = s
	}
}

// NewTerminal creates a Terminal pager.
func NewTerminal(name string, opts ...TerminalOption) (*Terminal, error) {
	if name == "" {
		name = DefaultName
	}
	t := &Terminal{
		name:       name,
		titleColor: DefaultTitleColor,
		textStyle:  tcell.StyleDefault,
	}
	for _, opt := range opts {
		opt(t)
	}

	style, err := titleStyle(t.titleColor)
	if err != nil {
		return nil, err
	}
	t.titleStyle = style
	return t, nil
}

func titleStyle(hex string) (tcell.Style, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("title color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	fg := tcell.ColorWhite
	if _, _, l := c.Hsl(); l > 0.6 {
		fg = tcell.ColorBlack
	}
	return tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(r), int32(g), int32(b))).
		Foreground(fg).
		Bold(true), nil
}

// Name returns the panel name.
func (t *Terminal) Name() string { return t.name }

// Contents returns the text last shown.
func (t *Terminal) Contents() string { return t.contents }

// Show replaces the contents and runs the pager until the user quits.
func (t *Terminal) Show(text string) error {
	t.contents = text
	t.lines = nil
	t.top = 0

	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		t.screen = s
		t.owned = true
		defer func() {
			s.Fini()
			t.screen = nil
			t.owned = false
		}()
	}

	for {
		t.Draw()
		if t.HandleEvent(t.screen.PollEvent()) {
			return nil
		}
	}
}

// Close is a no-op; a screen opened by Show is released when Show
// returns.
func (t *Terminal) Close() error { return nil }

// HandleEvent applies one event and reports whether the pager should
// close.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return true
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		page := t.pageHeight()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			t.scroll(-1)
		case tcell.KeyDown, tcell.KeyEnter:
			t.scroll(1)
		case tcell.KeyPgUp:
			t.scroll(-page)
		case tcell.KeyPgDn:
			t.scroll(page)
		case tcell.KeyHome:
			t.top = 0
		case tcell.KeyEnd:
			t.scroll(len(t.lines))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'k':
				t.scroll(-1)
			case 'j':
				t.scroll(1)
			case ' ':
				t.scroll(page)
			case 'b':
				t.scroll(-page)
			case 'g':
				t.top = 0
			case 'G':
				t.scroll(len(t.lines))
			}
		}
	}
	return false
}

// Top returns the index of the first visible line.
func (t *Terminal) Top() int { return t.top }

// Lines returns the contents wrapped to the current screen width.
func (t *Terminal) Lines() []string {
	t.layout()
	return t.lines
}

func (t *Terminal) pageHeight() int {
	_, h := t.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

func (t *Terminal) scroll(n int) {
	t.layout()
	t.top += n
	if limit := len(t.lines) - t.pageHeight(); t.top > limit {
		t.top = limit
	}
	if t.top < 0 {
		t.top = 0
	}
}

func (t *Terminal) layout() {
	w, _ := t.screen.Size()
	if t.lines != nil && w == t.width {
		return
	}
	t.width = w
	t.lines = wrap(t.contents, w)
}

// Draw renders the title bar and the visible lines.
func (t *Terminal) Draw() {
	t.layout()
	w, h := t.screen.Size()
	t.screen.Clear()

	title := " " + t.name
	if len(t.lines) > 0 {
		last := min(t.top+t.pageHeight(), len(t.lines))
		pos := fmt.Sprintf("%d-%d/%d ", t.top+1, last, len(t.lines))
		pad := w - uniseg.StringWidth(title) - uniseg.StringWidth(pos)
		if pad > 0 {
			title += strings.Repeat(" ", pad) + pos
		}
	}
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, 0, ' ', nil, t.titleStyle)
	}
	t.drawString(0, 0, title, t.titleStyle)

	for row := 1; row < h; row++ {
		i := t.top + row - 1
		if i >= len(t.lines) {
			break
		}
		t.drawString(0, row, t.lines[i], t.textStyle)
	}
	t.screen.HideCursor()
	t.screen.Show()
}

func (t *Terminal) drawString(x, y int, s string, style tcell.Style) {
	w, _ := t.screen.Size()
	g := uniseg.NewGraphemes(s)
	for g.Next() && x < w {
		runes := g.Runes()
		t.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(g.Width(), 1)
	}
}

// wrap splits text into display lines no wider than width cells.
func wrap(text string, width int) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return []string{}
	}
	if width < 1 {
		width = 1
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		if uniseg.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}

		var b strings.Builder
		cur := 0
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cw := g.Width()
			if cur+cw > width && cur > 0 {
				out = append(out, b.String())
				b.Reset()
				cur = 0
			}
			b.WriteString(g.Str())
			cur += cw
		}
		out = append(out, b.String())
	}
	return out
}
