package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeys(t *testing.T) {
	t.Parallel()

	kb := NewKeybind(WithKeys(" Ctrl+D ", "PageUp", "return", "Rune[x]", "", "control+alt+ctrl+K", "backtab"))
	assert.Equal(t, []string{"ctrl+d", "pgup", "enter", "x", "ctrl+alt+k", "shift+tab"}, kb.Keys())
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		keys  []string
		event *tcell.EventKey
		want  bool
	}{
		{name: "named key", keys: []string{"down"}, event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), want: true},
		{name: "rune", keys: []string{"j"}, event: tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), want: true},
		{name: "other rune", keys: []string{"j"}, event: tcell.NewEventKey(tcell.KeyRune, "k", tcell.ModNone)},
		{name: "case sensitive rune", keys: []string{"g"}, event: tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModNone)},
		{name: "modifier", keys: []string{"ctrl+down"}, event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModCtrl), want: true},
		{name: "missing modifier", keys: []string{"ctrl+down"}, event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone)},
		{name: "page down", keys: []string{"pagedown"}, event: tcell.NewEventKey(tcell.KeyPgDn, "", tcell.ModNone), want: true},
		{name: "escape alias", keys: []string{"escape"}, event: tcell.NewEventKey(tcell.KeyEscape, "", tcell.ModNone), want: true},
		{name: "nil event", keys: []string{"down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(tt.event, NewKeybind(WithKeys(tt.keys...))))
		})
	}
}

func TestDisabledKeybind(t *testing.T) {
	t.Parallel()

	event := tcell.NewEventKey(tcell.KeyEnter, "", tcell.ModNone)

	kb := NewKeybind(WithKeys("enter"), WithDisabled())
	assert.False(t, kb.Enabled())
	assert.False(t, Matches(event, kb))

	kb.SetEnabled(true)
	assert.True(t, Matches(event, kb))

	kb.SetKeys()
	assert.False(t, kb.Enabled(), "no keys")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	kb := NewKeybind(WithKeys("q"), WithHelp("q", "quit"))
	assert.Equal(t, Help{Key: "q", Desc: "quit"}, kb.Help())

	kb.SetHelp("esc", "close")
	assert.Equal(t, "esc", kb.Help().Key)
}

func TestEventName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ctrl+alt+down", EventName(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModAlt|tcell.ModCtrl)))
	assert.Equal(t, "J", EventName(tcell.NewEventKey(tcell.KeyRune, "J", tcell.ModNone)))
	assert.Equal(t, "alt+j", EventName(tcell.NewEventKey(tcell.KeyRune, "J", tcell.ModAlt)))
	assert.Equal(t, "shift+tab", EventName(tcell.NewEventKey(tcell.KeyBacktab, "", tcell.ModShift)))
}
