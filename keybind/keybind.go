// Package keybind maps key events to named actions. Keys are written as
// strings such as "up", "ctrl+d" or "g" and compared against normalized
// tcell events.
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of keys triggering one action, plus the text shown for it
// in help views.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	k := &Keybind{}
	for _, option := range options {
		option(k)
	}
	return *k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the binding switched off.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = normalizeKeys(keys...)
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the binding has keys and is switched on.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

// SetEnabled switches the binding on or off.
func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

type Help struct {
	Key  string
	Desc string
}

// Matches reports whether event triggers one of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	name := EventName(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, name)
	})
}

// Modifiers in the order they are written in normalized keys.
var modifierOrder = []struct {
	name string
	mask tcell.ModMask
}{
	{"ctrl", tcell.ModCtrl},
	{"alt", tcell.ModAlt},
	{"shift", tcell.ModShift},
	{"meta", tcell.ModMeta},
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"meta":    "meta",
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"backtab":  "shift+tab",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

func normalizeKeys(keys ...string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" {
			normalized = append(normalized, key)
		}
	}
	return normalized
}

// normalizeKey turns a user written key such as "Control+PageUp" into the form
// produced by [EventName]: modifiers first in a fixed order, lower case names,
// and runes kept as typed unless a modifier is present.
func normalizeKey(key string) string {
	mods := map[string]bool{}
	primary := ""
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod, ok := modifierAliases[strings.ToLower(part)]; ok {
			mods[mod] = true
			continue
		}
		primary = primaryKey(part)
	}
	if primary == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(primary, "shift+"); ok {
		mods["shift"] = true
		primary = rest
	}
	return join(mods, primary)
}

func primaryKey(key string) string {
	if inner, ok := strings.CutPrefix(key, "Rune["); ok && strings.HasSuffix(inner, "]") && len(inner) > 1 {
		return strings.TrimSuffix(inner, "]")
	}
	if utf8.RuneCountInString(key) == 1 {
		return key
	}
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// join writes mods in their fixed order before primary.
func join(mods map[string]bool, primary string) string {
	if len(mods) == 0 {
		return primary
	}
	if utf8.RuneCountInString(primary) == 1 {
		primary = strings.ToLower(primary)
	}
	var b strings.Builder
	for _, m := range modifierOrder {
		if mods[m.name] {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(primary)
	return b.String()
}

// EventName returns the normalized key string of event, for example "down",
// "ctrl+d" or "J".
func EventName(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary, ok := keyNames[key]
	switch {
	case key == tcell.KeyBacktab:
		return primary
	case !ok && key == tcell.KeyRune:
		primary = event.Str()
	case !ok:
		return normalizeKey(event.Name())
	}

	mods := map[string]bool{}
	for _, m := range modifierOrder {
		if event.Modifiers()&m.mask != 0 {
			mods[m.name] = true
		}
	}
	return join(mods, primary)
}
