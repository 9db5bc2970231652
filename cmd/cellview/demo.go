package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/cellview"
	"github.com/xqrs/cellview/help"
	"github.com/xqrs/cellview/i18n"
	"github.com/xqrs/cellview/internal/config"
	"github.com/xqrs/cellview/keybind"
	"github.com/xqrs/cellview/layers"
	"github.com/xqrs/cellview/observable"
)

const (
	helpLayer = "help"
	mainLayer = "main"

	generateCount    = 50
	generateInterval = 100 * time.Millisecond
)

type demoKeyMap struct {
	list cellview.ListKeyMap

	Append     keybind.Keybind
	Insert     keybind.Keybind
	Delete     keybind.Keybind
	Replace    keybind.Keybind
	ReplaceAll keybind.Keybind
	MoveDown   keybind.Keybind
	Touch      keybind.Keybind
	Clear      keybind.Keybind
	Populate   keybind.Keybind
	Generate   keybind.Keybind
	Help       keybind.Keybind
	Quit       keybind.Keybind
}

func newDemoKeyMap(cfg config.Config) demoKeyMap {
	km := demoKeyMap{
		list:       cellview.DefaultListKeyMap(),
		Append:     keybind.NewKeybind(keybind.WithKeys("a"), keybind.WithHelp("a", i18n.T("demo.add"))),
		Insert:     keybind.NewKeybind(keybind.WithKeys("i"), keybind.WithHelp("i", i18n.T("demo.insert"))),
		Delete:     keybind.NewKeybind(keybind.WithKeys("d", "delete"), keybind.WithHelp("d", i18n.T("demo.delete"))),
		Replace:    keybind.NewKeybind(keybind.WithKeys("r"), keybind.WithHelp("r", i18n.T("demo.replace"))),
		ReplaceAll: keybind.NewKeybind(keybind.WithKeys("s"), keybind.WithHelp("s", i18n.T("demo.replace_all"))),
		MoveDown:   keybind.NewKeybind(keybind.WithKeys("m"), keybind.WithHelp("m", i18n.T("demo.move_down"))),
		Touch:      keybind.NewKeybind(keybind.WithKeys("t"), keybind.WithHelp("t", i18n.T("demo.touch"))),
		Clear:      keybind.NewKeybind(keybind.WithKeys("c"), keybind.WithHelp("c", i18n.T("demo.clear"))),
		Populate:   keybind.NewKeybind(keybind.WithKeys("p"), keybind.WithHelp("p", i18n.T("demo.populate"))),
		Generate:   keybind.NewKeybind(keybind.WithKeys("g"), keybind.WithHelp("g", i18n.T("demo.generate"))),
		Help:       keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", i18n.T("demo.help"))),
		Quit:       keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", i18n.T("demo.quit"))),
	}
	cfg.ApplyKeys(&km.list)
	for action, bind := range map[string]*keybind.Keybind{
		"append":      &km.Append,
		"insert":      &km.Insert,
		"delete":      &km.Delete,
		"replace":     &km.Replace,
		"replace_all": &km.ReplaceAll,
		"move_down":   &km.MoveDown,
		"touch":       &km.Touch,
		"clear":       &km.Clear,
		"populate":    &km.Populate,
		"generate":    &km.Generate,
		"help":        &km.Help,
		"quit":        &km.Quit,
	} {
		cfg.ApplyKey(action, bind)
	}
	return km
}

func (k demoKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Append, k.Delete, k.Help, k.Quit}
}

func (k demoKeyMap) FullHelp() [][]keybind.Keybind {
	return append(k.list.FullHelp(), []keybind.Keybind{
		k.Append, k.Insert, k.Delete, k.Replace, k.ReplaceAll,
	}, []keybind.Keybind{
		k.MoveDown, k.Touch,
	}, []keybind.Keybind{
		k.Clear, k.Populate, k.Generate, k.Help, k.Quit,
	})
}

// demo is the root primitive: the list with a status line and a help
// overlay above it.
type demo struct {
	*layers.Layers

	app    *cellview.Application
	keys   demoKeyMap
	items  *observable.List[string]
	list   *cellview.ListView[string]
	status *cellview.Label
	help   *help.Help

	// Number of items created so far, used for new item names.
	created int
	message string

	mu        sync.Mutex
	generator chan struct{}
}

func newDemo(app *cellview.Application, cfg config.Config, items []string) (*demo, error) {
	orientation, err := cfg.Orientation()
	if err != nil {
		return nil, err
	}

	d := &demo{
		Layers:  layers.New(),
		app:     app,
		keys:    newDemoKeyMap(cfg),
		items:   observable.NewList(items...),
		created: len(items),
	}

	d.list = cellview.NewListView[string]().
		SetItems(d.items).
		SetOrientation(orientation).
		SetFixedCellLength(cfg.List.FixedCellLength).
		SetKeyMap(d.keys.list).
		SetChangedFunc(func(int) {
			d.message = ""
			d.updateStatus()
		}).
		SetSelectedFunc(func(_ int, item string) {
			d.message = i18n.TData("demo.activated", map[string]any{"Item": item})
			d.updateStatus()
		})
	if cfg.List.EmptyText != "" {
		d.list.SetEmptyText(cfg.List.EmptyText)
	}
	d.list.SetBorders(cellview.BordersAll).
		SetBorderSet(cellview.BorderSetRound()).
		SetTitle(i18n.T("demo.title"))

	d.status = cellview.NewLabel("").SetWrap(false)
	d.status.SetTextStyle(tcell.StyleDefault.Foreground(cellview.Styles.SecondaryTextColor))

	d.help = help.New().SetKeyMap(d.keys).SetShowAll(true)
	d.help.SetBorders(cellview.BordersAll).
		SetBorderSet(cellview.BorderSetRound()).
		SetTitle(i18n.T("demo.help_title"))
	d.help.SetBackgroundColor(cellview.Styles.ContrastBackgroundColor)

	d.AddLayer(newFrame(d.list, d.status), layers.WithName(mainLayer))
	d.AddLayer(d.help,
		layers.WithName(helpLayer),
		layers.WithPlacement(layers.Centered),
		layers.WithVisible(false),
		layers.WithOverlay(),
	)

	d.items.Subscribe(func(observable.Change[string]) {
		d.updateStatus()
	})
	d.updateStatus()
	return d, nil
}

func (d *demo) updateStatus() {
	text := i18n.TData("demo.status", map[string]any{
		"Count":    d.items.Len(),
		"Selected": d.list.SelectedIndex() + 1,
	})
	if d.message != "" {
		text += "  " + d.message
	}
	d.status.SetText(text)
}

// InputHandler handles the demo's own keys before passing events on.
func (d *demo) InputHandler(event *tcell.EventKey) cellview.Command {
	km := d.keys
	if d.GetVisible(helpLayer) {
		if keybind.Matches(event, km.Help) || event.Key() == tcell.KeyEscape {
			d.SetLayerVisible(helpLayer, false)
			return cellview.RedrawCommand{}
		}
		if keybind.Matches(event, km.Quit) {
			return cellview.QuitCommand{}
		}
		return nil
	}

	switch {
	case keybind.Matches(event, km.Quit):
		return cellview.QuitCommand{}
	case keybind.Matches(event, km.Help):
		d.SetLayerVisible(helpLayer, true)
	case keybind.Matches(event, km.Append):
		d.items.Append(d.newItem())
	case keybind.Matches(event, km.Insert):
		d.items.Insert(max(d.list.SelectedIndex(), 0), d.newItem())
	case keybind.Matches(event, km.Delete):
		if index := d.list.SelectedIndex(); index >= 0 && index < d.items.Len() {
			d.items.Remove(index)
		}
	case keybind.Matches(event, km.Replace):
		if index := d.list.SelectedIndex(); index >= 0 && index < d.items.Len() {
			d.items.Set(index, d.newItem())
		}
	case keybind.Matches(event, km.ReplaceAll):
		replacement := make([]string, d.items.Len())
		for i := range replacement {
			replacement[i] = d.newItem()
		}
		d.items.SetAll(replacement...)
	case keybind.Matches(event, km.MoveDown):
		if index := d.list.SelectedIndex(); index >= 0 && index < d.items.Len()-1 {
			d.items.Swap(index, index+1)
			d.list.Select(index + 1)
		}
	case keybind.Matches(event, km.Touch):
		// Items are immutable strings; the update only redraws the row.
		if index := d.list.SelectedIndex(); index >= 0 && index < d.items.Len() {
			d.items.Update(index)
		}
	case keybind.Matches(event, km.Clear):
		d.items.Clear()
	case keybind.Matches(event, km.Populate):
		d.items.Batch(func(list *observable.List[string]) {
			list.Clear()
			for range 100 {
				list.Append(d.newItem())
			}
		})
	case keybind.Matches(event, km.Generate):
		d.toggleGenerator()
	default:
		return d.Layers.InputHandler(event)
	}
	return cellview.RedrawCommand{}
}

func (d *demo) newItem() string {
	d.created++
	return itemName(d.created - 1)
}

// toggleGenerator starts or stops appending items from a goroutine.
func (d *demo) toggleGenerator() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generator != nil {
		close(d.generator)
		d.generator = nil
		return
	}
	stop := make(chan struct{})
	d.generator = stop
	go d.generate(stop)
}

func (d *demo) generate(stop <-chan struct{}) {
	ticker := time.NewTicker(generateInterval)
	defer ticker.Stop()
	for range generateCount {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.app.QueueUpdateDraw(func() {
				d.items.Append(d.newItem())
			})
		}
	}
	d.mu.Lock()
	if d.generator == stop {
		d.generator = nil
	}
	d.mu.Unlock()
}

func (d *demo) stopGenerator() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generator != nil {
		close(d.generator)
		d.generator = nil
	}
}

// frame draws a primitive above a one line status label.
type frame struct {
	*cellview.Box

	body   cellview.Primitive
	status *cellview.Label
}

func newFrame(body cellview.Primitive, status *cellview.Label) *frame {
	f := &frame{Box: cellview.NewBox(), body: body, status: status}
	cellview.BindParent(body, f.Box)
	cellview.BindParent(status, f.Box)
	return f
}

func (f *frame) Draw(screen tcell.Screen) {
	f.DrawForSubclass(screen, f)
	x, y, width, height := f.GetInnerRect()
	if height <= 0 {
		return
	}
	f.body.SetRect(x, y, width, height-1)
	f.body.Draw(screen)
	f.status.SetRect(x, y+height-1, width, 1)
	f.status.Draw(screen)
}

func (f *frame) InputHandler(event *tcell.EventKey) cellview.Command {
	return f.body.InputHandler(event)
}

func (f *frame) MouseHandler(action cellview.MouseAction, event *tcell.EventMouse) (cellview.Primitive, cellview.Command) {
	return f.body.MouseHandler(action, event)
}

func (f *frame) PasteHandler(text string) cellview.Command {
	return f.body.PasteHandler(text)
}

func (f *frame) HasFocus() bool {
	return f.body.HasFocus()
}

func (f *frame) Focus(delegate func(p cellview.Primitive)) {
	delegate(f.body)
}

func (f *frame) IsDirty() bool {
	return f.Box.IsDirty() || f.body.IsDirty() || f.status.IsDirty()
}

func (f *frame) MarkClean() {
	f.Box.MarkClean()
	f.body.MarkClean()
	f.status.MarkClean()
}

var _ cellview.Primitive = &demo{}
