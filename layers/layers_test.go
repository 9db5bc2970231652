package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xqrs/cellview"
	"github.com/xqrs/cellview/layers"
)

func TestCentered(t *testing.T) {
	t.Parallel()

	x, y, width, height := layers.Centered(cellview.NewLabel("abcd"), 0, 0, 20, 10)
	assert.Equal(t, []int{8, 4, 4, 1}, []int{x, y, width, height})

	x, y, width, height = layers.Centered(cellview.NewBox(), 2, 2, 10, 4)
	assert.Equal(t, []int{4, 3, 5, 2}, []int{x, y, width, height}, "half of the container")
}

func TestLayersVisibility(t *testing.T) {
	t.Parallel()

	back := cellview.NewLabel("back")
	top := cellview.NewLabel("top")
	l := layers.New().
		AddLayer(back, layers.WithName("back")).
		AddLayer(top, layers.WithName("top"), layers.WithVisible(false))

	name, item := l.GetFrontLayer()
	assert.Equal(t, "back", name)
	assert.Same(t, back, item)
	assert.False(t, l.GetVisible("top"))

	l.SetLayerVisible("top", true)
	name, _ = l.GetFrontLayer()
	assert.Equal(t, "top", name)

	l.RemoveLayer("top")
	assert.False(t, l.GetVisible("top"))
	l.RemoveLayer("back")
	name, item = l.GetFrontLayer()
	assert.Empty(t, name)
	assert.Nil(t, item)
}

func TestLayersDraw(t *testing.T) {
	t.Parallel()

	l := layers.New().
		AddLayer(cellview.NewLabel("back"), layers.WithName("back")).
		AddLayer(cellview.NewLabel("top"),
			layers.WithName("top"),
			layers.WithPlacement(layers.Centered),
			layers.WithOverlay(),
		)
	l.SetRect(0, 0, 20, 3)

	screen := cellview.NewCaptureScreen(20, 3)
	l.Draw(screen)

	assert.Equal(t, []string{"back", "        top", ""}, screen.Lines())
	assert.NotEqual(t, screen.StyleAt(8, 1), screen.StyleAt(0, 0), "layers behind the overlay are dimmed")
}

func TestLayersDirty(t *testing.T) {
	t.Parallel()

	label := cellview.NewLabel("a")
	l := layers.New().AddLayer(label, layers.WithName("a"))
	l.MarkClean()
	assert.False(t, l.IsDirty())

	label.SetText("b")
	assert.True(t, l.IsDirty())
}
