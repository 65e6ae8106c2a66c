package scenes

import (
	"testing"

	"github.com/gonewx/fireworks/pkg/show"
	"github.com/stretchr/testify/assert"
)

func TestCaptionLayer_FadeInAndOut(t *testing.T) {
	l := NewCaptionLayer(nil)
	l.Handle(show.OverlayEvent{Action: show.OverlayShow, ID: "credit"})

	txt, ok := l.Text("credit")
	assert.True(t, ok)
	assert.Equal(t, "Happy New Year", txt, "falls back to the style's default text")
	assert.Zero(t, l.Alpha("credit"))

	l.Update(0.4)
	mid := l.Alpha("credit")
	assert.Greater(t, mid, 0.5, "ease-out rises quickly")
	assert.Less(t, mid, 1.0)

	l.Update(1)
	assert.Equal(t, 1.0, l.Alpha("credit"))

	l.Handle(show.OverlayEvent{Action: show.OverlayHide, ID: "credit"})
	l.Update(0.4)
	assert.Less(t, l.Alpha("credit"), 1.0)
	assert.Equal(t, 1, l.Len())

	l.Update(0.5)
	assert.Equal(t, 0, l.Len(), "fully faded captions are removed")
	assert.Zero(t, l.Alpha("credit"))
}

func TestCaptionLayer_ShowReplacesSameID(t *testing.T) {
	l := NewCaptionLayer(nil)
	l.Show("finale", "2025")
	l.Update(2)
	l.Show("finale", "2026")

	assert.Equal(t, 1, l.Len())
	txt, _ := l.Text("finale")
	assert.Equal(t, "2026", txt)
	assert.Zero(t, l.Alpha("finale"), "replacement fades in again")
}

func TestCaptionLayer_UnknownIDUsesBaseStyle(t *testing.T) {
	l := NewCaptionLayer(nil)
	l.Show("sponsor", "")
	txt, ok := l.Text("sponsor")
	assert.True(t, ok)
	assert.Equal(t, "sponsor", txt)

	l.Hide("nobody")
	assert.Equal(t, 1, l.Len())

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestCaptionLayer_HideDuringFadeInStartsFromCurrentAlpha(t *testing.T) {
	l := NewCaptionLayer(nil)
	l.Show("credit", "")
	l.Update(0.2)
	before := l.Alpha("credit")

	l.Hide("credit")
	assert.InDelta(t, before, l.Alpha("credit"), 1e-9, "no jump when fading out")
}
