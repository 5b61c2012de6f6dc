package tracker

import (
	"testing"

	"joytracker/types"
)

func TestPresenterMovesCursor(t *testing.T) {
	c := newFakeCanvas(testGeo.Width, testGeo.Height)
	p := NewPresenter(c, testGeo)

	if _, _, ok := p.Cursor(); ok {
		t.Fatal("cursor must start invalid")
	}
	p.Draw(10, 20, types.BorderThin)
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	if !c.at(10, 20) || !c.at(17, 27) || c.at(18, 27) {
		t.Fatal("cursor square not drawn at (10,20)")
	}

	p.Draw(50, 30, types.BorderThin)
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	if c.at(10, 20) || c.at(17, 27) {
		t.Fatal("old cursor not erased")
	}
	if !c.at(50, 30) || !c.at(57, 37) {
		t.Fatal("new cursor missing")
	}
	if x, y, ok := p.Cursor(); !ok || x != 50 || y != 30 {
		t.Fatalf("Cursor() = %d,%d,%v", x, y, ok)
	}
	if c.flushes != 2 {
		t.Fatalf("flushes = %d, want one per flush", c.flushes)
	}
}

func TestPresenterBorderPixelCount(t *testing.T) {
	for _, tc := range []struct {
		style types.BorderStyle
		t     int
	}{
		{types.BorderThin, 1},
		{types.BorderThick, 3},
	} {
		c := newFakeCanvas(testGeo.Width, testGeo.Height)
		p := NewPresenter(c, testGeo)
		p.Reframe(tc.style)

		inner := (testGeo.Width - 2*tc.t) * (testGeo.Height - 2*tc.t)
		want := testGeo.Width*testGeo.Height - inner
		if got := c.lit(); got != want {
			t.Errorf("%v border lit %d pixels, want %d", tc.style, got, want)
		}
	}
}

func TestPresenterClipsOffscreen(t *testing.T) {
	c := newFakeCanvas(testGeo.Width, testGeo.Height)
	p := NewPresenter(c, testGeo)
	p.MoveCursor(testGeo.Width-4, testGeo.Height-4) // must not panic
	if got := c.lit(); got != 16 {
		t.Fatalf("clipped cursor lit %d pixels, want 16", got)
	}
}
