package widgets_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelslider/slider"
	"github.com/framegrace/texelslider/texelui/core"
	"github.com/framegrace/texelslider/texelui/widgets"
)

// newHarness builds a 31-column slider over a 30 unit range so one cell is
// one unit.
func newHarness(t *testing.T, current int) (*core.UIManager, *widgets.Slider, *[]int) {
	t.Helper()
	var commits []int
	rec, err := slider.New(slider.Config{Current: current, Total: 30, TrackWidth: 300},
		slider.WithCommitHandler(func(v int) { commits = append(commits, v) }))
	if err != nil {
		t.Fatalf("slider.New: %v", err)
	}
	ui := core.NewUIManager()
	ui.Resize(40, 3)
	s := widgets.NewSlider(0, 1, 31, rec)
	ui.AddWidget(s)
	return ui, s, &commits
}

func press(ui *core.UIManager, x, y int) {
	ui.HandleMouse(tcell.NewEventMouse(x, y, tcell.Button1, 0))
}

func release(ui *core.UIManager, x, y int) {
	ui.HandleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, 0))
}

func TestSliderTracksWidgetWidth(t *testing.T) {
	_, s, _ := newHarness(t, 5)
	f := s.Frame()
	if f.TrackWidth != 30 || f.ThumbX != 5 {
		t.Fatalf("expected track 30 with thumb at 5, got %+v", f)
	}
	if col := s.ThumbColumn(); col != 5 {
		t.Fatalf("expected thumb column 5, got %d", col)
	}
}

func TestSliderDragCommitsOnRelease(t *testing.T) {
	ui, s, commits := newHarness(t, 5)

	press(ui, 5, 1)
	press(ui, 11, 1)
	press(ui, 17, 1)
	if f := s.Frame(); f.ThumbX != 17 || !f.Dragging {
		t.Fatalf("expected live thumb at 17, got %+v", f)
	}
	if len(*commits) != 0 {
		t.Fatalf("commit fired during drag: %v", *commits)
	}

	release(ui, 17, 1)
	if got := *commits; len(got) != 1 || got[0] != 17 {
		t.Fatalf("expected one commit of 17, got %v", got)
	}
	if s.Frame().Dragging {
		t.Fatalf("drag still active after release")
	}
}

func TestSliderDragOffTrackClamps(t *testing.T) {
	ui, s, commits := newHarness(t, 5)
	press(ui, 6, 1) // one cell right of the thumb still grabs it
	press(ui, 39, 2)
	if got := s.Frame().ThumbX; got != 30 {
		t.Fatalf("expected thumb clamped to 30, got %v", got)
	}
	release(ui, 39, 2)
	if got := *commits; len(got) != 1 || got[0] != 30 {
		t.Fatalf("expected commit 30, got %v", got)
	}
}

func TestSliderTapJumps(t *testing.T) {
	ui, s, commits := newHarness(t, 5)
	press(ui, 25, 1)
	press(ui, 12, 1) // motion after a tap is swallowed
	release(ui, 12, 1)
	if got := *commits; len(got) != 1 || got[0] != 25 {
		t.Fatalf("expected single tap commit 25, got %v", got)
	}
	if got := s.Frame().ThumbX; got != 25 {
		t.Fatalf("expected thumb at 25, got %v", got)
	}
}

func TestSliderResizeCancelsDrag(t *testing.T) {
	ui, s, commits := newHarness(t, 5)
	press(ui, 5, 1)
	press(ui, 9, 1)
	ui.Resize(50, 3)
	if got := *commits; len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected cancel to commit 9, got %v", got)
	}
	if s.Frame().Dragging {
		t.Fatalf("drag flag left set after cancel")
	}
	// Late motion from the interrupted gesture must not restart anything.
	release(ui, 20, 1)
	if len(*commits) != 1 {
		t.Fatalf("late release committed again: %v", *commits)
	}
}

func TestSliderKeys(t *testing.T) {
	ui, s, commits := newHarness(t, 5)
	ui.Focus(s)
	ui.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	ui.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	ui.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	ui.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	ui.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	want := []int{6, 7, 6, 30, 0}
	got := *commits
	if len(got) != len(want) {
		t.Fatalf("expected commits %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected commits %v, got %v", want, got)
		}
	}
}

func TestSliderRendersThumbAndTracks(t *testing.T) {
	ui, s, _ := newHarness(t, 10)
	buf := ui.Render()
	row := buf[1]
	if row[10].Ch != s.ThumbRune {
		t.Fatalf("expected thumb at column 10, got %q", row[10].Ch)
	}
	if row[3].Ch != s.FillRune {
		t.Fatalf("expected fill before thumb, got %q", row[3].Ch)
	}
	if row[30].Ch != s.TrackRune {
		t.Fatalf("expected trailing track at column 30, got %q", row[30].Ch)
	}
	if row[35].Ch != ' ' {
		t.Fatalf("expected blank beyond widget, got %q", row[35].Ch)
	}
}
