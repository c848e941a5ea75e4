package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionPause) {
		t.Error("empty frame should have no actions")
	}

	f.Set(ActionPause)
	f.Click(3, 4)
	f.Click(5, 6)

	if !f.Has(ActionPause) {
		t.Error("Set action should be reported by Has")
	}
	if len(f.Clicks) != 2 || f.Clicks[0] != (Point{3, 4}) {
		t.Errorf("Clicks = %v, expected [(3,4) (5,6)]", f.Clicks)
	}

	f.Clear()
	if f.Has(ActionPause) || len(f.Clicks) != 0 {
		t.Error("Clear should drop actions and clicks")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}
