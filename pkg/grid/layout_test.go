package grid

import (
	"reflect"
	"testing"
)

func rect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h, MinW: 1, MinH: 1}
}

func TestLayoutGetSet(t *testing.T) {
	l := NewLayout()

	if _, ok := l.Get(LG, "a"); ok {
		t.Fatal("Get on empty layout should miss")
	}
	if l.Set(LG, "a", rect(0, 0, 2, 2)) {
		t.Fatal("Set on unknown id should be a no-op")
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d after no-op Set", l.Len())
	}

	l.Put("a", Uniform(rect(0, 0, 6, 2)))
	if !l.Set(MD, "a", rect(2, 4, 6, 2)) {
		t.Fatal("Set on existing id should succeed")
	}

	got, _ := l.Get(MD, "a")
	if got != rect(2, 4, 6, 2) {
		t.Errorf("Get(MD) = %+v", got)
	}
	lg, _ := l.Get(LG, "a")
	if lg != rect(0, 0, 6, 2) {
		t.Errorf("Set(MD) changed LG rect: %+v", lg)
	}
	if l.Set("xl", "a", rect(0, 0, 1, 1)) {
		t.Error("Set with unknown breakpoint should fail")
	}
}

func TestLayoutPutCopies(t *testing.T) {
	l := NewLayout()
	s := Uniform(rect(0, 0, 2, 2))
	l.Put("a", s)
	s.Set(LG, rect(5, 5, 1, 1))

	got, _ := l.Get(LG, "a")
	if got != rect(0, 0, 2, 2) {
		t.Errorf("Put should copy its argument, got %+v", got)
	}
}

func TestLayoutRemove(t *testing.T) {
	l := NewLayout()
	l.Put("a", Uniform(rect(0, 0, 2, 2)))
	l.Put("b", Uniform(rect(0, 2, 2, 2)))

	l.Remove("a")
	for _, bp := range Breakpoints {
		if _, ok := l.Get(bp, "a"); ok {
			t.Errorf("%s still has a rect for removed id", bp)
		}
	}
	if !l.Has("b") || l.Len() != 1 {
		t.Error("Remove touched an unrelated id")
	}
	l.Remove("missing")
}

func TestLayoutMaxBottom(t *testing.T) {
	l := NewLayout()
	if got := l.MaxBottom(); got != 0 {
		t.Fatalf("MaxBottom() on empty layout = %d", got)
	}

	l.Put("a", Uniform(rect(0, 0, 12, 2)))
	l.Put("b", Uniform(rect(0, 2, 6, 3)))
	// b was dragged far down on xs only.
	l.Set(XS, "b", rect(0, 10, 4, 3))

	if got := l.MaxBottom(); got != 13 {
		t.Errorf("MaxBottom() = %d, want 13", got)
	}
	if got := l.MaxBottom(LG); got != 5 {
		t.Errorf("MaxBottom(LG) = %d, want 5", got)
	}
	if got := l.MaxBottom(LG, XS); got != 13 {
		t.Errorf("MaxBottom(LG, XS) = %d, want 13", got)
	}
}

func TestLayoutIDsAndClone(t *testing.T) {
	l := NewLayout()
	l.Put("b", Uniform(rect(0, 0, 1, 1)))
	l.Put("a", Uniform(rect(0, 1, 1, 1)))

	if got := l.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v", got)
	}

	c := l.Clone()
	c.Set(LG, "a", rect(3, 3, 1, 1))
	c.Remove("b")

	orig, _ := l.Get(LG, "a")
	if orig != rect(0, 1, 1, 1) || !l.Has("b") {
		t.Error("Clone shares state with the original")
	}
}
