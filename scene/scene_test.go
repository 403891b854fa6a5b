package scene

import "testing"

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if !s.IsEmpty() {
		t.Error("new scene should be empty")
	}
	if s.QuadCount() != 0 {
		t.Errorf("QuadCount() = %d, want 0", s.QuadCount())
	}
	if len(s.Quads()) != 0 {
		t.Errorf("len(Quads()) = %d, want 0", len(s.Quads()))
	}
}

func TestScenePushPreservesOrder(t *testing.T) {
	s := New()
	for i := range 5 {
		s.PushQuad(NewQuad(NewRect(float32(i), 0, 10, 10), RGB(1, 0, 0)))
	}

	quads := s.Quads()
	if len(quads) != 5 {
		t.Fatalf("len(Quads()) = %d, want 5", len(quads))
	}
	for i, q := range quads {
		if q.Bounds.X() != float32(i) {
			t.Errorf("Quads()[%d].Bounds.X() = %v, want %d", i, q.Bounds.X(), i)
		}
	}
}

func TestSceneClearReusesStorage(t *testing.T) {
	s := New()
	for range 64 {
		s.PushQuad(NewQuad(NewRect(0, 0, 1, 1), White))
	}
	before := cap(s.Quads())

	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("scene should be empty after Clear")
	}
	if got := cap(s.Quads()); got != before {
		t.Errorf("cap after Clear = %d, want %d", got, before)
	}

	s.PushQuad(NewQuad(NewRect(1, 2, 3, 4), Black))
	if s.QuadCount() != 1 {
		t.Errorf("QuadCount() = %d, want 1", s.QuadCount())
	}
}

func TestSceneAcceptsInvalidQuads(t *testing.T) {
	s := New()
	q := NewQuad(NewRect(-5, -5, -10, -20), RGBA(2, -1, 0.5, 3)).
		WithCornerRadii(AllCorners(1000))
	s.PushQuad(q)

	got := s.Quads()[0]
	if got.Bounds != q.Bounds || got.Background != q.Background || got.CornerRadii != q.CornerRadii {
		t.Errorf("stored quad = %+v, want %+v", got, q)
	}
}

func TestSceneDoesNotAliasCallerQuad(t *testing.T) {
	s := New()
	q := NewQuad(NewRect(0, 0, 10, 10), RGB(0, 1, 0))
	s.PushQuad(q)

	q.Background = RGB(1, 0, 0)
	if s.Quads()[0].Background != RGB(0, 1, 0) {
		t.Error("mutating the caller's quad changed the scene")
	}
}

func TestSceneDoesNotAliasCallerClip(t *testing.T) {
	s := New()
	clip := NewRect(0, 0, 5, 5)
	q := NewQuad(NewRect(0, 0, 10, 10), RGB(0, 1, 0)).WithClip(clip)
	s.PushQuad(q)

	clip.Size.Width = 50
	q.Clip.Origin.X = 3
	q.Clipped = false
	got := s.Quads()[0]
	if !got.HasClip() || got.Clip != NewRect(0, 0, 5, 5) {
		t.Errorf("stored clip = %v (clipped %v), want the rect at insertion", got.Clip, got.Clipped)
	}
}

func TestSceneVersion(t *testing.T) {
	s := New()
	v0 := s.Version()

	s.PushQuad(NewQuad(NewRect(0, 0, 1, 1), White))
	v1 := s.Version()
	if v1 == v0 {
		t.Error("Version() should change after PushQuad")
	}

	s.Clear()
	if s.Version() == v1 {
		t.Error("Version() should change after Clear")
	}
}

func TestQuadBuilders(t *testing.T) {
	base := NewQuad(NewRect(10, 20, 100, 50), RGB(1, 0, 0))
	if base.BorderColor != Transparent {
		t.Errorf("default BorderColor = %+v, want transparent", base.BorderColor)
	}
	if base.HasClip() {
		t.Error("default quad should not have a clip")
	}

	q := base.
		WithBorder(RGB(0, 0, 1), AllEdges(2)).
		WithCornerRadii(AllCorners(8)).
		WithClip(NewRect(10, 20, 50, 60))

	if q.BorderColor != RGB(0, 0, 1) {
		t.Errorf("BorderColor = %+v", q.BorderColor)
	}
	if q.BorderWidths != AllEdges(2) {
		t.Errorf("BorderWidths = %+v", q.BorderWidths)
	}
	if q.CornerRadii != AllCorners(8) {
		t.Errorf("CornerRadii = %+v", q.CornerRadii)
	}
	if !q.HasClip() || q.Clip != NewRect(10, 20, 50, 60) {
		t.Errorf("Clip = %v", q.Clip)
	}
	if base.HasClip() || base.CornerRadii != (Corners{}) {
		t.Error("builders must not modify the receiver")
	}
}
