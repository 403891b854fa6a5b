package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gesso/render"
	"github.com/gogpu/gesso/scene"
	"github.com/gogpu/gesso/surface"
)

func TestSoftwareBackendRender(t *testing.T) {
	b, err := Open(BackendSoftware, Options{Width: 100, Height: 100, Bands: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if b.Name() != BackendSoftware {
		t.Errorf("Name() = %q", b.Name())
	}

	s := scene.New()
	s.PushQuad(scene.NewQuad(scene.NewRect(10, 10, 80, 80), scene.RGB(1, 0, 0)))
	if err := b.Renderer().Render(s, b.Surface()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	img, err := b.Surface().Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(50, 50); px.R != 255 || px.G != 0 || px.A != 255 {
		t.Errorf("center = %v, want red", px)
	}
	if px := img.RGBAAt(5, 5); px.R != 0 || px.A != 255 {
		t.Errorf("corner = %v, want opaque black", px)
	}
}

func TestSoftwareBackendClearColor(t *testing.T) {
	white := scene.White
	b := NewSoftwareBackend(Options{Width: 4, Height: 4, ClearColor: &white})
	defer b.Close()

	s := scene.New()
	s.PushQuad(scene.NewQuad(scene.NewRect(0, 0, 1, 1), scene.RGB(0, 0, 1)))
	if err := b.SoftwareRenderer().Render(s, b.ImageSurface()); err != nil {
		t.Fatal(err)
	}
	if px := b.ImageSurface().Image().RGBAAt(3, 3); px.R != 255 || px.B != 255 {
		t.Errorf("background = %v, want white", px)
	}
}

func TestSoftwareBackendClose(t *testing.T) {
	b := NewSoftwareBackend(Options{Width: 2, Height: 2})
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Surface().Snapshot(); !errors.Is(err, surface.ErrClosed) {
		t.Errorf("Snapshot after Close: %v, want ErrClosed", err)
	}
}

type stubBackend struct{ name string }

func (s *stubBackend) Name() string              { return s.name }
func (s *stubBackend) Surface() surface.Surface  { return nil }
func (s *stubBackend) Renderer() render.Renderer { return &render.DebugRenderer{} }
func (s *stubBackend) Close() error              { return nil }

func TestRegistry(t *testing.T) {
	Register("zz-stub", func(Options) (Backend, error) { return &stubBackend{name: "zz-stub"}, nil })
	defer Unregister("zz-stub")

	if !IsRegistered("zz-stub") {
		t.Fatal("zz-stub not registered")
	}
	names := Available()
	if len(names) == 0 || names[len(names)-1] != "zz-stub" {
		t.Errorf("Available() = %v, want zz-stub last", names)
	}
	if i := slices.Index(names, BackendSoftware); i < 0 {
		t.Errorf("Available() = %v, missing software", names)
	}

	b, err := Open("zz-stub", Options{})
	if err != nil || b.Name() != "zz-stub" {
		t.Errorf("Open = %v, %v", b, err)
	}

	if _, err := Open("missing", Options{}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(missing) = %v, want ErrUnknownBackend", err)
	}
}

func TestOpenDefaultFallsBack(t *testing.T) {
	failing := errors.New("no device")
	Register(BackendWGPU, func(Options) (Backend, error) { return nil, failing })
	defer Unregister(BackendWGPU)

	b, err := OpenDefault(Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("OpenDefault: %v", err)
	}
	defer b.Close()
	if b.Name() != BackendSoftware {
		t.Errorf("selected %q, want software after wgpu failed", b.Name())
	}
}

func TestOpenDefaultNoneAvailable(t *testing.T) {
	Unregister(BackendSoftware)
	defer Register(BackendSoftware, func(opts Options) (Backend, error) { return NewSoftwareBackend(opts), nil })

	if _, err := OpenDefault(Options{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("err = %v, want ErrBackendNotAvailable", err)
	}
}

func TestOpenNamed(t *testing.T) {
	b, err := OpenNamed(BackendSoftware, Options{Width: 1, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Close()

	b, err = OpenNamed("", Options{Width: 1, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Close()
}
