package hostcanvas

import (
	"errors"
	"testing"

	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gpucontext"
)

// mockTexture implements the texture interfaces for testing.
type mockTexture struct {
	width     int
	height    int
	data      []byte
	destroyed bool
	updated   int
	updateErr error
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }
func (m *mockTexture) Destroy()    { m.destroyed = true }

func (m *mockTexture) UpdateData(data []byte) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

type mockCreator struct {
	created []*mockTexture
	static  bool
	err     error
}

func (m *mockCreator) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	if m.err != nil {
		return nil, m.err
	}
	t := &mockTexture{width: w, height: h, data: append([]byte(nil), data...)}
	m.created = append(m.created, t)
	if m.static {
		return &plainTexture{t}, nil
	}
	return t, nil
}

// plainTexture hides UpdateData.
type plainTexture struct{ t *mockTexture }

func (p *plainTexture) Width() int  { return p.t.width }
func (p *plainTexture) Height() int { return p.t.height }
func (p *plainTexture) Destroy()    { p.t.destroyed = true }

type mockDrawer struct {
	creator gpucontext.TextureCreator
	draws   int
	lastX   float32
	lastY   float32
	lastTex gpucontext.Texture
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.draws++
	m.lastTex, m.lastX, m.lastY = tex, x, y
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator { return m.creator }

func rgbImage(w, h int) *render.DisplayImage {
	img := render.NewDisplayImage(w, h, render.FormatRGB8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*img.Stride + x*3
			img.Pix[o], img.Pix[o+1], img.Pix[o+2] = 10, 20, 30
		}
	}
	return img
}

func TestPresentCreatesThenUpdates(t *testing.T) {
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	c := New()
	defer c.Close()

	if err := c.PresentAt(dc, rgbImage(5, 3), 4, 2); err != nil {
		t.Fatalf("PresentAt() error = %v", err)
	}
	if len(creator.created) != 1 {
		t.Fatalf("textures created = %d, want 1", len(creator.created))
	}
	tex := creator.created[0]
	if len(tex.data) != 5*3*4 {
		t.Errorf("texture data = %d bytes, want %d", len(tex.data), 5*3*4)
	}
	if got := tex.data[:4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 0xFF {
		t.Errorf("first pixel = %v, want [10 20 30 255]", got)
	}
	if dc.draws != 1 || dc.lastX != 4 || dc.lastY != 2 {
		t.Errorf("draws = %d at (%v, %v), want 1 at (4, 2)", dc.draws, dc.lastX, dc.lastY)
	}

	if err := c.Present(dc, rgbImage(5, 3)); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if len(creator.created) != 1 || tex.updated != 1 {
		t.Errorf("created = %d, updated = %d; want 1, 1", len(creator.created), tex.updated)
	}
	if creates, updates, repacks := c.Stats(); creates != 1 || updates != 1 || repacks != 2 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 2", creates, updates, repacks)
	}
}

func TestPresentRecreatesOnResize(t *testing.T) {
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	c := New()

	if err := c.Present(dc, rgbImage(4, 4)); err != nil {
		t.Fatal(err)
	}
	if err := c.Present(dc, rgbImage(8, 6)); err != nil {
		t.Fatal(err)
	}
	if len(creator.created) != 2 {
		t.Fatalf("textures created = %d, want 2", len(creator.created))
	}
	if !creator.created[0].destroyed {
		t.Error("old texture not destroyed after resize")
	}
	if w, h := c.Size(); w != 8 || h != 6 {
		t.Errorf("Size() = %d, %d; want 8, 6", w, h)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !creator.created[1].destroyed {
		t.Error("Close() did not destroy the texture")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestPresentRecreatesStaticTexture(t *testing.T) {
	creator := &mockCreator{static: true}
	dc := &mockDrawer{creator: creator}
	c := New()
	for i := 0; i < 2; i++ {
		if err := c.Present(dc, rgbImage(3, 3)); err != nil {
			t.Fatal(err)
		}
	}
	if len(creator.created) != 2 {
		t.Errorf("textures created = %d, want 2", len(creator.created))
	}
	if !creator.created[0].destroyed {
		t.Error("replaced texture not destroyed")
	}
}

func TestPresentErrors(t *testing.T) {
	c := New()
	if err := c.Present(&mockDrawer{}, nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("Present(nil image) error = %v, want ErrNilImage", err)
	}
	if err := c.Present(&mockDrawer{}, rgbImage(2, 2)); !errors.Is(err, ErrInvalidRenderer) {
		t.Errorf("Present() without creator error = %v, want ErrInvalidRenderer", err)
	}
	if err := c.Present(nil, rgbImage(2, 2)); !errors.Is(err, ErrInvalidRenderer) {
		t.Errorf("Present(nil drawer) error = %v, want ErrInvalidRenderer", err)
	}

	errGPU := errors.New("out of memory")
	dc := &mockDrawer{creator: &mockCreator{err: errGPU}}
	if err := c.Present(dc, rgbImage(2, 2)); !errors.Is(err, errGPU) {
		t.Errorf("Present() error = %v, want %v", err, errGPU)
	}

	creator := &mockCreator{}
	dc = &mockDrawer{creator: creator}
	if err := c.Present(dc, rgbImage(2, 2)); err != nil {
		t.Fatal(err)
	}
	creator.created[0].updateErr = errGPU
	if err := c.Present(dc, rgbImage(2, 2)); !errors.Is(err, errGPU) {
		t.Errorf("Present() update error = %v, want %v", err, errGPU)
	}

	c.Close()
	if err := c.Present(dc, rgbImage(2, 2)); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Present() after Close error = %v, want ErrCanvasClosed", err)
	}
	if _, err := c.Upload(creator, rgbImage(2, 2)); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Upload() after Close error = %v, want ErrCanvasClosed", err)
	}
}

func TestUploadTightRGBXSkipsRepack(t *testing.T) {
	img := render.NewDisplayImage(2, 1, render.FormatRGBX8)
	copy(img.Pix, []byte{1, 2, 3, 0xFF, 4, 5, 6, 0xFF})

	creator := &mockCreator{}
	c := New()
	defer c.Close()
	for i := 0; i < 2; i++ {
		if _, err := c.Upload(creator, img); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}
	if _, _, repacks := c.Stats(); repacks != 0 {
		t.Errorf("repacks = %d, want 0", repacks)
	}
	if got := creator.created[0].data; string(got) != string(img.Pix) {
		t.Errorf("texture data = %v, want %v", got, img.Pix)
	}
}

func TestUploadPaddedRGBXRepacks(t *testing.T) {
	img := &render.DisplayImage{Width: 1, Height: 2, Stride: 8, Format: render.FormatRGBX8, Pix: []byte{
		1, 2, 3, 0, 0xEE, 0xEE, 0xEE, 0xEE,
		4, 5, 6, 0, 0xEE, 0xEE, 0xEE, 0xEE,
	}}
	creator := &mockCreator{}
	c := New()
	defer c.Close()
	if _, err := c.Upload(creator, img); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if _, _, repacks := c.Stats(); repacks != 1 {
		t.Errorf("repacks = %d, want 1", repacks)
	}
	want := []byte{1, 2, 3, 0xFF, 4, 5, 6, 0xFF}
	if got := creator.created[0].data; string(got) != string(want) {
		t.Errorf("texture data = %v, want %v", got, want)
	}
}
