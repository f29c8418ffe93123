// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hostcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Canvas errors.
var (
	// ErrCanvasClosed is returned when operations are called on a closed canvas.
	ErrCanvasClosed = errors.New("hostcanvas: canvas is closed")

	// ErrInvalidRenderer is returned when the drawer has no texture creator.
	ErrInvalidRenderer = errors.New("hostcanvas: drawer has no texture creator")

	// ErrNilImage is returned when there is no image to present.
	ErrNilImage = errors.New("hostcanvas: nil image")
)

// textureDestroyer is implemented by textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

// Canvas uploads display images to a host texture.
type Canvas struct {
	texture    gpucontext.Texture
	oldTexture gpucontext.Texture // replaced, destroyed after the next create
	rgba       []byte
	width      int
	height     int
	creates    int
	updates    int
	repacks    int
	closed     bool
}

// New returns an empty canvas. The texture is created on the first Upload.
func New() *Canvas {
	return &Canvas{}
}

// Size returns the size of the current texture.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Texture returns the current texture, or nil.
func (c *Canvas) Texture() gpucontext.Texture {
	return c.texture
}

// Stats returns how many textures were created, updated in place, and how
// many uploads had to repack the image into RGBA first.
func (c *Canvas) Stats() (creates, updates, repacks int) {
	return c.creates, c.updates, c.repacks
}

// Upload copies img into the canvas texture using creator when a new
// texture is needed.
func (c *Canvas) Upload(creator gpucontext.TextureCreator, img *render.DisplayImage) (gpucontext.Texture, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if img == nil {
		return nil, ErrNilImage
	}

	data := pixels(img)
	if data == nil {
		c.rgba = img.AppendRGBA(c.rgba[:0])
		c.repacks++
		data = c.rgba
	}

	if c.texture != nil && (img.Width != c.width || img.Height != c.height) {
		c.retire()
	}

	if c.texture != nil {
		if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return nil, fmt.Errorf("hostcanvas: texture update failed: %w", err)
			}
			c.updates++
			return c.texture, nil
		}
		c.retire()
	}

	if creator == nil {
		return nil, ErrInvalidRenderer
	}
	tex, err := creator.NewTextureFromRGBA(img.Width, img.Height, data)
	if err != nil {
		return nil, fmt.Errorf("hostcanvas: NewTextureFromRGBA failed: %w", err)
	}
	c.texture = tex
	c.width, c.height = img.Width, img.Height
	c.creates++

	// The create call has synchronized with the GPU, so the old texture
	// is no longer referenced.
	destroy(c.oldTexture)
	c.oldTexture = nil
	return tex, nil
}

// retire moves the current texture aside for deferred destruction.
func (c *Canvas) retire() {
	destroy(c.oldTexture)
	c.oldTexture = c.texture
	c.texture = nil
}

// Close destroys the textures. It is safe to call more than once.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	destroy(c.oldTexture)
	destroy(c.texture)
	c.oldTexture = nil
	c.texture = nil
	c.rgba = nil
	return nil
}

func destroy(t gpucontext.Texture) {
	if d, ok := t.(textureDestroyer); ok {
		d.Destroy()
	}
}

// pixels returns img's memory when it already is tightly packed RGBA8,
// or nil when it must be repacked. The unused byte of RGBX8 is uploaded
// as alpha; present.Presenter sets it opaque.
func pixels(img *render.DisplayImage) []byte {
	if img.TextureFormat() != gputypes.TextureFormatRGBA8Unorm || img.Stride != img.Width*4 {
		return nil
	}
	need := img.Width * img.Height * 4
	if len(img.Pix) < need {
		return nil
	}
	return img.Pix[:need]
}
