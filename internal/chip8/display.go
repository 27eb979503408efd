package chip8

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the 64x32 monochrome framebuffer. Sprites are combined with XOR;
// a dirty flag tells the renderer when a repaint is due.
type Display struct {
	pixels [ScreenWidth][ScreenHeight]bool
	dirty  bool
}

// Clear resets all pixels to off and marks the buffer dirty.
func (d *Display) Clear() {
	d.pixels = [ScreenWidth][ScreenHeight]bool{}
	d.dirty = true
}

// DrawSprite XORs the sprite rows into the buffer starting at (x mod 64,
// y mod 32). The origin wraps; pixels that would extend past the right or
// bottom edge are clipped. It returns true when any pixel was flipped from on
// to off. The buffer is marked dirty regardless of whether a pixel changed.
func (d *Display) DrawSprite(x, y uint8, rows []uint8) bool {
	collision := false
	originX := int(x) % ScreenWidth
	originY := int(y) % ScreenHeight
	for rowIdx, row := range rows {
		py := originY + rowIdx
		if py >= ScreenHeight {
			break
		}
		for bitIdx := 0; bitIdx < 8; bitIdx++ {
			px := originX + bitIdx
			if px >= ScreenWidth {
				break
			}
			if row&(0x80>>bitIdx) == 0 {
				continue
			}
			if d.pixels[px][py] {
				collision = true
			}
			d.pixels[px][py] = !d.pixels[px][py]
		}
	}
	d.dirty = true
	return collision
}

// IsSet reports whether the pixel at (x, y) is on. Coordinates outside the
// screen read as off.
func (d *Display) IsSet(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return d.pixels[x][y]
}

// Pixels returns a copy of the pixel grid for bulk rendering.
func (d *Display) Pixels() [ScreenWidth][ScreenHeight]bool {
	return d.pixels
}

// TakeDirty reads and clears the dirty flag. It is a single-consumer signal:
// only the renderer should call it.
func (d *Display) TakeDirty() bool {
	dirty := d.dirty
	d.dirty = false
	return dirty
}
