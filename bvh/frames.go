package bvh

import "fmt"

// FrameCursor edits the frame sequence of a File in place. It points
// between frames: index 0 is before the first frame, index NumFrames
// is after the last. Movement clamps at both ends rather than failing.
type FrameCursor struct {
	file  *File
	index int
}

// FrameCursor returns a cursor positioned before the first frame.
func (f *File) FrameCursor() *FrameCursor {
	return &FrameCursor{file: f}
}

// Index reports the cursor position.
func (c *FrameCursor) Index() int {
	return c.index
}

// Len reports the number of frames in the underlying File.
func (c *FrameCursor) Len() int {
	return c.file.NumFrames()
}

// MoveNext advances the cursor one frame, clamping at the end.
func (c *FrameCursor) MoveNext() *FrameCursor {
	if c.index < c.file.NumFrames() {
		c.index++
	}
	return c
}

// MovePrev moves the cursor back one frame, clamping at the start.
func (c *FrameCursor) MovePrev() *FrameCursor {
	if c.index > 0 {
		c.index--
	}
	return c
}

// MoveFirst moves the cursor before the first frame.
func (c *FrameCursor) MoveFirst() *FrameCursor {
	c.index = 0
	return c
}

// MoveLast moves the cursor after the last frame.
func (c *FrameCursor) MoveLast() *FrameCursor {
	c.index = c.file.NumFrames()
	return c
}

// PeekNext returns the frame after the cursor, or nil at the end.
// The returned slice aliases the File's motion storage.
func (c *FrameCursor) PeekNext() []float32 {
	frame, err := c.file.Frame(c.index)
	if err != nil {
		return nil
	}
	return frame
}

// PeekPrev returns the frame before the cursor, or nil at the start.
func (c *FrameCursor) PeekPrev() []float32 {
	if c.index == 0 {
		return nil
	}
	frame, err := c.file.Frame(c.index - 1)
	if err != nil {
		return nil
	}
	return frame
}

// InsertFrame inserts one frame at the cursor and advances past it.
// The values must be exactly one per channel.
func (c *FrameCursor) InsertFrame(values []float32) error {
	width := c.file.numChannels
	if len(values) != width {
		return fmt.Errorf("bvh: insert frame: %w: got %d values, want %d", ErrFrameWidth, len(values), width)
	}

	at := c.index * width
	motion := c.file.motion
	motion = append(motion, values...)
	copy(motion[at+width:], motion[at:])
	copy(motion[at:], values)

	c.file.motion = motion
	c.file.numFrames++
	c.index++
	return nil
}

// RemoveFrame removes the frame after the cursor. The cursor position
// is unchanged, so it now points at the following frame.
func (c *FrameCursor) RemoveFrame() error {
	if c.index >= c.file.NumFrames() {
		return fmt.Errorf("bvh: remove frame: %w: no frame at index %d", ErrFrameRange, c.index)
	}

	width := c.file.numChannels
	at := c.index * width
	c.file.motion = append(c.file.motion[:at], c.file.motion[at+width:]...)
	c.file.numFrames--
	return nil
}
