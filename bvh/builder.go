package bvh

import "fmt"

// Builder constructs a File programmatically, without parsing text.
//
// Joints are declared in depth-first pre-order, the same order the
// flattened joint array uses. The first error encountered is retained
// and reported by Build; later calls on a failed builder are no-ops.
type Builder struct {
	joints      []Joint
	numChannels int
	frameTime   float64
	motion      []float32
	numFrames   int
	err         error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Root declares the root joint. It must be the first joint declared.
func (b *Builder) Root(name string, offset Vec3, channels ...ChannelKind) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.joints) > 0 {
		b.err = fmt.Errorf("bvh: builder: root joint %q declared after %d joints", name, len(b.joints))
		return b
	}
	b.pushJoint(name, offset, channels, -1, 0)
	return b
}

// Child declares a joint at the given depth. Its parent is the most
// recently declared joint at depth-1, matching pre-order construction.
func (b *Builder) Child(depth int, name string, offset Vec3, channels ...ChannelKind) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.joints) == 0 {
		b.err = fmt.Errorf("bvh: builder: joint %q declared before the root", name)
		return b
	}
	if depth < 1 {
		b.err = fmt.Errorf("bvh: builder: joint %q has non-positive depth %d", name, depth)
		return b
	}
	parent := -1
	for i := len(b.joints) - 1; i >= 0; i-- {
		if b.joints[i].Depth == depth-1 {
			parent = i
			break
		}
	}
	if parent < 0 {
		b.err = fmt.Errorf("bvh: builder: joint %q at depth %d has no parent at depth %d", name, depth, depth-1)
		return b
	}
	b.pushJoint(name, offset, channels, parent, depth)
	return b
}

// EndSite caps the most recently declared joint with an end site.
func (b *Builder) EndSite(offset Vec3) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.joints) == 0 {
		b.err = fmt.Errorf("bvh: builder: end site declared before any joint")
		return b
	}
	last := &b.joints[len(b.joints)-1]
	if last.EndSite != nil {
		b.err = fmt.Errorf("bvh: builder: joint %q already has an end site", last.Name)
		return b
	}
	site := offset
	last.EndSite = &site
	return b
}

// FrameTime sets the interval between frames in seconds.
func (b *Builder) FrameTime(seconds float64) *Builder {
	if b.err != nil {
		return b
	}
	if seconds <= 0 {
		b.err = fmt.Errorf("bvh: builder: frame time %v is not positive", seconds)
		return b
	}
	b.frameTime = seconds
	return b
}

// Frame appends one frame of motion values. The slice must hold one
// value per declared channel.
func (b *Builder) Frame(values ...float32) *Builder {
	if b.err != nil {
		return b
	}
	if len(values) != b.numChannels {
		b.err = fmt.Errorf("bvh: builder: frame has %d values, want %d", len(values), b.numChannels)
		return b
	}
	b.motion = append(b.motion, values...)
	b.numFrames++
	return b
}

// Build returns the constructed File, or the first error the builder
// encountered.
func (b *Builder) Build() (*File, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.joints) == 0 {
		return nil, fmt.Errorf("bvh: builder: no joints declared")
	}
	if b.frameTime <= 0 {
		return nil, fmt.Errorf("bvh: builder: frame time not set")
	}

	f := &File{
		joints:      append([]Joint(nil), b.joints...),
		numChannels: b.numChannels,
		frameTime:   b.frameTime,
		motion:      append([]float32(nil), b.motion...),
		numFrames:   b.numFrames,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (b *Builder) pushJoint(name string, offset Vec3, kinds []ChannelKind, parent, depth int) {
	channels := make([]Channel, len(kinds))
	for i, kind := range kinds {
		channels[i] = Channel{Kind: kind, Index: b.numChannels}
		b.numChannels++
	}
	b.joints = append(b.joints, Joint{
		Name:        name,
		Offset:      offset,
		Channels:    channels,
		ParentIndex: parent,
		Depth:       depth,
	})
}
