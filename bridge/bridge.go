package bridge

import (
	"io"

	"github.com/animtools/bvh/bvh"
)

// Offset is a rest-pose translation in the parent's coordinate space.
type Offset struct {
	X, Y, Z float32
}

// Channel pairs a channel kind with its column in every frame row.
type Channel struct {
	Kind  bvh.ChannelKind
	Index int
}

// Joint is one flattened skeleton record. Name aliases an
// allocator-provided byte buffer; it is invalid after Release.
type Joint struct {
	Name        []byte
	Channels    []Channel
	Offset      Offset
	EndSite     Offset
	HasEndSite  bool
	ParentIndex int
	Depth       int
}

// File is a parsed motion file laid out in allocator-provided buffers.
//
// All slice fields are owned by the File's allocator. Reading them
// after Release is a use-after-free error.
type File struct {
	Joints      []Joint
	NumFrames   int
	NumChannels int
	Motion      []float32
	FrameTime   float64

	arena    *arena
	released bool
}

// Parse parses text and lays the result out in buffers from alloc.
// A nil alloc uses the ambient allocator. On any failure, every
// buffer already obtained is returned to the allocator.
func Parse(text string, alloc Allocator) (*File, error) {
	f, err := bvh.Parse(text)
	if err != nil {
		return nil, err
	}
	return fromFile(f, alloc)
}

// Read parses the contents of r. See Parse.
func Read(r io.Reader, alloc Allocator) (*File, error) {
	f, err := bvh.Load(r)
	if err != nil {
		return nil, err
	}
	return fromFile(f, alloc)
}

// FromFile lays out an already-parsed file in buffers from alloc.
func FromFile(f *bvh.File, alloc Allocator) (*File, error) {
	return fromFile(f, alloc)
}

func fromFile(f *bvh.File, alloc Allocator) (*File, error) {
	a := newArena(alloc)

	out, err := convert(f, a)
	if err != nil {
		a.releaseAll()
		return nil, err
	}
	out.arena = a
	return out, nil
}

func convert(f *bvh.File, a *arena) (*File, error) {
	src := f.Joints()

	joints, err := a.joints("joint array", len(src))
	if err != nil {
		return nil, err
	}

	for i := range src {
		j := &src[i]

		name, err := a.bytes("joint name", len(j.Name))
		if err != nil {
			return nil, err
		}
		copy(name, j.Name)

		channels, err := a.channels("channel array", len(j.Channels))
		if err != nil {
			return nil, err
		}
		for k, c := range j.Channels {
			channels[k] = Channel{Kind: c.Kind, Index: c.Index}
		}

		joints[i] = Joint{
			Name:        name,
			Channels:    channels,
			Offset:      Offset{X: j.Offset.X, Y: j.Offset.Y, Z: j.Offset.Z},
			ParentIndex: j.ParentIndex,
			Depth:       j.Depth,
		}
		if j.EndSite != nil {
			joints[i].HasEndSite = true
			joints[i].EndSite = Offset{X: j.EndSite.X, Y: j.EndSite.Y, Z: j.EndSite.Z}
		}
	}

	motion, err := a.floats("motion data", len(f.MotionValues()))
	if err != nil {
		return nil, err
	}
	copy(motion, f.MotionValues())

	return &File{
		Joints:      joints,
		NumFrames:   f.NumFrames(),
		NumChannels: f.NumChannels(),
		Motion:      motion,
		FrameTime:   f.FrameTime(),
	}, nil
}

// Frame returns the row of channel values for one frame, or nil when
// the index is out of range or the File has been released.
func (f *File) Frame(i int) []float32 {
	if f.released || i < 0 || i >= f.NumFrames {
		return nil
	}
	start := i * f.NumChannels
	return f.Motion[start : start+f.NumChannels]
}

// Release returns every buffer to the allocator. Only the first call
// frees anything; later calls report false. It also reports false if
// the allocator failed to free a buffer.
func (f *File) Release() bool {
	if f.released {
		return false
	}
	f.released = true

	ok := f.arena.releaseAll()
	f.Joints = nil
	f.Motion = nil
	f.NumFrames = 0
	f.NumChannels = 0
	return ok
}

// ToFile copies the bridge layout back into a structured file, for
// callers that received a File from a foreign producer.
func (f *File) ToFile() (*bvh.File, error) {
	b := bvh.NewBuilder()
	for i := range f.Joints {
		j := &f.Joints[i]
		kinds := make([]bvh.ChannelKind, len(j.Channels))
		for k, c := range j.Channels {
			kinds[k] = c.Kind
		}
		offset := bvh.Vec3{X: j.Offset.X, Y: j.Offset.Y, Z: j.Offset.Z}
		if j.ParentIndex < 0 {
			b.Root(string(j.Name), offset, kinds...)
		} else {
			b.Child(j.Depth, string(j.Name), offset, kinds...)
		}
		if j.HasEndSite {
			b.EndSite(bvh.Vec3{X: j.EndSite.X, Y: j.EndSite.Y, Z: j.EndSite.Z})
		}
	}
	b.FrameTime(f.FrameTime)
	for i := 0; i < f.NumFrames; i++ {
		b.Frame(f.Frame(i)...)
	}
	return b.Build()
}
