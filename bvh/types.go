package bvh

import (
	"fmt"
)

// ChannelKind identifies one of the six degrees of freedom a joint may
// declare in its CHANNELS line.
type ChannelKind uint8

const (
	Xposition ChannelKind = iota
	Yposition
	Zposition
	Xrotation
	Yrotation
	Zrotation
)

// String returns the keyword used for the channel kind in a bvh file.
func (k ChannelKind) String() string {
	switch k {
	case Xposition:
		return "Xposition"
	case Yposition:
		return "Yposition"
	case Zposition:
		return "Zposition"
	case Xrotation:
		return "Xrotation"
	case Yrotation:
		return "Yrotation"
	case Zrotation:
		return "Zrotation"
	default:
		return "unknown"
	}
}

// IsRotation reports whether the channel kind is a rotation axis.
func (k ChannelKind) IsRotation() bool {
	return k == Xrotation || k == Yrotation || k == Zrotation
}

// IsPosition reports whether the channel kind is a position axis.
func (k ChannelKind) IsPosition() bool {
	return !k.IsRotation()
}

// ParseChannelKind parses a CHANNELS keyword into a ChannelKind.
func ParseChannelKind(s string) (ChannelKind, error) {
	switch s {
	case "Xposition":
		return Xposition, nil
	case "Yposition":
		return Yposition, nil
	case "Zposition":
		return Zposition, nil
	case "Xrotation":
		return Xrotation, nil
	case "Yrotation":
		return Yrotation, nil
	case "Zrotation":
		return Zrotation, nil
	default:
		return 0, fmt.Errorf("bvh: unrecognized channel name %q", s)
	}
}

// Channel pairs a channel kind with its column in every frame row.
// Indices are assigned across joints in depth-first flattening order,
// so Index addresses the motion buffer directly.
type Channel struct {
	Kind  ChannelKind
	Index int
}

// Vec3 is an OFFSET triple.
type Vec3 struct {
	X, Y, Z float32
}

// Joint is one node of the flattened skeleton.
//
// Joints live in a single depth-first pre-order array owned by File;
// ParentIndex points backwards into that array (-1 for the root), which
// makes cycles unrepresentable.
type Joint struct {
	Name        string
	Offset      Vec3
	Channels    []Channel
	EndSite     *Vec3 // nil when the joint has no End Site block
	ParentIndex int   // -1 for the root
	Depth       int   // root is 0, each child is parent depth + 1
}

// HasEndSite reports whether the joint carries an End Site block.
func (j *Joint) HasEndSite() bool {
	return j.EndSite != nil
}

// File is a parsed bvh file: the flattened joint array plus the motion
// matrix. The joint order is load-bearing: it is the order channel
// indices were assigned in and the order the writer re-emits.
type File struct {
	joints      []Joint
	frameTime   float64 // seconds
	numChannels int
	numFrames   int
	motion      []float32 // row-major, numFrames × numChannels
}

// Joints returns the flattened joint array in depth-first pre-order.
// The returned slice is owned by the File.
func (f *File) Joints() []Joint {
	return f.joints
}

// NumJoints returns the number of joints.
func (f *File) NumJoints() int {
	return len(f.joints)
}

// Joint returns the i-th joint in flattening order.
func (f *File) Joint(i int) (*Joint, error) {
	if i < 0 || i >= len(f.joints) {
		return nil, fmt.Errorf("bvh: joint index %d out of range (have %d)", i, len(f.joints))
	}
	return &f.joints[i], nil
}

// Root returns the root joint, or nil for an empty skeleton.
func (f *File) Root() *Joint {
	if len(f.joints) == 0 {
		return nil
	}
	return &f.joints[0]
}

// JointByName returns the first joint with the given name, or nil.
func (f *File) JointByName(name string) *Joint {
	for i := range f.joints {
		if f.joints[i].Name == name {
			return &f.joints[i]
		}
	}
	return nil
}

// NumChannels returns the total channel count across all joints.
func (f *File) NumChannels() int {
	return f.numChannels
}

// NumFrames returns the number of motion frames.
func (f *File) NumFrames() int {
	return f.numFrames
}

// FrameTime returns the duration of one frame in seconds.
func (f *File) FrameTime() float64 {
	return f.frameTime
}

// SetFrameTime sets the duration of one frame in seconds. The value
// must be positive.
func (f *File) SetFrameTime(seconds float64) error {
	if seconds <= 0 {
		return ErrNonPositiveFrameTime
	}
	f.frameTime = seconds
	return nil
}

// Frame returns the i-th frame as a view of NumChannels contiguous
// values. The slice aliases the File's motion buffer.
func (f *File) Frame(i int) ([]float32, error) {
	if i < 0 || i >= f.numFrames {
		return nil, ErrFrameRange
	}
	start := i * f.numChannels
	return f.motion[start : start+f.numChannels], nil
}

// Frames returns all frames as row views into the motion buffer.
func (f *File) Frames() [][]float32 {
	rows := make([][]float32, f.numFrames)
	for i := 0; i < f.numFrames; i++ {
		rows[i], _ = f.Frame(i)
	}
	return rows
}

// MotionValues returns the flat row-major motion buffer.
func (f *File) MotionValues() []float32 {
	return f.motion
}

// AppendFrame appends one frame of motion values. The row must contain
// exactly NumChannels values.
func (f *File) AppendFrame(values []float32) error {
	if len(values) != f.numChannels {
		return ErrFrameWidth
	}
	f.motion = append(f.motion, values...)
	f.numFrames++
	return nil
}

// SetJointChannels replaces the channel kinds of the joint at index i
// and reassigns the global channel indices of every joint, preserving
// the contiguous-range invariant. Frames no longer matching the new
// channel count are dropped.
func (f *File) SetJointChannels(i int, kinds []ChannelKind) error {
	if i < 0 || i >= len(f.joints) {
		return fmt.Errorf("bvh: joint index %d out of range (have %d)", i, len(f.joints))
	}
	channels := make([]Channel, len(kinds))
	for n, k := range kinds {
		channels[n] = Channel{Kind: k}
	}
	f.joints[i].Channels = channels

	next := 0
	for ji := range f.joints {
		for ci := range f.joints[ji].Channels {
			f.joints[ji].Channels[ci].Index = next
			next++
		}
	}
	if next != f.numChannels {
		f.numChannels = next
		f.motion = nil
		f.numFrames = 0
	}
	return f.Validate()
}

// Validate checks every structural invariant of the File:
//
//  1. channel indices across joints in flattened order form the
//     contiguous range 0..NumChannels
//  2. the motion buffer holds exactly NumFrames × NumChannels values
//  3. every non-root joint's parent index points strictly backwards
//  4. depths are consistent with the parent chain
//  5. the frame time is positive when frames are present
func (f *File) Validate() error {
	next := 0
	for ji := range f.joints {
		j := &f.joints[ji]
		if j.Name == "" {
			return semanticErrorf(0, "joint %d has an empty name", ji)
		}
		for _, ch := range j.Channels {
			if ch.Index != next {
				return semanticErrorf(0, "joint %q channel index %d, want %d", j.Name, ch.Index, next)
			}
			next++
		}
		if ji == 0 {
			if j.ParentIndex != -1 {
				return semanticErrorf(0, "root joint has parent index %d", j.ParentIndex)
			}
			if j.Depth != 0 {
				return semanticErrorf(0, "root joint has depth %d", j.Depth)
			}
			continue
		}
		if j.ParentIndex < 0 || j.ParentIndex >= ji {
			return semanticErrorf(0, "joint %q parent index %d does not point backwards", j.Name, j.ParentIndex)
		}
		if parent := &f.joints[j.ParentIndex]; j.Depth != parent.Depth+1 {
			return semanticErrorf(0, "joint %q depth %d, want parent depth %d + 1", j.Name, j.Depth, parent.Depth)
		}
	}
	if next != f.numChannels {
		return semanticErrorf(0, "channel count %d does not match assigned indices %d", f.numChannels, next)
	}
	if len(f.motion) != f.numFrames*f.numChannels {
		return semanticErrorf(0, "motion buffer holds %d values, want %d", len(f.motion), f.numFrames*f.numChannels)
	}
	if f.numFrames > 0 && f.frameTime <= 0 {
		return ErrNonPositiveFrameTime
	}
	return nil
}

// Duration returns the total clip duration in seconds.
func (f *File) Duration() float64 {
	return f.frameTime * float64(f.numFrames)
}
