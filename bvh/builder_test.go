package bvh

import (
	"strings"
	"testing"
)

func TestBuilder_Simple(t *testing.T) {
	f, err := NewBuilder().
		Root("Hips", Vec3{}, Xposition, Yposition, Zposition).
		Child(1, "Spine", Vec3{Y: 10}, Xrotation, Yrotation, Zrotation).
		EndSite(Vec3{Y: 5}).
		FrameTime(0.0333333).
		Frame(0, 0, 0, 10, 20, 30).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if f.NumJoints() != 2 || f.NumChannels() != 6 || f.NumFrames() != 1 {
		t.Fatalf("Built file shape wrong: %d joints, %d channels, %d frames",
			f.NumJoints(), f.NumChannels(), f.NumFrames())
	}

	// A built file and a parsed file of the same skeleton emit
	// identical text.
	parsed, err := Parse(simpleSkeleton)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if WriteString(f) != WriteString(parsed) {
		t.Errorf("Built and parsed output differ:\n%s\nvs:\n%s", WriteString(f), WriteString(parsed))
	}
}

func TestBuilder_Siblings(t *testing.T) {
	f, err := NewBuilder().
		Root("Base", Vec3{}, Xposition, Yposition, Zposition).
		Child(1, "Left", Vec3{X: -1}, Zrotation).
		Child(2, "LeftTip", Vec3{X: -2}, Zrotation).
		Child(1, "Right", Vec3{X: 1}, Zrotation).
		FrameTime(0.1).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Right attaches to Base, not to LeftTip's subtree.
	right := f.JointByName("Right")
	if right.ParentIndex != 0 {
		t.Errorf("Right parent: got %d, want 0", right.ParentIndex)
	}
	tip := f.JointByName("LeftTip")
	if tip.ParentIndex != 1 || tip.Depth != 2 {
		t.Errorf("LeftTip: parent=%d depth=%d", tip.ParentIndex, tip.Depth)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*File, error)
		want  string
	}{
		{
			name: "child before root",
			build: func() (*File, error) {
				return NewBuilder().Child(1, "X", Vec3{}).Build()
			},
			want: "before the root",
		},
		{
			name: "two roots",
			build: func() (*File, error) {
				return NewBuilder().
					Root("A", Vec3{}).
					Root("B", Vec3{}).
					Build()
			},
			want: "after",
		},
		{
			name: "orphan depth",
			build: func() (*File, error) {
				return NewBuilder().
					Root("A", Vec3{}).
					Child(3, "B", Vec3{}).
					Build()
			},
			want: "no parent",
		},
		{
			name: "wrong frame width",
			build: func() (*File, error) {
				return NewBuilder().
					Root("A", Vec3{}, Xposition).
					FrameTime(0.1).
					Frame(1, 2).
					Build()
			},
			want: "want 1",
		},
		{
			name: "no frame time",
			build: func() (*File, error) {
				return NewBuilder().Root("A", Vec3{}).Build()
			},
			want: "frame time",
		},
		{
			name: "duplicate end site",
			build: func() (*File, error) {
				return NewBuilder().
					Root("A", Vec3{}).
					EndSite(Vec3{}).
					EndSite(Vec3{}).
					Build()
			},
			want: "already has an end site",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatal("Expected a build error, got none")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}
