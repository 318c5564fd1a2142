package bvh

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteString_Canonical(t *testing.T) {
	f, err := Parse(simpleSkeleton)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "HIERARCHY\n" +
		"ROOT Hips\n" +
		"{\n" +
		"\tOFFSET 0.00000 0.00000 0.00000\n" +
		"\tCHANNELS 3 Xposition Yposition Zposition\n" +
		"\tJOINT Spine\n" +
		"\t{\n" +
		"\t\tOFFSET 0.00000 10.00000 0.00000\n" +
		"\t\tCHANNELS 3 Xrotation Yrotation Zrotation\n" +
		"\t\tEnd Site\n" +
		"\t\t{\n" +
		"\t\t\tOFFSET 0.00000 5.00000 0.00000\n" +
		"\t\t}\n" +
		"\t}\n" +
		"}\n" +
		"MOTION\n" +
		"Frames: 1\n" +
		"Frame Time: 0.0333333\n" +
		"0.000000 0.000000 0.000000 10.000000 20.000000 30.000000\n"

	got := WriteString(f)
	if got != want {
		t.Errorf("Canonical output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	f, err := Parse(simpleSkeleton)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	g, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Re-parse failed: %v", err)
	}

	if g.NumJoints() != f.NumJoints() {
		t.Errorf("NumJoints: got %d, want %d", g.NumJoints(), f.NumJoints())
	}
	if g.NumChannels() != f.NumChannels() {
		t.Errorf("NumChannels: got %d, want %d", g.NumChannels(), f.NumChannels())
	}
	if g.NumFrames() != f.NumFrames() {
		t.Errorf("NumFrames: got %d, want %d", g.NumFrames(), f.NumFrames())
	}
	for i := range f.Joints() {
		a, b := f.Joints()[i], g.Joints()[i]
		if a.Name != b.Name || a.ParentIndex != b.ParentIndex || a.Depth != b.Depth {
			t.Errorf("joint %d differs: %+v vs %+v", i, a, b)
		}
	}
	fa, _ := f.Frame(0)
	fb, _ := g.Frame(0)
	for i := range fa {
		if fa[i] != fb[i] {
			t.Errorf("motion[%d]: got %v, want %v", i, fb[i], fa[i])
		}
	}
}

func TestWriteWithOptions_Styles(t *testing.T) {
	f, err := Parse(simpleSkeleton)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	t.Run("spaces", func(t *testing.T) {
		opts := DefaultWriteOptions()
		opts.Indent = IndentSpaces
		opts.IndentWidth = 2

		var buf bytes.Buffer
		if err := WriteWithOptions(&buf, f, opts); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  OFFSET") {
			t.Error("Expected two-space indentation")
		}
		if strings.Contains(buf.String(), "\t") {
			t.Error("Unexpected tab in space-indented output")
		}
	})

	t.Run("windows line endings", func(t *testing.T) {
		opts := DefaultWriteOptions()
		opts.Terminator = LineWindows

		var buf bytes.Buffer
		if err := WriteWithOptions(&buf, f, opts); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.HasPrefix(buf.String(), "HIERARCHY\r\n") {
			t.Error("Expected CRLF line endings")
		}
		if _, err := Parse(buf.String()); err != nil {
			t.Errorf("CRLF output does not re-parse: %v", err)
		}
	})

	t.Run("motion precision", func(t *testing.T) {
		opts := DefaultWriteOptions()
		opts.MotionPrecision = 2

		var buf bytes.Buffer
		if err := WriteWithOptions(&buf, f, opts); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "10.00 20.00 30.00") {
			t.Errorf("Expected two-digit motion values, got:\n%s", buf.String())
		}
	})
}
