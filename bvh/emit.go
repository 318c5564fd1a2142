package bvh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// IndentStyle selects how nested hierarchy lines are indented.
type IndentStyle int

const (
	// IndentTabs indents with one tab per depth level.
	IndentTabs IndentStyle = iota
	// IndentSpaces indents with Width spaces per depth level.
	IndentSpaces
	// IndentNone emits no leading whitespace.
	IndentNone
)

// LineTerminator selects the line ending for emitted text.
type LineTerminator int

const (
	// LineUnix terminates lines with "\n".
	LineUnix LineTerminator = iota
	// LineWindows terminates lines with "\r\n".
	LineWindows
)

// WriteOptions configures the canonical writer.
type WriteOptions struct {
	// Indent style for the HIERARCHY section.
	Indent IndentStyle

	// IndentWidth is the number of spaces per level for IndentSpaces.
	IndentWidth int

	// Terminator for every emitted line.
	Terminator LineTerminator

	// OffsetPrecision is the number of fractional digits for OFFSET values.
	OffsetPrecision int

	// FrameTimePrecision is the number of fractional digits for Frame Time.
	FrameTimePrecision int

	// MotionPrecision is the number of fractional digits for frame values.
	MotionPrecision int
}

// DefaultWriteOptions returns the canonical emission settings.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:             IndentTabs,
		IndentWidth:        4,
		Terminator:         LineUnix,
		OffsetPrecision:    5,
		FrameTimePrecision: 7,
		MotionPrecision:    6,
	}
}

// Write emits f as canonical text to w using default options.
func Write(w io.Writer, f *File) error {
	return WriteWithOptions(w, f, DefaultWriteOptions())
}

// WriteWithOptions emits f as canonical text to w.
func WriteWithOptions(w io.Writer, f *File, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	e := &writer{w: bw, opts: opts}
	e.writeFile(f)
	if e.err != nil {
		return fmt.Errorf("bvh: write: %w", e.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bvh: write: %w", err)
	}
	return nil
}

// WriteString emits f as canonical text and returns it.
func WriteString(f *File) string {
	var sb strings.Builder
	e := &writer{w: &sb, opts: DefaultWriteOptions()}
	e.writeFile(f)
	return sb.String()
}

type writer struct {
	w    io.Writer
	opts WriteOptions
	err  error
}

func (e *writer) writeFile(f *File) {
	e.writeHierarchy(f)
	e.writeMotion(f)
}

func (e *writer) writeHierarchy(f *File) {
	e.line(0, "HIERARCHY")
	joints := f.Joints()
	if len(joints) == 0 {
		return
	}

	// Depth of the previously emitted joint; used to close braces on
	// the way back up the pre-order array.
	prev := -1
	for i := range joints {
		j := &joints[i]
		for d := prev; d >= j.Depth; d-- {
			e.line(d, "}")
		}

		keyword := "JOINT"
		if j.ParentIndex < 0 {
			keyword = "ROOT"
		}
		e.line(j.Depth, "%s %s", keyword, j.Name)
		e.line(j.Depth, "{")
		e.writeOffsetLine(j.Depth+1, j.Offset)
		e.writeChannelsLine(j.Depth+1, j.Channels)
		if j.EndSite != nil {
			e.line(j.Depth+1, "End Site")
			e.line(j.Depth+1, "{")
			e.writeOffsetLine(j.Depth+2, *j.EndSite)
			e.line(j.Depth+1, "}")
		}
		prev = j.Depth
	}
	for d := prev; d >= 0; d-- {
		e.line(d, "}")
	}
}

func (e *writer) writeOffsetLine(depth int, v Vec3) {
	p := e.opts.OffsetPrecision
	e.line(depth, "OFFSET %s %s %s",
		formatFloat(float64(v.X), p),
		formatFloat(float64(v.Y), p),
		formatFloat(float64(v.Z), p))
}

func (e *writer) writeChannelsLine(depth int, channels []Channel) {
	var sb strings.Builder
	sb.WriteString("CHANNELS ")
	sb.WriteString(strconv.Itoa(len(channels)))
	for _, c := range channels {
		sb.WriteByte(' ')
		sb.WriteString(c.Kind.String())
	}
	e.line(depth, "%s", sb.String())
}

func (e *writer) writeMotion(f *File) {
	e.line(0, "MOTION")
	e.line(0, "Frames: %d", f.NumFrames())
	e.line(0, "Frame Time: %s", formatFloat(f.FrameTime(), e.opts.FrameTimePrecision))

	width := f.NumChannels()
	motion := f.MotionValues()
	p := e.opts.MotionPrecision
	for row := 0; row < f.NumFrames(); row++ {
		var sb strings.Builder
		for col := 0; col < width; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloat(float64(motion[row*width+col]), p))
		}
		e.line(0, "%s", sb.String())
	}
}

// line emits one indented, terminated line.
func (e *writer) line(depth int, format string, args ...any) {
	if e.err != nil {
		return
	}
	indent := ""
	switch e.opts.Indent {
	case IndentTabs:
		indent = strings.Repeat("\t", depth)
	case IndentSpaces:
		indent = strings.Repeat(" ", depth*e.opts.IndentWidth)
	}
	terminator := "\n"
	if e.opts.Terminator == LineWindows {
		terminator = "\r\n"
	}
	_, e.err = fmt.Fprintf(e.w, indent+format+terminator, args...)
}

// formatFloat renders a value with a fixed number of fractional digits.
func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
