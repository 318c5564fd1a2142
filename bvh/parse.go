package bvh

import (
	"fmt"
	"io"
	"strconv"
)

// Parse parses bvh text into a File.
//
// Parsing is atomic: any lex, syntax, or semantic error aborts the
// parse and is returned as a typed error value. A non-nil File is
// returned only when the whole input was consumed successfully.
func Parse(input string) (*File, error) {
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	p := &parser{stream: NewTokenStream(tokens)}

	root, err := p.parseHierarchy()
	if err != nil {
		return nil, err
	}

	f := &File{}
	f.joints, f.numChannels = flatten(root)

	if err := p.parseMotion(f); err != nil {
		return nil, err
	}

	return f, nil
}

// Load reads the whole source and parses it. Reader failures are
// passed through wrapped; parse failures are returned as typed errors.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bvh: read source: %w", err)
	}
	return Parse(string(data))
}

// treeJoint is the intermediate nested form produced by recursive
// descent, before flattening into the File's joint array.
type treeJoint struct {
	name     string
	offset   Vec3
	channels []ChannelKind
	endSite  *Vec3
	children []*treeJoint
}

type parser struct {
	stream *TokenStream
}

// parseHierarchy parses the HIERARCHY section into a joint tree.
func (p *parser) parseHierarchy() (*treeJoint, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenHierarchy {
		return nil, syntaxErrorf(tok.Pos, "missing HIERARCHY keyword")
	}
	p.stream.Advance()

	tok = p.stream.Peek()
	if tok.Type != TokenRoot {
		return nil, syntaxErrorf(tok.Pos, "missing ROOT joint")
	}
	p.stream.Advance()

	return p.parseJointBody()
}

// parseJointBody parses NAME { OFFSET ... CHANNELS ... (JOINT|End Site)* }.
func (p *parser) parseJointBody() (*treeJoint, error) {
	nameTok := p.stream.Peek()
	if nameTok.Type != TokenIdent {
		return nil, syntaxErrorf(nameTok.Pos, "missing joint name")
	}
	p.stream.Advance()

	j := &treeJoint{name: nameTok.Value}

	if _, err := p.stream.Expect(TokenLBrace); err != nil {
		return nil, err
	}

	tok := p.stream.Peek()
	if tok.Type != TokenOffset {
		return nil, syntaxErrorf(tok.Pos, "missing OFFSET keyword in joint %q", j.name)
	}
	p.stream.Advance()

	offset, err := p.parseVec3()
	if err != nil {
		return nil, err
	}
	j.offset = offset

	tok = p.stream.Peek()
	if tok.Type != TokenChannels {
		return nil, syntaxErrorf(tok.Pos, "missing CHANNELS keyword in joint %q", j.name)
	}
	p.stream.Advance()

	j.channels, err = p.parseChannelList(j.name)
	if err != nil {
		return nil, err
	}

	for {
		tok = p.stream.Peek()
		switch tok.Type {
		case TokenJoint:
			p.stream.Advance()
			child, err := p.parseJointBody()
			if err != nil {
				return nil, err
			}
			j.children = append(j.children, child)

		case TokenEnd:
			p.stream.Advance()
			site, err := p.parseEndSite(j.name)
			if err != nil {
				return nil, err
			}
			if j.endSite != nil {
				return nil, syntaxErrorf(tok.Pos, "duplicate End Site in joint %q", j.name)
			}
			j.endSite = site

		case TokenRBrace:
			p.stream.Advance()
			return j, nil

		case TokenEOF:
			return nil, syntaxErrorf(tok.Pos, "unbalanced braces: joint %q is never closed", j.name)

		default:
			return nil, syntaxErrorf(tok.Pos, "unexpected %s in joint %q", tok.Type, j.name)
		}
	}
}

// parseChannelList parses COUNT followed by exactly COUNT channel names.
func (p *parser) parseChannelList(jointName string) ([]ChannelKind, error) {
	countTok := p.stream.Peek()
	if countTok.Type != TokenNumber {
		return nil, syntaxErrorf(countTok.Pos, "missing channel count in joint %q", jointName)
	}
	count, err := strconv.Atoi(countTok.Value)
	if err != nil || count < 0 {
		return nil, syntaxErrorf(countTok.Pos, "invalid channel count %q in joint %q", countTok.Value, jointName)
	}
	p.stream.Advance()

	kinds := make([]ChannelKind, 0, count)
	for i := 0; i < count; i++ {
		tok := p.stream.Peek()
		if tok.Type != TokenIdent {
			return nil, syntaxErrorf(tok.Pos, "CHANNELS declared %d names in joint %q, found %d", count, jointName, len(kinds))
		}
		kind, err := ParseChannelKind(tok.Value)
		if err != nil {
			return nil, syntaxErrorf(tok.Pos, "unrecognized channel name %q in joint %q", tok.Value, jointName)
		}
		p.stream.Advance()
		kinds = append(kinds, kind)
	}

	// A recognizable channel name right after the declared count means
	// the count was too small.
	if tok := p.stream.Peek(); tok.Type == TokenIdent {
		if _, err := ParseChannelKind(tok.Value); err == nil {
			return nil, syntaxErrorf(tok.Pos, "CHANNELS declared %d names in joint %q, but more follow", count, jointName)
		}
	}

	return kinds, nil
}

// parseEndSite parses Site { OFFSET x y z } after the End keyword.
func (p *parser) parseEndSite(jointName string) (*Vec3, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenSite {
		return nil, syntaxErrorf(tok.Pos, "expected Site after End in joint %q", jointName)
	}
	p.stream.Advance()

	if _, err := p.stream.Expect(TokenLBrace); err != nil {
		return nil, err
	}

	tok = p.stream.Peek()
	if tok.Type != TokenOffset {
		return nil, syntaxErrorf(tok.Pos, "missing OFFSET keyword in End Site of joint %q", jointName)
	}
	p.stream.Advance()

	offset, err := p.parseVec3()
	if err != nil {
		return nil, err
	}

	if _, err := p.stream.Expect(TokenRBrace); err != nil {
		return nil, err
	}

	return &offset, nil
}

// parseVec3 parses three float tokens.
func (p *parser) parseVec3() (Vec3, error) {
	var out [3]float32
	for i := range out {
		tok := p.stream.Peek()
		if tok.Type != TokenNumber {
			return Vec3{}, syntaxErrorf(tok.Pos, "expected offset value, got %s", tok.Type)
		}
		v, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return Vec3{}, syntaxErrorf(tok.Pos, "invalid offset value %q", tok.Value)
		}
		p.stream.Advance()
		out[i] = float32(v)
	}
	return Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// flatten converts the joint tree into a depth-first pre-order array,
// assigning parent links, depths, and sequential channel indices in a
// single traversal. The traversal order is what makes a channel's
// index address a column in every frame row.
func flatten(root *treeJoint) ([]Joint, int) {
	var joints []Joint
	nextChannel := 0

	var visit func(node *treeJoint, parent, depth int)
	visit = func(node *treeJoint, parent, depth int) {
		channels := make([]Channel, len(node.channels))
		for i, kind := range node.channels {
			channels[i] = Channel{Kind: kind, Index: nextChannel}
			nextChannel++
		}

		joints = append(joints, Joint{
			Name:        node.name,
			Offset:      node.offset,
			Channels:    channels,
			EndSite:     node.endSite,
			ParentIndex: parent,
			Depth:       depth,
		})

		self := len(joints) - 1
		for _, child := range node.children {
			visit(child, self, depth+1)
		}
	}

	visit(root, -1, 0)
	return joints, nextChannel
}

// parseMotion parses the MOTION section against the flattened channel
// count already recorded on f.
func (p *parser) parseMotion(f *File) error {
	tok := p.stream.Peek()
	if tok.Type != TokenMotion {
		return syntaxErrorf(tok.Pos, "missing MOTION section")
	}
	p.stream.Advance()

	numFrames, err := p.parseFramesHeader()
	if err != nil {
		return err
	}

	frameTime, timeLine, err := p.parseFrameTimeHeader()
	if err != nil {
		return err
	}
	if frameTime <= 0 {
		return semanticErrorf(timeLine, "frame time %v is not positive", frameTime)
	}

	f.frameTime = frameTime

	motion, lines, err := p.parseFrameRows(f.numChannels)
	if err != nil {
		return err
	}

	if lines != numFrames {
		return semanticErrorf(0, "declared %d frames, found %d data lines", numFrames, lines)
	}

	f.motion = motion
	f.numFrames = numFrames
	return nil
}

// parseFramesHeader parses `Frames: <N>`.
func (p *parser) parseFramesHeader() (int, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenFrames {
		return 0, syntaxErrorf(tok.Pos, "missing Frames: header")
	}
	p.stream.Advance()

	if _, err := p.stream.Expect(TokenColon); err != nil {
		return 0, err
	}

	tok = p.stream.Peek()
	if tok.Type != TokenNumber {
		return 0, syntaxErrorf(tok.Pos, "missing frame count")
	}
	n, err := strconv.Atoi(tok.Value)
	if err != nil || n < 0 {
		return 0, syntaxErrorf(tok.Pos, "invalid frame count %q", tok.Value)
	}
	p.stream.Advance()
	return n, nil
}

// parseFrameTimeHeader parses `Frame Time: <T>`.
func (p *parser) parseFrameTimeHeader() (float64, int, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenFrame {
		return 0, 0, syntaxErrorf(tok.Pos, "missing Frame Time: header")
	}
	p.stream.Advance()

	tok = p.stream.Peek()
	if tok.Type != TokenTime {
		return 0, 0, syntaxErrorf(tok.Pos, "expected Time after Frame")
	}
	p.stream.Advance()

	if _, err := p.stream.Expect(TokenColon); err != nil {
		return 0, 0, err
	}

	tok = p.stream.Peek()
	if tok.Type != TokenNumber {
		return 0, 0, syntaxErrorf(tok.Pos, "missing frame time value")
	}
	t, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, 0, syntaxErrorf(tok.Pos, "invalid frame time %q", tok.Value)
	}
	p.stream.Advance()
	return t, tok.Pos.Line, nil
}

// parseFrameRows reads the remaining number tokens, grouping them into
// rows by source line. Every row must hold exactly numChannels values;
// a short or long row is a SemanticError naming the offending line.
func (p *parser) parseFrameRows(numChannels int) ([]float32, int, error) {
	var motion []float32
	lines := 0
	rowWidth := 0
	rowLine := 0

	flushRow := func() error {
		if rowWidth == 0 {
			return nil
		}
		if rowWidth != numChannels {
			return semanticErrorf(rowLine, "frame row has %d values, want %d", rowWidth, numChannels)
		}
		lines++
		rowWidth = 0
		return nil
	}

	for {
		tok := p.stream.Peek()
		if tok.Type == TokenEOF {
			if err := flushRow(); err != nil {
				return nil, 0, err
			}
			return motion, lines, nil
		}
		if tok.Type != TokenNumber {
			return nil, 0, syntaxErrorf(tok.Pos, "unexpected %s in motion data", tok.Type)
		}

		if tok.Pos.Line != rowLine {
			if err := flushRow(); err != nil {
				return nil, 0, err
			}
			rowLine = tok.Pos.Line
		}

		v, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return nil, 0, syntaxErrorf(tok.Pos, "invalid motion value %q", tok.Value)
		}
		p.stream.Advance()
		motion = append(motion, float32(v))
		rowWidth++
	}
}
