package bvh

import (
	"errors"
	"testing"
)

func TestLexer_BasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"HIERARCHY", []TokenType{TokenHierarchy, TokenEOF}},
		{"ROOT Hips", []TokenType{TokenRoot, TokenIdent, TokenEOF}},
		{"JOINT Spine", []TokenType{TokenJoint, TokenIdent, TokenEOF}},
		{"End Site", []TokenType{TokenEnd, TokenSite, TokenEOF}},
		{"OFFSET 0.0 1.5 -2.25", []TokenType{TokenOffset, TokenNumber, TokenNumber, TokenNumber, TokenEOF}},
		{"CHANNELS 3 Xposition", []TokenType{TokenChannels, TokenNumber, TokenIdent, TokenEOF}},
		{"MOTION", []TokenType{TokenMotion, TokenEOF}},
		{"Frames: 10", []TokenType{TokenFrames, TokenColon, TokenNumber, TokenEOF}},
		{"Frame Time: 0.033", []TokenType{TokenFrame, TokenTime, TokenColon, TokenNumber, TokenEOF}},
		{"{}", []TokenType{TokenLBrace, TokenRBrace, TokenEOF}},
		{"1e-5", []TokenType{TokenNumber, TokenEOF}},
		{"-456", []TokenType{TokenNumber, TokenEOF}},
		{"+3.14E2", []TokenType{TokenNumber, TokenEOF}},
		{"LeftUpLeg", []TokenType{TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			tokens, err := lexer.Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d", len(tt.expected), len(tokens))
			}

			for i, tok := range tokens {
				if tok.Type != tt.expected[i] {
					t.Errorf("Token %d: expected %s, got %s", i, tt.expected[i], tok.Type)
				}
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	input := "HIERARCHY\nROOT Hips\n"
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	// HIERARCHY at 1:1, ROOT at 2:1, Hips at 2:6
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Errorf("HIERARCHY position: got %s, want 1:1", tokens[0].Pos)
	}
	if tokens[1].Pos.Line != 2 || tokens[1].Pos.Column != 1 {
		t.Errorf("ROOT position: got %s, want 2:1", tokens[1].Pos)
	}
	if tokens[2].Pos.Line != 2 || tokens[2].Pos.Column != 6 {
		t.Errorf("Hips position: got %s, want 2:6", tokens[2].Pos)
	}
}

func TestLexer_WindowsLineEndings(t *testing.T) {
	input := "Frames: 2\r\nFrame Time: 0.1\r\n"
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[3].Pos.Line != 2 {
		t.Errorf("Frame token line: got %d, want 2", tokens[3].Pos.Line)
	}
}

func TestLexer_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare sign", "OFFSET - 1 2"},
		{"empty exponent", "1.5e"},
		{"stray byte", "OFFSET \x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			_, err := lexer.Tokenize()
			if err == nil {
				t.Fatal("Expected a lex error, got none")
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Expected *LexError, got %T: %v", err, err)
			}
			if lexErr.Pos.Line == 0 {
				t.Error("LexError carries no position")
			}
		})
	}
}

func TestTokenStream_Navigation(t *testing.T) {
	lexer := NewLexer("MOTION Frames: 2")
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	ts := NewTokenStream(tokens)
	if got := ts.Peek().Type; got != TokenMotion {
		t.Fatalf("Peek: got %s, want %s", got, TokenMotion)
	}
	if got := ts.PeekN(1).Type; got != TokenFrames {
		t.Fatalf("PeekN(1): got %s, want %s", got, TokenFrames)
	}
	if !ts.Match(TokenMotion) {
		t.Fatal("Match(MOTION) failed")
	}
	if _, err := ts.Expect(TokenFrames); err != nil {
		t.Fatalf("Expect(Frames): %v", err)
	}
	if _, err := ts.Expect(TokenNumber); err == nil {
		t.Fatal("Expect(Number) should fail on colon")
	}
}
