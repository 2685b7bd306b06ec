package newick

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF    TokenKind = iota
	TokenHeader           // #NEXUS
	TokenWord             // unquoted label or keyword
	TokenNumber           // integer or floating point, optionally signed
	TokenString           // 'quoted label', already unescaped
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenComma
	TokenColon
	TokenEquals
	TokenStar
)

const (
	eof          = -1
	nul          = 0
	terminal     = ';'
	descDelim    = ','
	descStart    = '('
	descEnd      = ')'
	quote        = '\''
	lengthStart  = ':'
	equals       = '='
	star         = '*'
	commentStart = '['
	commentEnd   = ']'
)

const headerMarker = "#NEXUS"

// Characters that end an unquoted word.
const wordBanned = "()[]':;,=*"

// Token is a single lexical unit.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos

	// The bodies of the comments that appeared between the previous token
	// and this one, without their brackets. Nested comments are kept
	// verbatim inside their enclosing comment.
	Comments []string
}

func (tok Token) String() string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenWord, TokenNumber, TokenString, TokenHeader:
		return fmt.Sprintf("%s '%s'", tok.Kind, tok.Text)
	}
	return tok.Kind.String()
}

// IsLabel reports whether the token may be used as a label: a word, a number
// or a quoted string.
func (tok Token) IsLabel() bool {
	return tok.Kind == TokenWord || tok.Kind == TokenNumber ||
		tok.Kind == TokenString
}

type stateFn func(lx *lexer) stateFn

type lexer struct {
	input []byte
	lines []int // byte offset of the start of each line
	start int
	pos   int
	width int
	state stateFn
	items []Token
	err   error

	comments     []string
	commentDepth int
	quoted       strings.Builder
}

func lex(input []byte) *lexer {
	lx := &lexer{
		input: input,
		lines: []int{0},
		state: lexText,
	}
	for i, b := range input {
		if b == '\n' {
			lx.lines = append(lx.lines, i+1)
		}
	}
	return lx
}

// nextToken runs the state machine until a token is available. Once the
// input is exhausted, every call returns an EOF token.
func (lx *lexer) nextToken() (Token, error) {
	for len(lx.items) == 0 {
		if lx.state == nil {
			if lx.err != nil {
				return Token{}, lx.err
			}
			return Token{Kind: TokenEOF, Pos: lx.position(len(lx.input))}, nil
		}
		lx.state = lx.state(lx)
	}
	tok := lx.items[0]
	lx.items = lx.items[1:]
	return tok, nil
}

func (lx *lexer) position(offset int) Pos {
	line := sort.SearchInts(lx.lines, offset+1) - 1
	return Pos{
		Offset: offset,
		Line:   line + 1,
		Column: offset - lx.lines[line] + 1,
	}
}

func (lx *lexer) current() string {
	return string(lx.input[lx.start:lx.pos])
}

func (lx *lexer) emit(typ TokenKind) {
	lx.emitText(typ, lx.current())
}

func (lx *lexer) emitText(typ TokenKind, text string) {
	lx.items = append(lx.items, Token{
		Kind:     typ,
		Text:     text,
		Pos:      lx.position(lx.start),
		Comments: lx.comments,
	})
	lx.comments = nil
	lx.start = lx.pos
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.input) {
		lx.width = 0
		return eof
	}
	r, lx.width = utf8.DecodeRune(lx.input[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by recording an error at offset and returning
// `nil`.
func (lx *lexer) errorf(offset int, format string, values ...interface{}) stateFn {
	for i, value := range values {
		if v, ok := value.(rune); ok {
			values[i] = escapeSpecial(v)
		}
	}
	lx.err = &LexError{lx.position(offset), fmt.Sprintf(format, values...)}
	return nil
}

func lexText(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		lx.ignore()
		return lexText
	}

	switch r {
	case eof:
		lx.emit(TokenEOF)
		return nil
	case nul:
		return lx.errorf(lx.start, "Unexpected NUL byte.")
	case commentStart:
		lx.commentDepth = 1
		return lexComment
	case commentEnd:
		return lx.errorf(lx.start, "Found '%s' outside of a comment.", r)
	case quote:
		lx.quoted.Reset()
		return lexQuoted
	case terminal:
		lx.emit(TokenSemicolon)
	case descStart:
		lx.emit(TokenLParen)
	case descEnd:
		lx.emit(TokenRParen)
	case descDelim:
		lx.emit(TokenComma)
	case lengthStart:
		lx.emit(TokenColon)
	case equals:
		lx.emit(TokenEquals)
	case star:
		lx.emit(TokenStar)
	default:
		lx.backup()
		return lexWord
	}
	return lexText
}

// lexComment consumes a bracketed comment. Comments nest, so an inner ']'
// only closes the innermost '['.
func lexComment(lx *lexer) stateFn {
	switch lx.next() {
	case eof:
		return lx.errorf(lx.start, "Unterminated comment.")
	case commentStart:
		lx.commentDepth++
	case commentEnd:
		lx.commentDepth--
		if lx.commentDepth == 0 {
			body := string(lx.input[lx.start+1 : lx.pos-1])
			lx.comments = append(lx.comments, body)
			lx.ignore()
			return lexText
		}
	}
	return lexComment
}

// lexQuoted consumes a single quoted label. Two consecutive quotes stand for
// one literal quote.
func lexQuoted(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == eof:
		return lx.errorf(lx.start, "Unterminated quoted label.")
	case r == quote:
		if lx.peek() == quote {
			lx.next()
			lx.quoted.WriteRune(quote)
			return lexQuoted
		}
		lx.emitText(TokenString, lx.quoted.String())
		return lexText
	}
	lx.quoted.WriteRune(r)
	return lexQuoted
}

func lexWord(lx *lexer) stateFn {
	r := lx.next()
	if r == eof || r == nul || isBlank(r) || isNL(r) || strings.ContainsRune(wordBanned, r) {
		lx.backup()
		word := lx.current()
		switch {
		case strings.EqualFold(word, headerMarker):
			lx.emit(TokenHeader)
		case isNumber(word):
			lx.emit(TokenNumber)
		default:
			lx.emit(TokenWord)
		}
		return lexText
	}
	return lexWord
}

// isNumber reports whether an unquoted word is a decimal number. Words like
// "Inf" or "NaN" that strconv would accept are labels here.
func isNumber(word string) bool {
	digits := false
	for _, r := range word {
		switch {
		case isDigit(r):
			digits = true
		case strings.ContainsRune("+-.eE", r):
		default:
			return false
		}
	}
	if !digits {
		return false
	}
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenHeader:
		return "header"
	case TokenWord:
		return "word"
	case TokenNumber:
		return "number"
	case TokenString:
		return "quoted label"
	case TokenSemicolon:
		return "';'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenEquals:
		return "'='"
	case TokenStar:
		return "'*'"
	}
	panic(fmt.Sprintf("BUG: Unknown token kind '%d'.", int(k)))
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	}
	return string(c)
}

// Scanner hands out the tokens of an input one at a time, with one token of
// lookahead.
type Scanner struct {
	lx       *lexer
	peeked   *Token
	reserved map[string]bool
}

// NewScanner returns a scanner over the complete input `src`.
func NewScanner(src []byte) *Scanner {
	return &Scanner{lx: lex(src)}
}

// Next consumes and returns the next token. The first lexical error is
// returned by every later call.
func (s *Scanner) Next() (Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.lx.nextToken()
}

// Peek returns but does not consume the next token.
func (s *Scanner) Peek() (Token, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	tok, err := s.lx.nextToken()
	if err != nil {
		return Token{}, err
	}
	s.peeked = &tok
	return tok, nil
}

// Reserve marks `words` as keywords of the enclosing format. An unquoted
// reserved word is never read as an internal node label, so a tree missing
// its ';' stops at the keyword that follows it. Case is ignored.
func (s *Scanner) Reserve(words ...string) {
	if s.reserved == nil {
		s.reserved = make(map[string]bool, len(words))
	}
	for _, w := range words {
		s.reserved[strings.ToUpper(w)] = true
	}
}

// isReserved reports whether `tok` is an unquoted reserved word.
func (s *Scanner) isReserved(tok Token) bool {
	return tok.Kind == TokenWord && s.reserved[strings.ToUpper(tok.Text)]
}

// ExpectTerminal consumes the ';' that ends a tree. Anything else is a
// syntax error.
func (s *Scanner) ExpectTerminal() error {
	tok, err := s.Next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case TokenSemicolon:
		return nil
	case TokenRParen:
		return SyntaxErrorf(tok.Pos,
			"Unbalanced parentheses: ')' has no matching '('.")
	}
	return SyntaxErrorf(tok.Pos,
		"Expected a terminal '%c' but got %s instead.", terminal, tok)
}

// Tokens returns every token in `src`, excluding the final EOF. Each range
// over the sequence scans `src` from the start. A lexical error is yielded
// once, as the last element.
func Tokens(src []byte) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		lx := lex(src)
		for {
			tok, err := lx.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if tok.Kind == TokenEOF || !yield(tok, nil) {
				return
			}
		}
	}
}
