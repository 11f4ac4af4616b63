package kdl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError is a syntax error positioned in the source text.
type ParseError struct {
	Span    Span
	Message string
	Help    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kdl: %s at offset %d", e.Message, e.Span.Offset)
}

// Parse reads a KDL document. The first syntax error aborts parsing.
func Parse(text string) (*Document, error) {
	p := &parser{src: text}
	doc, err := p.document(false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(span Span, format string, args ...any) *ParseError {
	return &ParseError{Span: span, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) peekAt(off int) rune {
	if p.pos+off >= len(p.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos+off:])
	return r
}

func (p *parser) advance() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) here(length int) Span {
	return Span{Offset: p.pos, Length: length}
}

func (p *parser) document(nested bool) (*Document, error) {
	start := p.pos
	doc := &Document{}
	for {
		if err := p.lineSpace(); err != nil {
			return nil, err
		}
		if p.eof() {
			if nested {
				return nil, p.errorf(p.here(0), "unclosed children block")
			}
			break
		}
		if p.peek() == '}' {
			if !nested {
				return nil, p.errorf(p.here(1), "unexpected '}'")
			}
			break
		}
		skip := false
		if p.hasPrefix("/-") {
			p.pos += 2
			skip = true
			if err := p.nodeSpace(); err != nil {
				return nil, err
			}
		}
		node, err := p.node()
		if err != nil {
			return nil, err
		}
		if !skip {
			doc.Nodes = append(doc.Nodes, node)
		}
	}
	doc.Span = Span{Offset: start, Length: p.pos - start}
	return doc, nil
}

func (p *parser) node() (*Node, error) {
	start := p.pos
	n := &Node{}
	typ, err := p.typeAnnotation()
	if err != nil {
		return nil, err
	}
	n.Type = typ

	nameStart := p.pos
	name, err := p.identifierOrString()
	if err != nil {
		return nil, err
	}
	n.Name = name
	n.NameSpan = Span{Offset: nameStart, Length: p.pos - nameStart}
	end := p.pos

	for {
		spaced := p.pos
		if err := p.nodeSpace(); err != nil {
			return nil, err
		}
		if p.eof() || p.atTerminator() || p.peek() == '}' {
			break
		}
		if p.peek() == '{' || p.hasPrefix("/-{") || (p.hasPrefix("/-") && p.childrenAfterSlashdash()) {
			skip := false
			if p.hasPrefix("/-") {
				p.pos += 2
				skip = true
				if err := p.nodeSpace(); err != nil {
					return nil, err
				}
			}
			children, err := p.children()
			if err != nil {
				return nil, err
			}
			if !skip {
				n.Children = children
			}
			end = p.pos
			continue
		}
		if p.pos == spaced {
			return nil, p.errorf(p.here(1), "expected whitespace before entry")
		}
		if n.Children != nil {
			return nil, p.errorf(p.here(1), "entries must come before the children block")
		}
		skip := false
		if p.hasPrefix("/-") {
			p.pos += 2
			skip = true
			if err := p.nodeSpace(); err != nil {
				return nil, err
			}
		}
		entry, err := p.entry()
		if err != nil {
			return nil, err
		}
		if !skip {
			n.Entries = append(n.Entries, entry)
		}
		end = p.pos
	}

	if p.peek() == ';' {
		p.pos++
	}
	n.Span = Span{Offset: start, Length: end - start}
	return n, nil
}

func (p *parser) childrenAfterSlashdash() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.pos += 2
	if err := p.nodeSpace(); err != nil {
		return false
	}
	return p.peek() == '{'
}

func (p *parser) children() (*Document, error) {
	open := p.here(1)
	p.pos++
	doc, err := p.document(true)
	if err != nil {
		if pe, ok := err.(*ParseError); ok && pe.Message == "unclosed children block" {
			pe.Span = open
		}
		return nil, err
	}
	p.pos++
	doc.Span = Span{Offset: open.Offset, Length: p.pos - open.Offset}
	return doc, nil
}

func (p *parser) atTerminator() bool {
	switch p.peek() {
	case ';', '\n', '\r', '\u0085', '\u000C', '\u2028', '\u2029':
		return true
	}
	return p.hasPrefix("//")
}

func (p *parser) entry() (Entry, error) {
	start := p.pos
	typ, err := p.typeAnnotation()
	if err != nil {
		return Entry{}, err
	}

	if typ == "" && (p.peek() == '"' || p.isRawStart() || isIdentStart(p.peek(), p.peekAt(1))) {
		save := p.pos
		key, isString, err := p.keyCandidate()
		if err != nil {
			return Entry{}, err
		}
		if p.peek() == '=' {
			p.pos++
			vtyp, err := p.typeAnnotation()
			if err != nil {
				return Entry{}, err
			}
			v, err := p.value()
			if err != nil {
				return Entry{}, err
			}
			return Entry{Key: key, Type: vtyp, Value: v, Span: Span{Offset: start, Length: p.pos - start}}, nil
		}
		if !isString {
			switch key {
			case "true":
				return Entry{Value: BoolValue(true), Span: Span{Offset: start, Length: p.pos - start}}, nil
			case "false":
				return Entry{Value: BoolValue(false), Span: Span{Offset: start, Length: p.pos - start}}, nil
			case "null":
				return Entry{Value: NullValue(), Span: Span{Offset: start, Length: p.pos - start}}, nil
			}
			return Entry{}, &ParseError{
				Span:    Span{Offset: save, Length: p.pos - save},
				Message: fmt.Sprintf("bare identifier %q is not a value", key),
				Help:    "quote the text to pass it as a string",
			}
		}
		return Entry{Value: StringValue(key), Span: Span{Offset: start, Length: p.pos - start}}, nil
	}

	v, err := p.value()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Type: typ, Value: v, Span: Span{Offset: start, Length: p.pos - start}}, nil
}

func (p *parser) keyCandidate() (string, bool, error) {
	if p.peek() == '"' || p.isRawStart() {
		s, err := p.stringLiteral()
		return s, true, err
	}
	s, err := p.identifier()
	return s, false, err
}

func (p *parser) value() (Value, error) {
	switch r := p.peek(); {
	case r == '"' || p.isRawStart():
		s, err := p.stringLiteral()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case isDigit(r) || ((r == '+' || r == '-') && isDigit(p.peekAt(1))):
		return p.number()
	case isIdentStart(r, p.peekAt(1)):
		start := p.pos
		id, err := p.identifier()
		if err != nil {
			return Value{}, err
		}
		switch id {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		case "null":
			return NullValue(), nil
		}
		return Value{}, &ParseError{
			Span:    Span{Offset: start, Length: p.pos - start},
			Message: fmt.Sprintf("bare identifier %q is not a value", id),
			Help:    "quote the text to pass it as a string",
		}
	case r == -1:
		return Value{}, p.errorf(p.here(0), "expected a value, found end of input")
	default:
		return Value{}, p.errorf(p.here(1), "expected a value, found %q", r)
	}
}

func (p *parser) number() (Value, error) {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if isSpace(r) || isNewline(r) || strings.ContainsRune(`\/(){}<>;[]=,"`, r) {
			break
		}
		p.advance()
	}
	span := Span{Offset: start, Length: p.pos - start}
	raw := p.src[start:p.pos]
	text := strings.ReplaceAll(raw, "_", "")

	sign := ""
	body := text
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		sign, body = body[:1], body[1:]
	}
	base := 0
	switch {
	case strings.HasPrefix(body, "0x"):
		base = 16
	case strings.HasPrefix(body, "0o"):
		base = 8
	case strings.HasPrefix(body, "0b"):
		base = 2
	}
	if base != 0 {
		i, err := strconv.ParseInt(sign+body[2:], base, 64)
		if err != nil {
			return Value{}, p.errorf(span, "invalid number %q", raw)
		}
		return IntValue(i), nil
	}
	if strings.ContainsAny(body, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, p.errorf(span, "invalid number %q", raw)
		}
		return FloatValue(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, p.errorf(span, "invalid number %q", raw)
	}
	return IntValue(i), nil
}

func (p *parser) typeAnnotation() (string, error) {
	if p.peek() != '(' {
		return "", nil
	}
	open := p.here(1)
	p.pos++
	name, err := p.identifierOrString()
	if err != nil {
		return "", err
	}
	if p.peek() != ')' {
		return "", p.errorf(open, "unclosed type annotation")
	}
	p.pos++
	return name, nil
}

func (p *parser) identifierOrString() (string, error) {
	if p.peek() == '"' || p.isRawStart() {
		return p.stringLiteral()
	}
	return p.identifier()
}

func (p *parser) identifier() (string, error) {
	start := p.pos
	if !isIdentStart(p.peek(), p.peekAt(1)) {
		if p.eof() {
			return "", p.errorf(p.here(0), "expected an identifier, found end of input")
		}
		return "", p.errorf(p.here(1), "expected an identifier, found %q", p.peek())
	}
	for !p.eof() && isIdentChar(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos], nil
}

func (p *parser) isRawStart() bool {
	if p.peek() != 'r' {
		return false
	}
	next := p.peekAt(1)
	return next == '"' || next == '#'
}

func (p *parser) stringLiteral() (string, error) {
	if p.isRawStart() {
		return p.rawString()
	}
	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf(Span{Offset: start, Length: p.pos - start}, "unterminated string")
		}
		r := p.advance()
		switch r {
		case '"':
			return b.String(), nil
		case '\\':
			escStart := p.pos - 1
			if p.eof() {
				return "", p.errorf(Span{Offset: start, Length: p.pos - start}, "unterminated string")
			}
			e := p.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case '"':
				b.WriteByte('"')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'u':
				if p.peek() != '{' {
					return "", p.errorf(Span{Offset: escStart, Length: p.pos - escStart}, "invalid unicode escape")
				}
				p.pos++
				hexStart := p.pos
				for !p.eof() && p.peek() != '}' && p.pos-hexStart <= 6 {
					p.pos++
				}
				code, err := strconv.ParseUint(p.src[hexStart:p.pos], 16, 32)
				if err != nil || p.peek() != '}' || !utf8.ValidRune(rune(code)) {
					return "", p.errorf(Span{Offset: escStart, Length: p.pos - escStart}, "invalid unicode escape")
				}
				p.pos++
				b.WriteRune(rune(code))
			default:
				return "", p.errorf(Span{Offset: escStart, Length: p.pos - escStart}, "invalid escape '\\%c'", e)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (p *parser) rawString() (string, error) {
	start := p.pos
	p.pos++
	hashes := 0
	for p.peek() == '#' {
		hashes++
		p.pos++
	}
	if p.peek() != '"' {
		return "", p.errorf(Span{Offset: start, Length: p.pos - start}, "malformed raw string")
	}
	p.pos++
	closing := "\"" + strings.Repeat("#", hashes)
	idx := strings.Index(p.src[p.pos:], closing)
	if idx < 0 {
		return "", p.errorf(Span{Offset: start, Length: len(p.src) - start}, "unterminated raw string")
	}
	s := p.src[p.pos : p.pos+idx]
	p.pos += idx + len(closing)
	return s, nil
}

// lineSpace skips whitespace, newlines and comments between nodes.
func (p *parser) lineSpace() error {
	for !p.eof() {
		r := p.peek()
		switch {
		case isSpace(r) || isNewline(r) || r == '\uFEFF':
			p.advance()
		case p.hasPrefix("//"):
			p.lineComment()
		case p.hasPrefix("/*"):
			if err := p.blockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// nodeSpace skips whitespace, block comments and line continuations within a node.
func (p *parser) nodeSpace() error {
	for !p.eof() {
		r := p.peek()
		switch {
		case isSpace(r):
			p.advance()
		case p.hasPrefix("/*"):
			if err := p.blockComment(); err != nil {
				return err
			}
		case r == '\\':
			escStart := p.pos
			p.pos++
			for !p.eof() && isSpace(p.peek()) {
				p.advance()
			}
			if p.hasPrefix("//") {
				p.lineComment()
			}
			if p.eof() {
				return nil
			}
			if !isNewline(p.peek()) {
				return p.errorf(Span{Offset: escStart, Length: 1}, "line continuation must be followed by a newline")
			}
			if p.hasPrefix("\r\n") {
				p.pos++
			}
			p.advance()
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) lineComment() {
	for !p.eof() && !isNewline(p.peek()) {
		p.advance()
	}
}

func (p *parser) blockComment() error {
	start := p.pos
	depth := 0
	for !p.eof() {
		switch {
		case p.hasPrefix("/*"):
			depth++
			p.pos += 2
		case p.hasPrefix("*/"):
			depth--
			p.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			p.advance()
		}
	}
	return p.errorf(Span{Offset: start, Length: 2}, "unterminated block comment")
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSpace(r rune) bool {
	switch r {
	case '\t', ' ', '\u00A0', '\u1680', '\u202F', '\u205F', '\u3000':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

func isNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u000C', '\u2028', '\u2029':
		return true
	}
	return false
}

func isIdentChar(r rune) bool {
	if r < 0x20 || r > unicode.MaxRune || isSpace(r) || isNewline(r) {
		return false
	}
	return !strings.ContainsRune(`\/(){}<>;[]=,"`, r)
}

func isIdentStart(r, next rune) bool {
	if !isIdentChar(r) || isDigit(r) {
		return false
	}
	if (r == '+' || r == '-') && isDigit(next) {
		return false
	}
	return true
}
