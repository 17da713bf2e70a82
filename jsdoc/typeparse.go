package jsdoc

import (
	"strings"

	"github.com/typebridge/typebridge/errors"
)

// ParseType parses one embedded type expression, e.g. the text between the
// braces of `@param {!Array.<string>} names`.
func ParseType(src string) (TypeExpr, error) {
	p := &typeParser{src: src}
	expr, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("trailing characters %q", p.rest())
	}
	return expr, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) eof() bool { return p.pos >= len(p.src) }

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) rest() string { return p.src[p.pos:] }

func (p *typeParser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *typeParser) consume(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	err := errors.Newf(format, args...)
	return errors.Wrapf(err, "type %q at offset %d", p.src, p.pos)
}

// parseUnion parses `A | B | ...`, collapsing a single member to itself.
func (p *typeParser) parseUnion() (TypeExpr, error) {
	first, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '|' {
		return first, nil
	}
	members := []TypeExpr{first}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			break
		}
		p.pos++
		m, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return &UnionExpr{Members: members}, nil
}

// parseElement handles the prefix operators (..., ?, !) and the optional
// `=` suffix around a primary type.
func (p *typeParser) parseElement() (TypeExpr, error) {
	p.skipSpace()

	if p.consume("...") {
		p.skipSpace()
		// A bare `...` (trailing variadic with no element type) means any.
		if p.eof() || isTypeTerminator(p.peek()) {
			return &RestExpr{Elem: &AnyExpr{}}, nil
		}
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return &RestExpr{Elem: elem}, nil
	}

	if p.peek() == '?' {
		p.pos++
		p.skipSpace()
		// `?` standing alone is the unknown type.
		if p.eof() || isTypeTerminator(p.peek()) {
			return p.parseSuffix(&AnyExpr{})
		}
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return p.parseSuffix(&NullableExpr{Elem: elem})
	}

	if p.peek() == '!' {
		p.pos++
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return p.parseSuffix(&NonNullableExpr{Elem: elem})
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseSuffix(primary)
}

func (p *typeParser) parseSuffix(expr TypeExpr) (TypeExpr, error) {
	p.skipSpace()
	if p.peek() == '=' {
		p.pos++
		return &OptionalExpr{Elem: expr}, nil
	}
	return expr, nil
}

func isTypeTerminator(c byte) bool {
	switch c {
	case ',', ')', '>', '}', '|', '=':
		return true
	}
	return false
}

func (p *typeParser) parsePrimary() (TypeExpr, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of type")
	}

	switch p.peek() {
	case '(':
		p.pos++
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	case '*':
		p.pos++
		return &AnyExpr{}, nil
	case '{':
		return p.parseRecord()
	}

	name := p.parseName()
	if name == "" {
		return nil, p.errorf("unexpected character %q", string(p.peek()))
	}

	if name == "function" {
		p.skipSpace()
		if p.peek() == '(' {
			return p.parseFunc()
		}
	}

	switch name {
	case "void", "null", "undefined":
		return &VoidExpr{}, nil
	}

	p.skipSpace()
	if p.consume(".<") || (p.peek() == '<' && p.consume("<")) {
		return p.parseApp(name)
	}
	return &NameExpr{Name: name}, nil
}

// parseName consumes a dotted identifier, stopping before a `.<` generic
// marker so the application syntax stays intact.
func (p *typeParser) parseName() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isIdentChar(c) {
			p.pos++
			continue
		}
		if c == '.' && p.pos+1 < len(p.src) && isIdentChar(p.src[p.pos+1]) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeParser) parseApp(base string) (TypeExpr, error) {
	app := &AppExpr{Base: &NameExpr{Name: base}}
	for {
		arg, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		app.Args = append(app.Args, arg)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return app, nil
}

func (p *typeParser) parseFunc() (TypeExpr, error) {
	fn := &FuncExpr{}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpace()
	for p.peek() != ')' {
		// `this:` and `new:` context parameters carry no information the
		// target grammar can express; their types are parsed and dropped.
		p.skipSpace()
		save := p.pos
		marker := p.parseName()
		p.skipSpace()
		if (marker == "this" || marker == "new") && p.peek() == ':' {
			p.pos++
			if _, err := p.parseUnion(); err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
			}
			continue
		}
		p.pos = save
		param, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, FuncParam{Type: param})
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		result, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		fn.Result = result
	}
	return fn, nil
}

func (p *typeParser) parseRecord() (TypeExpr, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	rec := &RecordExpr{}
	p.skipSpace()
	for p.peek() != '}' {
		key, err := p.parseRecordKey()
		if err != nil {
			return nil, err
		}
		field := RecordField{Key: key, Type: TypeExpr(&AnyExpr{})}
		p.skipSpace()
		if p.peek() == ':' {
			p.pos++
			t, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			field.Type = t
		}
		rec.Fields = append(rec.Fields, field)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
	}
	if err := p.expect('}'); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *typeParser) parseRecordKey() (string, error) {
	p.skipSpace()
	if p.peek() == '\'' || p.peek() == '"' {
		quote := p.peek()
		p.pos++
		start := p.pos
		for !p.eof() && p.src[p.pos] != quote {
			p.pos++
		}
		if p.eof() {
			return "", p.errorf("unterminated record key")
		}
		key := p.src[start:p.pos]
		p.pos++
		return key, nil
	}
	key := p.parseName()
	if key == "" {
		return "", p.errorf("expected record field key")
	}
	return key, nil
}
