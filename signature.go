package classfile

import (
	"strconv"

	"github.com/javaclassfile/classfile/utils"
)

// maxSignatureDepth bounds the recursion depth of the signature
// parser so a malformed or adversarial input (deeply nested arrays,
// generics, or inner-class chains) cannot exhaust the stack
// (spec.md §5).
const maxSignatureDepth = 256

// sigParser is a recursive descent parser over a single signature or
// descriptor string. All offsets are byte offsets: every grammar
// delimiter is ASCII, and UTF-8 continuation bytes always have the
// high bit set, so byte indexing never splits a multi-byte rune
// across a grammar boundary.
type sigParser struct {
	s     string
	pos   int
	depth int
}

func (p *sigParser) enter() error {
	// Clamp rather than let depth grow unbounded on a pathological
	// input; anything past maxSignatureDepth+1 is reported the same
	// way as exactly maxSignatureDepth+1.
	p.depth = utils.Clamp(p.depth+1, 0, maxSignatureDepth+1)
	if p.depth > maxSignatureDepth {
		return newErr(KindSignatureTooDeep, nil, "signature %q exceeds max nesting depth %d", p.s, maxSignatureDepth)
	}
	return nil
}

func (p *sigParser) leave() { p.depth-- }

func (p *sigParser) eof() bool { return p.pos >= len(p.s) }

func (p *sigParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) invalid() error {
	return newErr(KindInvalidSignature, nil, "%q", p.s)
}

// parsePart parses exactly one signature "part" starting at p.pos,
// advancing p.pos past it (spec.md §4.2).
func (p *sigParser) parsePart() (Signature, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.eof() {
		return nil, p.invalid()
	}

	switch c := p.peek(); c {
	case 'B':
		p.pos++
		return PrimitiveSig{Kind: Byte}, nil
	case 'C':
		p.pos++
		return PrimitiveSig{Kind: Char}, nil
	case 'D':
		p.pos++
		return PrimitiveSig{Kind: Dbl}, nil
	case 'F':
		p.pos++
		return PrimitiveSig{Kind: Flt}, nil
	case 'I':
		p.pos++
		return PrimitiveSig{Kind: Int}, nil
	case 'J':
		p.pos++
		return PrimitiveSig{Kind: Long}, nil
	case 'S':
		p.pos++
		return PrimitiveSig{Kind: Shrt}, nil
	case 'Z':
		p.pos++
		return PrimitiveSig{Kind: Bool}, nil
	case 'L':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '(':
		return p.parseMethod()
	case 'T':
		return p.parseTypeVariable()
	default:
		return nil, p.invalid()
	}
}

func isDelimiter(c byte) bool {
	return c == '/' || c == ';' || c == '<' || c == '.'
}

func (p *sigParser) parseObject() (Signature, error) {
	p.pos++ // consume 'L'

	var pkg []string
	name := p.readSegment()
	for !p.eof() && p.peek() == '/' {
		p.pos++
		pkg = append(pkg, name)
		name = p.readSegment()
	}

	args, err := p.maybeTypeArgs()
	if err != nil {
		return nil, err
	}

	if p.eof() {
		return nil, p.invalid()
	}

	switch p.peek() {
	case ';':
		p.pos++
		return ObjectSig{Path: Path{Package: pkg, Name: name}, Args: args}, nil
	case '.':
		chain := []InnerSegment{{Name: name, Args: args}}
		for !p.eof() && p.peek() == '.' {
			p.pos++
			innerName := p.readSegment()
			if !p.eof() && p.peek() == '/' {
				return nil, newErr(KindInnerWithPackage, nil, "%q", p.s)
			}
			innerArgs, err := p.maybeTypeArgs()
			if err != nil {
				return nil, err
			}
			chain = append(chain, InnerSegment{Name: innerName, Args: innerArgs})
		}
		if p.eof() || p.peek() != ';' {
			return nil, p.invalid()
		}
		p.pos++
		return ObjectInnerSig{Package: pkg, Chain: chain}, nil
	default:
		return nil, p.invalid()
	}
}

// readSegment reads a path segment: every byte up to the next
// delimiter ('/', ';', '<', '.').
func (p *sigParser) readSegment() string {
	start := p.pos
	for !p.eof() && !isDelimiter(p.peek()) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *sigParser) maybeTypeArgs() ([]TypeArg, error) {
	if p.eof() || p.peek() != '<' {
		return nil, nil
	}
	p.pos++ // consume '<'
	var args []TypeArg
	for {
		if p.eof() {
			return nil, p.invalid()
		}
		if p.peek() == '>' {
			p.pos++
			return args, nil
		}
		arg, err := p.parseTypeArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (p *sigParser) parseTypeArg() (TypeArg, error) {
	switch p.peek() {
	case '*':
		p.pos++
		return TypeArg{Any: true}, nil
	case '+':
		p.pos++
		sig, err := p.parsePart()
		if err != nil {
			return TypeArg{}, err
		}
		return TypeArg{Wildcard: WildcardExtends, Type: sig}, nil
	case '-':
		p.pos++
		sig, err := p.parsePart()
		if err != nil {
			return TypeArg{}, err
		}
		return TypeArg{Wildcard: WildcardSuper, Type: sig}, nil
	default:
		sig, err := p.parsePart()
		if err != nil {
			return TypeArg{}, err
		}
		return TypeArg{Wildcard: WildcardNone, Type: sig}, nil
	}
}

func (p *sigParser) parseArray() (Signature, error) {
	p.pos++ // consume '['

	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	var size *int32
	if p.pos > start {
		n, err := strconv.ParseInt(p.s[start:p.pos], 10, 32)
		if err != nil {
			return nil, p.invalid()
		}
		v := int32(n)
		size = &v
	}

	elem, err := p.parsePart()
	if err != nil {
		return nil, err
	}
	return ArraySig{Elem: elem, Size: size}, nil
}

func (p *sigParser) parseMethod() (Signature, error) {
	p.pos++ // consume '('
	var args []Signature
	for {
		if p.eof() {
			return nil, p.invalid()
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
		arg, err := p.parsePart()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if p.eof() {
		return nil, p.invalid()
	}
	if p.peek() == 'V' {
		p.pos++
		return MethodSig{Args: args, Ret: nil}, nil
	}
	ret, err := p.parsePart()
	if err != nil {
		return nil, err
	}
	return MethodSig{Args: args, Ret: ret}, nil
}

func (p *sigParser) parseTypeVariable() (Signature, error) {
	p.pos++ // consume 'T'
	start := p.pos
	for !p.eof() && p.peek() != ';' {
		p.pos++
	}
	if p.eof() {
		return nil, p.invalid()
	}
	name := p.s[start:p.pos]
	p.pos++ // consume ';'
	return TypeVariableSig{Name: name}, nil
}

// parseFormalTypeParams parses a leading `<P1:B1:I1...>` block, if
// present. If p.peek() is not '<' it returns a nil slice without
// consuming anything (spec.md §4.2 "Formal type parameters").
func (p *sigParser) parseFormalTypeParams() ([]FormalTypeParam, error) {
	if p.eof() || p.peek() != '<' {
		return nil, nil
	}
	p.pos++ // consume '<'

	var params []FormalTypeParam
	for {
		if p.eof() {
			return nil, p.invalid()
		}
		if p.peek() == '>' {
			p.pos++
			return params, nil
		}

		nameStart := p.pos
		for !p.eof() && p.peek() != ':' {
			p.pos++
		}
		if p.eof() {
			return nil, p.invalid()
		}
		name := p.s[nameStart:p.pos]
		p.pos++ // consume ':'

		param := FormalTypeParam{Name: name}
		if !p.eof() && p.peek() == ':' {
			// "::" - extends omitted. Leave the second ':' for the
			// interface-bound loop below to consume.
		} else {
			extends, err := p.parsePart()
			if err != nil {
				return nil, err
			}
			param.Extends = extends
		}
		for !p.eof() && p.peek() == ':' {
			p.pos++
			iface, err := p.parsePart()
			if err != nil {
				return nil, err
			}
			param.Interfaces = append(param.Interfaces, iface)
		}
		params = append(params, param)
	}
}

// parseThrows parses zero or more trailing `^Signature` clauses
// (spec.md §4.2 "Throws").
func (p *sigParser) parseThrows() ([]Signature, error) {
	var throws []Signature
	for !p.eof() && p.peek() == '^' {
		p.pos++
		sig, err := p.parsePart()
		if err != nil {
			return nil, err
		}
		throws = append(throws, sig)
	}
	return throws, nil
}

// ParseSignature parses a single field descriptor, method descriptor,
// or bare generic signature and fails with KindInvalidSignature if
// any input remains once the top-level part has been consumed
// (spec.md §4.2).
func ParseSignature(s string) (Signature, error) {
	p := &sigParser{s: s}
	sig, err := p.parsePart()
	if err != nil {
		return nil, err
	}
	if p.pos != len(s) {
		return nil, p.invalid()
	}
	return sig, nil
}

// ParseMethodSignature parses a complete method signature: optional
// formal type parameters, a method signature part, and an optional
// throws tail (spec.md §4.2 "Complete method signature").
func ParseMethodSignature(s string) ([]FormalTypeParam, MethodSig, []Signature, error) {
	p := &sigParser{s: s}
	params, err := p.parseFormalTypeParams()
	if err != nil {
		return nil, MethodSig{}, nil, err
	}
	sig, err := p.parsePart()
	if err != nil {
		return nil, MethodSig{}, nil, err
	}
	method, ok := sig.(MethodSig)
	if !ok {
		return nil, MethodSig{}, nil, newErr(KindInvalidSignature, nil, "%q: not a method signature", s)
	}
	throws, err := p.parseThrows()
	if err != nil {
		return nil, MethodSig{}, nil, err
	}
	if p.pos != len(s) {
		return nil, MethodSig{}, nil, p.invalid()
	}
	return params, method, throws, nil
}

// ParseClassSignature parses a class-level Signature attribute:
// optional formal type parameters, the superclass signature, then
// zero or more interface signatures (spec.md §4.7).
func ParseClassSignature(s string) ([]FormalTypeParam, Signature, []Signature, error) {
	p := &sigParser{s: s}
	params, err := p.parseFormalTypeParams()
	if err != nil {
		return nil, nil, nil, err
	}
	super, err := p.parsePart()
	if err != nil {
		return nil, nil, nil, err
	}
	var interfaces []Signature
	for !p.eof() {
		iface, err := p.parsePart()
		if err != nil {
			return nil, nil, nil, err
		}
		interfaces = append(interfaces, iface)
	}
	return params, super, interfaces, nil
}
