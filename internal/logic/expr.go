package logic

import (
	"strings"
	"unicode"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

// State is the view of a single player's progression the evaluator needs
type State interface {
	Has(bit int) bool
	Grubs() int
	Essence() int
}

type node interface {
	eval(state State) bool
}

type constNode bool

func (n constNode) eval(State) bool { return bool(n) }

type bitNode int

func (n bitNode) eval(state State) bool { return state.Has(int(n)) }

type andNode []node

func (n andNode) eval(state State) bool {
	for _, child := range n {
		if !child.eval(state) {
			return false
		}
	}
	return true
}

type orNode []node

func (n orNode) eval(state State) bool {
	for _, child := range n {
		if child.eval(state) {
			return true
		}
	}
	return false
}

// requirement is a compiled logic expression plus the progression names it
// mentions
type requirement struct {
	root  node
	names []string
}

// parser for requirement strings: `+` is and, `|` is or, parentheses group,
// and binds tighter than or. ANY/TRUE and NONE/FALSE are constants.
type parser struct {
	tokens []string
	pos    int
	bit    func(name string) (int, bool)
	names  []string
}

func compile(text string, bit func(string) (int, bool)) (*requirement, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return &requirement{root: constNode(true)}, nil
	}

	p := &parser{tokens: tokens, bit: bit}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, errors.InvalidArgumentf("unexpected %q in %q", p.tokens[p.pos], text)
	}

	return &requirement{root: root, names: p.names}, nil
}

func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '+' || r == '|' || r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func (p *parser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) parseOr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	nodes := orNode{first}
	for p.peek() == "|" {
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, next)
	}
	if len(nodes) == 1 {
		return first, nil
	}
	return nodes, nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	nodes := andNode{first}
	for p.peek() == "+" {
		p.pos++
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, next)
	}
	if len(nodes) == 1 {
		return first, nil
	}
	return nodes, nil
}

func (p *parser) parseAtom() (node, error) {
	token := p.peek()
	switch token {
	case "":
		return nil, errors.InvalidArgument("unexpected end of expression")
	case "+", "|", ")":
		return nil, errors.InvalidArgumentf("unexpected %q", token)
	case "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, errors.InvalidArgument("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	}

	p.pos++
	switch token {
	case "ANY", "TRUE":
		return constNode(true), nil
	case "NONE", "FALSE":
		return constNode(false), nil
	}

	bit, ok := p.bit(token)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown progression %q", token)
	}
	p.names = append(p.names, token)
	return bitNode(bit), nil
}
