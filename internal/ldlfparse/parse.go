package ldlfparse

import (
	"fmt"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
)

// Parse compiles the textual surface syntax in src into an ldlf.Formula.
// Grammar (highest to lowest binding):
//
//	formula   := orExpr
//	orExpr    := andExpr ('|' andExpr)*
//	andExpr   := unary ('&' unary)*
//	unary     := '!' unary | modal | primary
//	modal     := '<' regex '>' unary | '[' regex ']' unary
//	primary   := 'true' | 'false' | IDENT | '(' orExpr ')'
//
//	regex     := union
//	union     := seq ('+' seq)*
//	seq       := star (';' star)*
//	star      := regexAtom '*'*
//	regexAtom := orExpr '?' | '(' regex ')'
func Parse(src string) (ldlf.Formula, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	f, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k TokenKind) error {
	if p.cur().Kind != k {
		return p.errorf("expected %s, found %s", k, p.cur().Kind)
	}
	p.advance()
	return nil
}

func (p *parser) errorf(format string, a ...interface{}) error {
	return fmt.Errorf("ldlfparse: at position %d: %s", p.cur().Pos, fmt.Sprintf(format, a...))
}

func (p *parser) parseOr() (ldlf.Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	ops := []ldlf.Formula{left}
	for p.cur().Kind == TokenPipe {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		ops = append(ops, right)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	return ldlf.NewOr(ops...), nil
}

func (p *parser) parseAnd() (ldlf.Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	ops := []ldlf.Formula{left}
	for p.cur().Kind == TokenAmp {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		ops = append(ops, right)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	return ldlf.NewAnd(ops...), nil
}

func (p *parser) parseUnary() (ldlf.Formula, error) {
	switch p.cur().Kind {
	case TokenBang:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ldlf.NewNot(operand), nil
	case TokenLAngle:
		p.advance()
		rho, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRAngle); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ldlf.NewDiamond(rho, operand), nil
	case TokenLBracket:
		p.advance()
		rho, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ldlf.NewBox(rho, operand), nil
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (ldlf.Formula, error) {
	switch p.cur().Kind {
	case TokenTrue:
		p.advance()
		return ldlf.True, nil
	case TokenFalse:
		p.advance()
		return ldlf.False, nil
	case TokenIdent:
		tok := p.advance()
		return ldlf.NewAtom(tok.Lexeme), nil
	case TokenLParen:
		p.advance()
		f, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, p.errorf("expected a formula, found %s", p.cur().Kind)
	}
}

func (p *parser) parseRegex() (ldlf.Regex, error) {
	return p.parseRegexUnion()
}

func (p *parser) parseRegexUnion() (ldlf.Regex, error) {
	left, err := p.parseRegexSeq()
	if err != nil {
		return nil, err
	}
	ops := []ldlf.Regex{left}
	for p.cur().Kind == TokenPlus {
		p.advance()
		right, err := p.parseRegexSeq()
		if err != nil {
			return nil, err
		}
		ops = append(ops, right)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	return ldlf.NewUnion(ops...), nil
}

func (p *parser) parseRegexSeq() (ldlf.Regex, error) {
	left, err := p.parseRegexStar()
	if err != nil {
		return nil, err
	}
	ops := []ldlf.Regex{left}
	for p.cur().Kind == TokenSemi {
		p.advance()
		right, err := p.parseRegexStar()
		if err != nil {
			return nil, err
		}
		ops = append(ops, right)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	return ldlf.NewSeq(ops...), nil
}

func (p *parser) parseRegexStar() (ldlf.Regex, error) {
	atom, err := p.parseRegexAtom()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokenStar {
		p.advance()
		atom = ldlf.NewStar(atom)
	}
	return atom, nil
}

func (p *parser) parseRegexAtom() (ldlf.Regex, error) {
	if p.cur().Kind == TokenLParen {
		// Disambiguate '(' regex ')' from the propositional-test grammar
		// '(' orExpr ')' '?': both start identically, so speculatively
		// parse as a parenthesized regex and only commit to it if a '?'
		// does not immediately follow the matching ')'.
		save := p.pos
		p.advance()
		rho, err := p.parseRegex()
		if err == nil {
			if closeErr := p.expect(TokenRParen); closeErr == nil && p.cur().Kind != TokenQuestion {
				return rho, nil
			}
		}
		p.pos = save
	}

	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenQuestion); err != nil {
		return nil, err
	}
	rho, err := ldlf.NewTest(inner)
	if err != nil {
		return nil, err
	}
	return rho, nil
}
