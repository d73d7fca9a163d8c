package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"strux/log"
)

// Parser consumes the token stream one token at a time (single-token
// lookahead) and builds a Document. Constant definitions are resolved
// eagerly into the session's ConstTable as they are parsed, so every value
// placed into the table or the document is fully resolved at insertion.
type Parser struct {
	lex    *Lexer
	tok    Token
	logger log.Logger
}

// Option configures parser behavior.
type Option func(*Parser)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a parser reading from the given lexer.
func NewParser(lex *Lexer, opts ...Option) *Parser {
	p := &Parser{lex: lex, tok: lex.Next()}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// eat consumes the current token if it has the expected kind, or returns a
// SyntaxError describing the mismatch.
func (p *Parser) eat(kind Kind) error {
	if p.tok.Kind != kind {
		return syntaxErrorAt(p.tok, kind.String())
	}

	p.tok = p.lex.Next()

	return nil
}

// Parse consumes the entire token stream and returns the document.
// The constant table is created here and threaded explicitly through every
// recursive parsing call; no state is shared across parse invocations.
func (p *Parser) Parse() (*Document, error) {
	doc := NewDocument()
	consts := NewConstTable()

	for p.tok.Kind != KindEOF {
		if err := p.parseStatement(doc, consts); err != nil {
			return nil, err
		}
	}

	p.logger.Trace("parse complete",
		slog.Int("entry_count", doc.Len()),
		slog.Int("constant_count", len(consts.vals)))

	return doc, nil
}

// parseStatement parses one top-level statement:
//
//	;                       empty statement, ignored
//	name := value [;]       constant definition, bound in table and document
//	name = value [;]        document binding only
//	name struct{...}        struct literal bound directly, no operator
//	name                    bare name, bound to itself as an identifier
//	value                   bare value, stored under the synthetic BareKey
func (p *Parser) parseStatement(doc *Document, consts *ConstTable) error {
	if p.tok.Kind == KindSemicolon {
		return p.eat(KindSemicolon)
	}

	if p.tok.Kind != KindName {
		v, err := p.parseValue(consts)
		if err != nil {
			return err
		}

		doc.Set(BareKey, v)

		return nil
	}

	name := p.tok.Text
	if err := p.eat(KindName); err != nil {
		return err
	}

	switch p.tok.Kind {
	case KindDefine:
		if err := p.eat(KindDefine); err != nil {
			return err
		}

		v, err := p.parseValue(consts)
		if err != nil {
			return err
		}

		consts.Define(name, v)
		doc.Set(name, v)

		p.logger.Trace("constant defined",
			slog.String("name", name),
			slog.String("type", v.Type.String()))

		return p.eatOptionalSemicolon()

	case KindAssign:
		if err := p.eat(KindAssign); err != nil {
			return err
		}

		v, err := p.parseValue(consts)
		if err != nil {
			return err
		}

		doc.Set(name, v)

		return p.eatOptionalSemicolon()

	case KindStructStart:
		v, err := p.parseStruct(consts)
		if err != nil {
			return err
		}

		doc.Set(name, v)

		return nil

	default:
		// A bare name is a self-referential statement.
		doc.Set(name, IdentifierValue(name))

		return nil
	}
}

// eatOptionalSemicolon consumes a trailing ";" if present.
func (p *Parser) eatOptionalSemicolon() error {
	if p.tok.Kind == KindSemicolon {
		return p.eat(KindSemicolon)
	}

	return nil
}

// parseValue parses one value of any type.
func (p *Parser) parseValue(consts *ConstTable) (Value, error) {
	tok := p.tok

	switch tok.Kind {
	case KindNumber:
		if err := p.eat(KindNumber); err != nil {
			return Value{}, err
		}

		n, _ := strconv.ParseInt(tok.Text, 10, 64)

		return IntegerValue(n), nil

	case KindHex:
		if err := p.eat(KindHex); err != nil {
			return Value{}, err
		}

		n, _ := strconv.ParseInt(tok.Text[2:], 16, 64)

		return IntegerValue(n), nil

	case KindString:
		if err := p.eat(KindString); err != nil {
			return Value{}, err
		}

		return TextValue(unquote(tok.Text)), nil

	case KindTrue:
		return BooleanValue(true), p.eat(KindTrue)

	case KindFalse:
		return BooleanValue(false), p.eat(KindFalse)

	case KindName:
		if err := p.eat(KindName); err != nil {
			return Value{}, err
		}

		// Constant substitution is by value at this point in the
		// stream; a later redefinition does not change this result.
		if v, ok := consts.Lookup(tok.Text); ok {
			return v, nil
		}

		return IdentifierValue(tok.Text), nil

	case KindListStart:
		return p.parseList(consts)

	case KindStructStart:
		return p.parseStruct(consts)

	case KindChrStart:
		return p.parseChr(consts)

	case KindExpr:
		if err := p.eat(KindExpr); err != nil {
			return Value{}, err
		}

		return evalExpr(tok, consts)

	default:
		return Value{}, syntaxErrorAt(tok, "value")
	}
}

// parseList parses "(list v, v, ...)" into an ordered sequence.
// A trailing comma before the closing paren is tolerated; the closing paren
// itself is required.
func (p *Parser) parseList(consts *ConstTable) (Value, error) {
	if err := p.eat(KindListStart); err != nil {
		return Value{}, err
	}

	elems := []Value{}

	for p.tok.Kind != KindParenEnd && p.tok.Kind != KindEOF {
		v, err := p.parseValue(consts)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)

		if p.tok.Kind == KindComma {
			if err := p.eat(KindComma); err != nil {
				return Value{}, err
			}
		}
	}

	if err := p.eat(KindParenEnd); err != nil {
		return Value{}, err
	}

	return ListValue(elems...), nil
}

// parseStruct parses "struct{ name = value, ... }" into an ordered struct.
// A token that is not an identifier where a field name is expected is
// skipped silently (permissive recovery); a missing "=" after a field name
// is a syntax error; the closing brace is required.
func (p *Parser) parseStruct(consts *ConstTable) (Value, error) {
	if err := p.eat(KindStructStart); err != nil {
		return Value{}, err
	}

	st := NewStruct()

	for p.tok.Kind != KindStructEnd && p.tok.Kind != KindEOF {
		if p.tok.Kind != KindName {
			p.tok = p.lex.Next()

			continue
		}

		name := p.tok.Text
		if err := p.eat(KindName); err != nil {
			return Value{}, err
		}

		if err := p.eat(KindAssign); err != nil {
			return Value{}, err
		}

		v, err := p.parseValue(consts)
		if err != nil {
			return Value{}, err
		}

		st.Set(name, v)

		if p.tok.Kind == KindComma {
			if err := p.eat(KindComma); err != nil {
				return Value{}, err
			}
		}
	}

	if err := p.eat(KindStructEnd); err != nil {
		return Value{}, err
	}

	return StructValue(st), nil
}

// parseChr parses "chr(v)". An Integer argument produces the
// single-code-point text it denotes; any other argument degrades to the
// placeholder "?" without an error.
func (p *Parser) parseChr(consts *ConstTable) (Value, error) {
	if err := p.eat(KindChrStart); err != nil {
		return Value{}, err
	}

	arg, err := p.parseValue(consts)
	if err != nil {
		return Value{}, err
	}

	if err := p.eat(KindParenEnd); err != nil {
		return Value{}, err
	}

	if arg.Type != TypeInteger {
		return TextValue("?"), nil
	}

	return TextValue(string(rune(arg.Int))), nil
}

// unquote strips the surrounding quote characters and unescapes embedded
// \" and \' sequences. No other escape sequences are processed.
func unquote(text string) string {
	s := text[1 : len(text)-1]
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\'`, `'`)

	return s
}
