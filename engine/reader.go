package engine

import "io"

// Reader consumes tokens from a Lexer and produces one S-expression per
// call to ReadOne, per the grammar:
//
//	datum   := atom | list | quoted
//	atom    := number | string | boolean | symbol
//	list    := '(' datum* ')' | '(' datum+ '.' datum ')'
//	quoted  := "'" datum        ; expands to (quote datum)
//
// The quote/quasiquote/unquote rewrites happen here, at read time: 'e
// becomes (quote e) before the evaluator ever sees it.
type Reader struct {
	lex     *Lexer
	peeked  *Token
	peekErr error
}

// NewReader creates a Reader pulling tokens from lex.
func NewReader(lex *Lexer) *Reader {
	return &Reader{lex: lex}
}

// ErrEOF is returned by ReadOne when the input ends before a datum starts
// (a clean end of input, as opposed to a truncated one mid-datum).
var ErrEOF = io.EOF

// ErrIncomplete is returned when the input ends in the middle of a datum: an
// open list, or a quote-tick with nothing after it. It is distinct from a
// genuine syntax error (a stray ")") so that an interactive front end can
// tell "feed me another line" apart from "this input is malformed". A
// caller with no more input to offer (end of a loaded file) should treat
// ErrIncomplete the same as any other ReadError.
var ErrIncomplete = NewError(ReadError, "unexpected end of input")

func (r *Reader) peek() (Token, error) {
	if r.peeked == nil {
		tok, err := r.lex.Next()
		r.peeked = &tok
		r.peekErr = err
	}
	return *r.peeked, r.peekErr
}

func (r *Reader) pop() (Token, error) {
	tok, err := r.peek()
	r.peeked = nil
	r.peekErr = nil
	return tok, err
}

// ReadOne reads and returns the next complete S-expression. It returns
// ErrEOF if the input is exhausted before any token of a new datum is seen.
func (r *Reader) ReadOne() (Any, error) {
	tok, err := r.pop()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokEOF:
		return nil, ErrEOF
	case TokLParen:
		return r.readList(tok.Pos)
	case TokRParen:
		return nil, NewReadError(tok.Pos, "unexpected )")
	case TokQuote:
		return r.readWrapped(SymQuote)
	case TokQuasiquote:
		return r.readWrapped(SymQuasiquote)
	case TokUnquote:
		return r.readWrapped(SymUnquote)
	case TokDot:
		return nil, NewReadError(tok.Pos, "unexpected .")
	case TokNumber:
		if tok.IsReal {
			return Real(tok.Real), nil
		}
		return Integer(tok.Int), nil
	case TokString:
		return String(tok.Text), nil
	case TokBool:
		return tok.Bool, nil
	case TokSymbol:
		return Intern(tok.Text), nil
	default:
		return nil, NewReadError(tok.Pos, "unexpected token")
	}
}

func (r *Reader) readWrapped(sym *Symbol) (Any, error) {
	inner, err := r.ReadOne()
	if err != nil {
		if err == ErrEOF {
			return nil, ErrIncomplete
		}
		return nil, err
	}
	return &Cell{sym, &Cell{inner, Nil}}, nil
}

// readList reads the remainder of a list or dotted pair after the opening
// '(' has already been consumed.
func (r *Reader) readList(open Position) (Any, error) {
	head := &Cell{Nil, Nil}
	tail := head
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokEOF {
			return nil, ErrIncomplete
		}
		if tok.Kind == TokRParen {
			r.pop()
			return head.Cdr, nil
		}
		if tok.Kind == TokDot {
			r.pop()
			if tail == head {
				return nil, NewReadError(tok.Pos, "unexpected .")
			}
			rest, err := r.ReadOne()
			if err != nil {
				if err == ErrEOF {
					return nil, ErrIncomplete
				}
				return nil, err
			}
			closeTok, err := r.pop()
			if err != nil {
				return nil, err
			}
			if closeTok.Kind == TokEOF {
				return nil, ErrIncomplete
			}
			if closeTok.Kind != TokRParen {
				return nil, NewReadError(closeTok.Pos, ") is expected after dotted tail")
			}
			tail.Cdr = rest
			return head.Cdr, nil
		}
		elem, err := r.ReadOne()
		if err != nil {
			return nil, err
		}
		next := &Cell{elem, Nil}
		tail.Cdr = next
		tail = next
	}
}
