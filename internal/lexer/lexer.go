// Package lexer scans raw caption bytes into the token stream of the
// Animated Text wire format.
//
// The scan is single-pass with no backtracking. The lexer itself never
// fails: it is purely mechanical character classification, and every
// byte of input belongs to exactly one token. Bracket matching is the
// directive parser's business, not ours.
package lexer

import (
	"antext/internal/source"
	"antext/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		look:   nil,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) Если EOF → вернуть EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	// 3) Посмотреть текущий байт и выбрать сканер
	switch lx.cursor.Peek() {
	case '[':
		return lx.scanMark(token.LBracket)
	case ']':
		return lx.scanMark(token.RBracket)
	case '/':
		return lx.scanMark(token.Slash)
	case '\n':
		return lx.scanMark(token.Newline)
	default:
		return lx.scanText()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan возвращает пустой span на текущей позиции курсора.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File возвращает сканируемый файл.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// scanMark потребляет один зарезервированный байт.
func (lx *Lexer) scanMark(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
}

// scanText потребляет максимальный непрерывный прогон литеральных байтов.
func (lx *Lexer) scanText() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '[', ']', '/', '\n':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Text, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Text, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
