package lexer

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"nut/internal/source"
)

// Cursor walks the bytes of one file. Off never passes Limit.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive; len(File.Content)
}

// NewCursor positions a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// PeekAt возвращает байт на n позиций впереди, 0 за пределами файла.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	if c.EOF() {
		return s == ""
	}
	return bytes.HasPrefix(c.File.Content[c.Off:c.Limit], []byte(s))
}

// Bump consumes one byte and returns it; at EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// EatPrefix consumes s if the unread input starts with it.
func (c *Cursor) EatPrefix(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Off += uint32(len(s))
	return true
}

// Mark: сохранённая позиция, от которой строится Span фрагмента.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SkipToEnd() { c.Off = c.Limit }
