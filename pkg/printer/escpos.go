package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// codePagePC860 is the ESC t table number of PC860 (Portuguese).
const codePagePC860 = 3

// DefaultWidth is the character width of 58mm paper.
const DefaultWidth = 32

// Document builds an ESC/POS byte stream for thermal printers. Text is
// transcoded to PC860 so accented Portuguese prints correctly; runes the
// code page lacks print as '?'.
type Document struct {
	buf   bytes.Buffer
	width int
	enc   *encoding.Encoder
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{
		width: charWidth,
		enc:   encoding.ReplaceUnsupported(charmap.CodePage860.NewEncoder()),
	}
	d.Init()
	return d
}

// Width returns the line width in characters.
func (d *Document) Width() int {
	return d.width
}

// Init resets the printer (ESC @) and selects the PC860 table (ESC t).
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	d.buf.Write([]byte{ESC, 't', codePagePC860})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.write(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.Write(bytes.Repeat([]byte{char}, d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Entrada:              R$ 100.00"
func (d *Document) KeyValue(key, value string) *Document {
	d.write(key)
	d.buf.WriteString(strings.Repeat(" ", d.gap(key, value)))
	d.write(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints a priced line with the amount right-aligned.
// Example: "Armação               R$ 200.00"
func (d *Document) ItemLine(name, amount string) *Document {
	return d.KeyValue(name, amount)
}

// Detail prints an indented sub-line under an item: "  Marca: Ray-Ban".
func (d *Document) Detail(label, value string) *Document {
	return d.TextF("  %s: %s", label, value)
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

func (d *Document) write(s string) {
	out, err := d.enc.String(s)
	if err != nil {
		out = s
	}
	d.buf.WriteString(out)
}

// gap is the padding between a key and a right-aligned value, measured in
// characters rather than bytes.
func (d *Document) gap(key, value string) int {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	return spaces
}
