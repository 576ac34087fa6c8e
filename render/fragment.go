package render

import (
	"bytes"
	"strings"
	"sync"
)

// Declaration is one exported top-level declaration emitted before the
// function, such as a content-type map or the response union alias.
type Declaration struct {
	Name string
	Code string
}

// Signature is the exported function signature.
type Signature struct {
	Name string
	// Generics are the type parameter declarations, empty when no
	// content-type map exists.
	Generics []string
	// Params are the parameter declarations in order.
	Params []string
	// Return is the awaited return type.
	Return string
}

// Fragment is the structured output for one operation. It is serialized to
// text only by String.
type Fragment struct {
	OperationID  string
	Declarations []Declaration
	// Comment is the doc comment lines without comment markers.
	Comment []string
	Signature Signature
	// Body holds the statements of the function, already indented relative
	// to the function.
	Body []string
	// TypeImports are the schema type names the fragment refers to.
	TypeImports []string
	// ValidatorImports are the validator constants the fragment calls.
	ValidatorImports []string
}

// String serializes the fragment in fixed order: declarations, comment,
// signature, body.
func (f *Fragment) String() string {
	buf := getBuffer()
	defer putBuffer(buf)

	for _, d := range f.Declarations {
		buf.WriteString(d.Code)
		buf.WriteString("\n\n")
	}
	writeComment(buf, f.Comment)
	writeSignature(buf, f.Signature)
	for _, stmt := range f.Body {
		if stmt == "" {
			buf.WriteByte('\n')
			continue
		}
		buf.WriteString(indent)
		buf.WriteString(stmt)
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.String()
}

const indent = "  "

func writeComment(buf *bytes.Buffer, lines []string) {
	if len(lines) == 0 {
		return
	}
	buf.WriteString("/**\n")
	for _, l := range lines {
		if l == "" {
			buf.WriteString(" *\n")
			continue
		}
		buf.WriteString(" * ")
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	buf.WriteString(" */\n")
}

func writeSignature(buf *bytes.Buffer, sig Signature) {
	buf.WriteString("export async function ")
	buf.WriteString(sig.Name)
	if len(sig.Generics) > 0 {
		buf.WriteByte('<')
		buf.WriteString(strings.Join(sig.Generics, ", "))
		buf.WriteByte('>')
	}
	buf.WriteString("(\n")
	for _, p := range sig.Params {
		buf.WriteString(indent)
		buf.WriteString(p)
		buf.WriteString(",\n")
	}
	buf.WriteString("): Promise<")
	buf.WriteString(sig.Return)
	buf.WriteString("> {\n")
}

// Buffers above this size are dropped instead of pooled.
const maxPooledBuffer = 1 << 20

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4*1024))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}
