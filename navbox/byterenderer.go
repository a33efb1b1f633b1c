package navbox

import "fmt"

// ByteRenderer accumulates rendered HTML.
type ByteRenderer struct {
	buf []byte
}

// Render appends all the elements without separators.
func (br *ByteRenderer) Render(elems ...any) {
	for _, e := range elems {
		switch v := e.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		default:
			br.buf = fmt.Append(br.buf, v)
		}
	}
}

// Renderln is like Render but adds a newline at the end.
func (br *ByteRenderer) Renderln(elems ...any) {
	br.Render(elems...)
	br.buf = append(br.buf, '\n')
}

func (br *ByteRenderer) String() string {
	return string(br.buf)
}
