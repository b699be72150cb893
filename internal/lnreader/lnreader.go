package lnreader

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LineNumberReader reads newline terminated records of any length and
// counts them. CR LF endings are accepted.
type LineNumberReader struct {
	r         *bufio.Reader
	rawBuffer []byte
	NumLine   int
}

func NewLineNumberReader(r io.Reader) *LineNumberReader {
	return &LineNumberReader{
		r: bufio.NewReader(r),
	}
}

// ReadLine returns the next line without its terminator. The returned slice
// is only valid until the next call. io.EOF is returned once no data is left.
func (r *LineNumberReader) ReadLine() ([]byte, error) {
	line, err := r.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		r.rawBuffer = append(r.rawBuffer[:0], line...)
		for err == bufio.ErrBufferFull {
			line, err = r.r.ReadSlice('\n')
			r.rawBuffer = append(r.rawBuffer, line...)
		}
		line = r.rawBuffer
	}
	switch {
	case err == io.EOF && len(line) > 0:
		err = nil
	case err == nil:
		line = line[:len(line)-1]
	}
	if err != nil {
		return nil, err
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if r.NumLine == 0 {
		line = bytes.TrimPrefix(line, utf8BOM)
	}
	r.NumLine++
	return line, nil
}

func IsEmptyLine(l []byte) bool {
	for _, c := range l {
		if c != ' ' && c != '\n' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}
