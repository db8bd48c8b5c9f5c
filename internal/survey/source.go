package survey

import (
	"bufio"
	"bytes"
	"io"
)

// utf8BOM is commonly prepended by spreadsheet exports on Windows.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// countingReader tracks bytes consumed from the underlying source.
type countingReader struct {
	reader    io.Reader
	bytesRead int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}

// wrapSource counts bytes read from r and drops a leading UTF-8 BOM.
// The returned counter reflects raw bytes, BOM included. Short input is not
// an error here; only a failing read is.
func wrapSource(r io.Reader) (io.Reader, *countingReader, error) {
	counter := &countingReader{reader: r}
	br := bufio.NewReader(counter)

	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return nil, counter, err
	}
	if bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br, counter, nil
}
