package survey

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestWrapSource(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b,c")...),
			expected: "a,b,c",
		},
		{
			name:     "file without BOM",
			input:    []byte("a,b,c"),
			expected: "a,b,c",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM kept",
			input:    []byte{0xEF, 0xBB, 'x'},
			expected: string([]byte{0xEF, 0xBB, 'x'}),
		},
		{
			name:     "shorter than BOM",
			input:    []byte("a"),
			expected: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, counter, err := wrapSource(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			result, err := io.ReadAll(src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
			if counter.bytesRead != int64(len(tt.input)) {
				t.Errorf("bytesRead = %d, want %d", counter.bytesRead, len(tt.input))
			}
		})
	}
}

func TestWrapSource_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, _, err := wrapSource(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
