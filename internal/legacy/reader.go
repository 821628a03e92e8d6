package legacy

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// reader walks a legacy file front to back. Every read that runs past the
// end returns an error wrapping io.ErrUnexpectedEOF.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) take(n int, what string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("offset %d: reading %s (%d bytes): %w", r.off, what, n, io.ErrUnexpectedEOF)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8(what string) (byte, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// i32 reads a big-endian signed 32-bit integer.
func (r *reader) i32(what string) (int32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) coord(what string) (geom.Coord, error) {
	x, err := r.i32(what)
	if err != nil {
		return geom.Coord{}, err
	}
	y, err := r.i32(what)
	if err != nil {
		return geom.Coord{}, err
	}
	return geom.Coord{X: x, Y: y}, nil
}

// count reads a section element count. minSize is the smallest encoding of
// one element; counts that cannot fit in the rest of the file are rejected
// before anything is allocated for them.
func (r *reader) count(section string, minSize int) (int, error) {
	n, err := r.i32(section + " count")
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &CountError{Section: section, Count: n}
	}
	if int64(n)*int64(minSize) > int64(r.remaining()) {
		return 0, &CountError{Section: section, Count: n, Truncated: true}
	}
	return int(n), nil
}

func (r *reader) magic(want string) error {
	at := r.off
	b, err := r.take(len(want), "marker "+want)
	if err != nil {
		return err
	}
	if string(b) != want {
		return &MagicError{Offset: at, Want: want, Got: string(b)}
	}
	return nil
}

// sjis reads a u8 length followed by that many Shift-JIS bytes.
func (r *reader) sjis(what string) (string, error) {
	n, err := r.u8(what + " length")
	if err != nil {
		return "", err
	}
	raw, err := r.take(int(n), what)
	if err != nil {
		return "", err
	}
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("offset %d: decoding %s: %w", r.off-int(n), what, err)
	}
	return string(s), nil
}
