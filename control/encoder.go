package control

import (
	"encoding/binary"
	"io"
	"math/bits"
)

// Encoder writes control blocks.
type Encoder interface {
	Data(data []byte) (err error)
	Empty() (err error)
	Null() (err error)
}

type encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder returns an encoder writing to w. Each block is written with a
// single call to w.Write.
func NewEncoder(w io.Writer) Encoder {
	return &encoder{
		w: w,
	}
}

// Frame appends the smallest block holding data to dst.
func Frame(dst, data []byte) ([]byte, error) {
	size := len(data)
	if size == 0 {
		return dst, Error.New("invalid: size=0")
	}

	first := data[0]

	switch {
	case size == 1 && first&Data.Mask == first:
		return append(dst, Data.Prefix|first), nil
	case size == 2 && first&Data1.Mask == first:
		return append(append(dst, Data1.Prefix|first), data[1:]...), nil
	case size == 3 && first&Data2.Mask == first:
		return append(append(dst, Data2.Prefix|first), data[1:]...), nil
	case size <= 64:
		return append(append(dst, DataSize.Prefix|byte(size-1)), data...), nil
	}

	var sizeBytes [8]byte
	binary.BigEndian.PutUint64(sizeBytes[:], uint64(size-1))

	n := (bits.Len64(uint64(size-1)) + 7) / 8

	dst = append(dst, DataSizeSize.Prefix|byte(n-1))
	dst = append(dst, sizeBytes[8-n:]...)

	return append(dst, data...), nil
}

func (e *encoder) write(block []byte) (err error) {
	_, err = e.w.Write(block)
	if err != nil {
		return Error.Wrap(err)
	}

	return nil
}

// Data writes data using the smallest block that can hold it. Zero length
// data must be written with Empty.
func (e *encoder) Data(data []byte) (err error) {
	e.buf, err = Frame(e.buf[:0], data)
	if err != nil {
		return err
	}

	return e.write(e.buf)
}

func (e *encoder) Empty() (err error) {
	return e.write([]byte{Empty.Prefix})
}

func (e *encoder) Null() (err error) {
	return e.write([]byte{Null.Prefix})
}
