package control

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/calebcase/oops"
)

// Decoder reads control blocks one at a time.
type Decoder interface {
	Next() (ok bool)
	Err() (err error)

	Type() Type
	Consumed() uint64

	Size() (_ uint64, err error)
	Data() (data []byte, err error)
}

// counter tracks how many bytes have been taken from the stream.
type counter struct {
	r io.Reader
	n uint64
}

func (c *counter) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.n += uint64(n)

	return n, err
}

type decoder struct {
	in     *counter
	seeker io.Seeker

	head byte
	typ  Type

	// size is the total data length of the current block and pending the
	// part of it still in the stream.
	size    uint64
	pending uint64
	data    []byte

	err error
}

// NewDecoder returns a decoder reading from r. If r is also an io.Seeker,
// data that is never read is skipped by seeking.
func NewDecoder(r io.Reader) Decoder {
	d := &decoder{
		in: &counter{r: r},
	}

	d.seeker, _ = r.(io.Seeker)

	return d
}

func (d *decoder) discard(n uint64) (err error) {
	if d.seeker != nil {
		_, err = d.seeker.Seek(int64(n), io.SeekCurrent)
		if err != nil {
			return oops.Trace(err)
		}

		d.in.n += n

		return nil
	}

	_, err = io.CopyN(io.Discard, d.in, int64(n))
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

// header reads the size field that follows the control byte, if any, and
// returns the data length of the block.
func (d *decoder) header() (size uint64, err error) {
	switch d.typ {
	case Data:
		return 1, nil
	case Data1:
		return 2, nil
	case Data2:
		return 3, nil
	case DataSize:
		return uint64(d.head&d.typ.Mask) + 1, nil
	case DataSizeSize:
		n := int(d.head&d.typ.Mask) + 1

		var buf [8]byte
		_, err = io.ReadFull(d.in, buf[8-n:])
		if err != nil {
			return 0, oops.Trace(err)
		}

		size = binary.BigEndian.Uint64(buf[:])
		if size >= math.MaxInt64 {
			return 0, Error.New("block too large: size field %d", size)
		}

		return size + 1, nil
	}

	return 0, nil
}

// Next advances to the next block, skipping any data of the current block
// that was not read. It returns false at the end of the stream or on error;
// check Err to distinguish them.
func (d *decoder) Next() (ok bool) {
	if d.err != nil {
		return false
	}

	if d.pending > 0 {
		d.err = d.discard(d.pending)
		if d.err != nil {
			return false
		}
	}

	d.head, d.typ = 0, Unknown
	d.size, d.pending, d.data = 0, 0, nil

	var head [1]byte

	_, err := io.ReadFull(d.in, head[:])
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		d.err = oops.Trace(err)

		return false
	}

	typ, ok := Types.Match(head[0])
	if !ok {
		d.err = Error.New("unexpected byte: %08b", head[0])

		return false
	}

	d.head, d.typ = head[0], typ

	d.size, d.err = d.header()
	if d.err != nil {
		return false
	}

	switch typ {
	case Data1, Data2:
		d.pending = d.size - 1
	case DataSize, DataSizeSize:
		d.pending = d.size
	}

	return true
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Type() Type {
	return d.typ
}

func (d *decoder) Consumed() uint64 {
	return d.in.n
}

// Size returns the number of data bytes in the current block.
func (d *decoder) Size() (_ uint64, err error) {
	if !d.typ.IsData() {
		return 0, oops.Trace(ErrInvalidOperation)
	}

	return d.size, nil
}

// Data returns the data bytes of the current block. Blocks without data
// return ErrInvalidOperation. Repeated calls return the same slice.
func (d *decoder) Data() (data []byte, err error) {
	if !d.typ.IsData() {
		return nil, oops.Trace(ErrInvalidOperation)
	}

	if d.data != nil {
		return d.data, nil
	}

	if d.err != nil {
		return nil, d.err
	}

	var buf []byte

	switch d.typ {
	case Data, Data1, Data2:
		buf = append(buf, d.head&d.typ.Mask)
	}

	// Grow with the data that arrives, not with the declared size.
	rest := d.size - uint64(len(buf))

	tail, err := io.ReadAll(io.LimitReader(d.in, int64(rest)))
	if err != nil {
		d.err = oops.Trace(err)

		return nil, d.err
	}

	if uint64(len(tail)) != rest {
		d.err = oops.Trace(io.ErrUnexpectedEOF)

		return nil, d.err
	}

	buf = append(buf, tail...)

	d.pending = 0
	d.data = buf

	return d.data, nil
}
