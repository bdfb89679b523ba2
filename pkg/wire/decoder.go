package wire

// decodeState tracks progress through a single frame.
type decodeState int

const (
	seekHeader decodeState = iota
	readFunc               // simple: function byte
	readLength             // simple: payload length byte
	readCount              // vendor: count byte (function + payload)
	readVendorFunc
	readData
	readChecksum // simple only
)

// Decoder reconstructs frames from a raw byte stream. It is a streaming
// state machine: feed it one byte or a burst at a time, in whatever chunks
// the transport delivers. Malformed input never produces a frame; the
// decoder discards what it has and rescans for the next header.
//
// With Protocol Auto the format of each frame is picked by its first header
// byte, so a connection can interleave both formats.
type Decoder struct {
	proto  Protocol // configured
	active Protocol // format of the frame currently being decoded

	state   decodeState
	headers int // consecutive header bytes matched so far
	fn      byte
	need    int
	sum     uint // running checksum, simple protocol
	n       int
	buf     [MaxPayload]byte

	// Counters for diagnostics; framing errors are recovered locally and
	// never surfaced as Go errors.
	Frames        uint64
	FramingErrors uint64
}

// NewDecoder returns a decoder for the given protocol.
func NewDecoder(p Protocol) *Decoder {
	return &Decoder{proto: p}
}

// Protocol returns the configured protocol.
func (d *Decoder) Protocol() Protocol {
	return d.proto
}

// Reset discards all partial-frame state and returns to header scanning.
func (d *Decoder) Reset() {
	d.state = seekHeader
	d.headers = 0
	d.n = 0
	d.sum = 0
}

func (d *Decoder) fail() {
	d.FramingErrors++
	d.Reset()
}

// Feed consumes a burst of bytes, calling emit once per completed frame.
func (d *Decoder) Feed(p []byte, emit func(*Frame)) {
	for _, b := range p {
		if f, ok := d.FeedByte(b); ok {
			emit(&f)
		}
	}
}

// FeedByte advances the state machine by a single byte. It returns a frame
// and true when that byte completed a valid frame.
func (d *Decoder) FeedByte(b byte) (Frame, bool) {
	switch d.state {
	case seekHeader:
		d.scanHeader(b)

	case readFunc:
		d.fn = b
		d.sum = uint(b)
		d.state = readLength

	case readLength:
		if int(b) > MaxPayload {
			d.fail()
			break
		}
		d.need = int(b)
		d.sum += uint(b)
		d.n = 0
		if d.need == 0 {
			d.state = readChecksum
		} else {
			d.state = readData
		}

	case readCount:
		// Count covers the function byte plus the payload.
		if b == 0 || int(b)-1 > MaxPayload {
			d.fail()
			break
		}
		d.need = int(b) - 1
		d.state = readVendorFunc

	case readVendorFunc:
		if b == 0 {
			d.fail()
			break
		}
		d.fn = b
		d.n = 0
		if d.need == 0 {
			return d.emit(), true
		}
		d.state = readData

	case readData:
		d.buf[d.n] = b
		d.sum += uint(b)
		d.n++
		if d.n == d.need {
			if d.active == Simple {
				d.state = readChecksum
			} else {
				return d.emit(), true
			}
		}

	case readChecksum:
		if b != byte(^d.sum) {
			d.fail()
			break
		}
		return d.emit(), true
	}

	return Frame{}, false
}

// scanHeader matches the two-byte header sequence. A mismatch resets the
// match counter, not the whole decoder, so a header byte sitting inside a
// corrupted frame's data is absorbed correctly.
func (d *Decoder) scanHeader(b byte) {
	if d.headers == 0 {
		d.startHeader(b)
		return
	}

	switch d.active {
	case Simple:
		if b == SimpleHeader2 {
			d.headers = 0
			d.state = readFunc
			return
		}
	case Vendor:
		if b == VendorHeader {
			d.headers = 0
			d.state = readCount
			return
		}
	}

	// Mismatch: the byte may itself start a new header.
	d.headers = 0
	d.startHeader(b)
}

func (d *Decoder) startHeader(b byte) {
	switch {
	case b == SimpleHeader1 && d.proto != Vendor:
		d.active = Simple
		d.headers = 1
	case b == VendorHeader && d.proto != Simple:
		d.active = Vendor
		d.headers = 1
	}
}

func (d *Decoder) emit() Frame {
	f := Frame{Protocol: d.active, Func: d.fn, n: d.n}
	copy(f.data[:], d.buf[:d.n])
	d.Frames++
	d.Reset()
	return f
}
