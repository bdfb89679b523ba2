// Package wire implements the two serial framing protocols spoken by the
// uHand hardware: the simple checksummed protocol used over USB-serial, and
// the Hiwonder vendor protocol used by the BLE-to-serial bridge.
package wire

// MaxPayload bounds the data field of a single frame. Declared lengths
// beyond this are framing errors, never buffer growth.
const MaxPayload = 64

// Simple protocol header bytes and function codes.
const (
	SimpleHeader1 = 0xAA
	SimpleHeader2 = 0x77

	FuncSetServo  = 0x01
	FuncSetBuzzer = 0x02
	FuncSetRGB    = 0x03
	FuncReadAngle = 0x11
)

// Vendor (Hiwonder) protocol header byte and function codes.
const (
	VendorHeader = 0x55

	CmdServoMove        = 0x03
	CmdActionGroupRun   = 0x06
	CmdActionGroupStop  = 0x07
	CmdActionGroupSpeed = 0x0B
	CmdGetBatteryVolts  = 0x0F
	CmdStartGyroStream  = 0x11
	CmdStopGyroStream   = 0x12
	CmdGyroData         = 0x13
)

// Protocol selects which framing a Decoder expects. Auto picks per frame
// based on the first header byte observed.
type Protocol int

const (
	Auto Protocol = iota
	Simple
	Vendor
)

func (p Protocol) String() string {
	switch p {
	case Simple:
		return "simple"
	case Vendor:
		return "vendor"
	default:
		return "auto"
	}
}

// ParseProtocol maps a config string to a Protocol.
func ParseProtocol(s string) (Protocol, bool) {
	switch s {
	case "", "auto":
		return Auto, true
	case "simple":
		return Simple, true
	case "vendor":
		return Vendor, true
	}
	return Auto, false
}

// Frame is one complete, validated protocol message. It is built by the
// Decoder once a whole packet has been seen and is meant to be consumed
// immediately; the payload lives in a fixed array so no allocation happens
// on the receive path.
type Frame struct {
	Protocol Protocol
	Func     byte
	n        int
	data     [MaxPayload]byte
}

// Payload returns the frame's data bytes.
func (f *Frame) Payload() []byte {
	return f.data[:f.n]
}
