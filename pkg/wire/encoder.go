package wire

import "encoding/binary"

// Encoders for the host side of both protocols. Each appends one complete
// frame to dst and returns the extended slice, so a caller can batch
// several frames into a single transport write.

func appendSimple(dst []byte, fn byte, data []byte) []byte {
	dst = append(dst, SimpleHeader1, SimpleHeader2, fn, byte(len(data)))
	dst = append(dst, data...)
	return append(dst, Checksum(fn, data))
}

func appendVendor(dst []byte, fn byte, data []byte) []byte {
	dst = append(dst, VendorHeader, VendorHeader, byte(len(data)+1), fn)
	return append(dst, data...)
}

// AppendSetServo appends a simple-protocol servo-set frame carrying six
// angles in degrees [0,180].
func AppendSetServo(dst []byte, angles [6]byte) []byte {
	return appendSimple(dst, FuncSetServo, angles[:])
}

// AppendSetBuzzer appends a simple-protocol buzzer frame.
func AppendSetBuzzer(dst []byte, freqHz, durationMS uint16) []byte {
	var data [4]byte
	binary.LittleEndian.PutUint16(data[0:2], freqHz)
	binary.LittleEndian.PutUint16(data[2:4], durationMS)
	return appendSimple(dst, FuncSetBuzzer, data[:])
}

// AppendSetRGB appends a simple-protocol RGB LED frame.
func AppendSetRGB(dst []byte, r, g, b byte) []byte {
	return appendSimple(dst, FuncSetRGB, []byte{r, g, b})
}

// AppendReadAngle appends a simple-protocol request for the current servo
// angles. The controller answers with a FuncReadAngle frame whose payload
// is the six actual angles.
func AppendReadAngle(dst []byte) []byte {
	return appendSimple(dst, FuncReadAngle, nil)
}

// AppendAngleReply appends the controller's answer to a read-angle
// request: a simple-protocol frame whose payload is the six current actual
// angles in degrees.
func AppendAngleReply(dst []byte, angles [6]byte) []byte {
	return appendSimple(dst, FuncReadAngle, angles[:])
}

// ServoTarget is one (servo ID, raw position) pair in a vendor servo-move
// frame. IDs are 1-indexed on the wire.
type ServoTarget struct {
	ID       byte
	Position uint16
}

// AppendServoMove appends a vendor-protocol servo-move frame. moveMS is the
// time the servos should take to reach their targets.
func AppendServoMove(dst []byte, moveMS uint16, targets []ServoTarget) []byte {
	data := make([]byte, 0, 3+3*len(targets))
	data = append(data, byte(len(targets)))
	data = binary.LittleEndian.AppendUint16(data, moveMS)
	for _, t := range targets {
		data = append(data, t.ID)
		data = binary.LittleEndian.AppendUint16(data, t.Position)
	}
	return appendVendor(dst, CmdServoMove, data)
}

// AppendGyroStream appends a vendor-protocol gyro stream start or stop
// request.
func AppendGyroStream(dst []byte, on bool) []byte {
	fn := byte(CmdStopGyroStream)
	if on {
		fn = CmdStartGyroStream
	}
	return appendVendor(dst, fn, nil)
}
