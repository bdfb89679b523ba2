package wire

import "encoding/binary"

// GyroSample is one IMU reading streamed by the hand: raw accelerometer and
// gyroscope axes as signed 16-bit values.
type GyroSample struct {
	AX, AY, AZ int16
	GX, GY, GZ int16
}

// ParseGyroData decodes the payload of a CmdGyroData frame: six little
// endian int16 values, accel xyz then gyro xyz.
func ParseGyroData(payload []byte) (GyroSample, bool) {
	if len(payload) < 12 {
		return GyroSample{}, false
	}
	v := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(payload[i : i+2]))
	}
	return GyroSample{
		AX: v(0), AY: v(2), AZ: v(4),
		GX: v(6), GY: v(8), GZ: v(10),
	}, true
}

// AppendGyroData appends a vendor-protocol gyro telemetry frame.
func AppendGyroData(dst []byte, s GyroSample) []byte {
	var data [12]byte
	for i, v := range [6]int16{s.AX, s.AY, s.AZ, s.GX, s.GY, s.GZ} {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	}
	return appendVendor(dst, CmdGyroData, data[:])
}
