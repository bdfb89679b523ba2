// Package myogen drives a 6-servo robotic hand over a byte-oriented serial
// transport (USB-serial or a BLE-to-serial bridge).
//
// Upstream producers (hand-pose vision models, LLM finger-curl predictors,
// CLIs) send framed commands in one of two wire formats; the control core
// reconstructs frames from the raw byte stream, translates them into
// per-channel target angles, clamps them to the hand's mechanical limits
// and eases the servos toward them at a fixed 40 Hz rate.
//
// # Usage
//
// First, run setup to detect the hand's serial port:
//
//	myogen setup
//
// Then start the control loop:
//
//	myogen run
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/myogen: CLI with setup, run, send and monitor commands
//   - pkg/wire: framing protocols, encoders and the streaming decoder
//   - pkg/hand: channel model, safety limits, motion smoothing and the
//     control loop
package myogen
