// ABOUTME: Encoder interface definition
// ABOUTME: Shared by the PCM and Opus encoders behind file outputs
package encode

// Encoder turns interleaved int32 samples (24-bit range) into codec bytes.
// Opus encoders only accept whole 20ms frames; PCM takes any length.
type Encoder interface {
	Encode(samples []int32) ([]byte, error)
	Close() error
}
