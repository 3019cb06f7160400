// ABOUTME: Version constants for the player binary
// ABOUTME: Reported by -version and in the startup log line
package version

const (
	Version      = "0.2.0"
	Product      = "ablplay"
	Manufacturer = "Resonate"
)
