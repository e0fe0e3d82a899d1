package alsparse

// Version is the semantic version of the alsparse library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
