package version

// Version is the current version of the stock-analysis tool.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/meridian-lab/stock-analysis/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "v1.2.0"

// GetVersion returns the current version of the tool.
func GetVersion() string {
	return Version
}
