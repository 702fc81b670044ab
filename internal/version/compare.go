package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersionCompatibility checks if the tool version and a config file's
// declared version are compatible. Returns nil if compatible, error with
// details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
func CheckVersionCompatibility(toolVersion, configVersion string) error {
	// Strip 'v' prefix if present for consistency
	toolVersion = strings.TrimPrefix(toolVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	// Skip version check for "main" (development builds)
	if toolVersion == "main" || configVersion == "main" {
		return nil
	}

	toolSemver, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version '%s': %w", toolVersion, err)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", configVersion, err)
	}

	if toolSemver.Major() != configSemver.Major() {
		return fmt.Errorf("major version mismatch: tool is %d.x.x but config targets %d.x.x",
			toolSemver.Major(), configSemver.Major())
	}

	if toolSemver.Minor() != configSemver.Minor() {
		return fmt.Errorf("minor version mismatch: tool is %d.%d.x but config targets %d.%d.x",
			toolSemver.Major(), toolSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
