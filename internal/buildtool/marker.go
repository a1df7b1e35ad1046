package buildtool

import (
	"os"
	"strings"
)

// successMarker is the textual contract with the build tool: its presence
// anywhere in the completed log classifies the build as successful.
const successMarker = "#### build completed successfully"

// CompletedSuccessfully reports whether the completed build log contains the
// success marker. A missing or unreadable log classifies as failure.
func CompletedSuccessfully(logPath string) bool {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), successMarker)
}
