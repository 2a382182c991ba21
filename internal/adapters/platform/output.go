package platform

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// The uploader announces success on stdout as
//
//	Video id '<id>' was successfully uploaded.
//
// and also drops a success file in the staging directory reading
//
//	Video uploaded successfully. ID: <id>
var stdoutIDPattern = regexp.MustCompile(`Video id '([^']+)' was successfully uploaded`)

const successFileName = "success.txt"

func parsePlatformID(output string) string {
	if match := stdoutIDPattern.FindStringSubmatch(output); len(match) == 2 {
		return strings.TrimSpace(match[1])
	}
	for _, line := range strings.Split(output, "\n") {
		if id := idAfterMarker(line); id != "" {
			return id
		}
	}
	return ""
}

// idAfterMarker extracts the token following "ID:"; the success-file format
// puts the platform id there.
func idAfterMarker(line string) string {
	fields := strings.Fields(strings.TrimSpace(line))
	for i, field := range fields {
		if field == "ID:" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

func readSuccessFile(stagingDir string) string {
	if stagingDir == "" {
		return ""
	}
	raw, err := os.ReadFile(filepath.Join(stagingDir, successFileName))
	if err != nil {
		return ""
	}
	return parsePlatformID(string(raw))
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
