package config

import (
	"strings"
)

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// GenerateConfigContent returns the defaults with every assignment
// commented out, ready to be saved as a user config file
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultContent())
}

// commentOutConfigValues comments out every line that is not blank, a
// comment, or a section header
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
