package updates

import "strings"

// parseSrcinfoSources extracts the source entries from raw .SRCINFO text,
// including architecture-specific source_<arch> entries. .SRCINFO is a
// flat "key = value" format with indented lines under each section.
func parseSrcinfoSources(raw string) []string {
	var sources []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if value == "" {
			continue
		}
		if key == "source" || strings.HasPrefix(key, "source_") {
			sources = append(sources, value)
		}
	}
	return sources
}
