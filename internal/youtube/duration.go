package youtube

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts a length badge like "3:36" or "1:02:45" into
// seconds.
func ParseDuration(text string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", text)
	}

	total := 0
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("invalid duration %q", text)
		}
		total = total*60 + value
	}
	return float64(total), nil
}
