package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOutboundFileName builds <SENDER>_<YYYYMMDDHHMMSS>_<shortId>.837.
func GenerateOutboundFileName(sender string, now time.Time) string {
	shortID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s.837", strings.ToUpper(sender), now.Format("20060102150405"), shortID)
}

func GenerateRequestID(prefix string) string {
	return prefix + uuid.NewString()
}
