package form

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	suffixLen   = 6
	suffixSpace = 36 * 36 * 36 * 36 * 36 * 36
)

// NewApplicationID returns APP<year><6 base36 chars>
func NewApplicationID(now time.Time) string {
	return "APP" + strconv.Itoa(now.Year()) + randomSuffix()
}

// NewStudentID returns STU<year><6 base36 chars>
func NewStudentID(now time.Time) string {
	return "STU" + strconv.Itoa(now.Year()) + randomSuffix()
}

func randomSuffix() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % suffixSpace
	s := strings.ToUpper(strconv.FormatUint(n, 36))
	return strings.Repeat("0", suffixLen-len(s)) + s
}
