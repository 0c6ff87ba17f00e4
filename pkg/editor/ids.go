package editor

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh component id: a base-36 millisecond timestamp
// followed by eight random hex digits, e.g. "m1x2k3p4-9f86d081".
// Ids sort roughly by creation time.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ts + "-" + rnd[:8]
}
