package priceddoc

import (
	"fmt"
	"regexp"
	"time"
)

// NumberPattern matches assigned document numbers, e.g. INV-202603-0007.
var NumberPattern = regexp.MustCompile(`^(INV|SO)-\d{6}-\d{4}$`)

// FormatNumber renders a document number as {PREFIX}-{YYYY}{MM}-{SEQ}.
//
// The sequence is zero-padded to four digits but not capped: the
// 10000th document of a kind gets a five-digit sequence rather than
// an error or a wrap-around.
func FormatNumber(kind Kind, at time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", kind.Prefix(), at.Year(), int(at.Month()), seq)
}
