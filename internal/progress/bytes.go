package progress

import (
	"fmt"
	"strconv"
	"strings"
)

// byteUnits is ordered smallest-to-largest; FormatBytes walks it the same
// way FileProgress._format_bytes does in the reference implementation.
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

const unitStep = 1024.0

// unitMultipliers gives the 1024-based multiplier for each recognized unit.
// Unknown units are treated as bytes, matching _convert_to_bytes's
// map.get(unit, 1) fallback.
var unitMultipliers = map[string]int64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
	"TB": 1024 * 1024 * 1024 * 1024,
}

// FormatBytes renders n using the canonical "X.XU" form, walking up through
// B/KB/MB/GB/TB (falling through to PB for anything larger) the same way
// the reference implementation's FileProgress._format_bytes does.
func FormatBytes(n int64) string {
	v := float64(n)
	for _, unit := range byteUnits {
		if v < unitStep {
			return fmt.Sprintf("%.1f%s", v, unit)
		}
		v /= unitStep
	}
	return fmt.Sprintf("%.1fPB", v)
}

// ConvertToBytes converts a value in the given unit (B, KB, MB, GB, TB,
// case-insensitive) to a byte count, rounding down. Unknown units are
// treated as bytes.
func ConvertToBytes(value float64, unit string) int64 {
	mult, ok := unitMultipliers[strings.ToUpper(unit)]
	if !ok {
		mult = 1
	}
	return int64(value * float64(mult))
}

// ParseByteString converts a numeric string and its unit (e.g. "12.4" and
// "MB") into a byte count. Returns (0, false) if value does not parse as a
// number.
func ParseByteString(value, unit string) (int64, bool) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return ConvertToBytes(v, unit), true
}
