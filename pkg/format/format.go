package format

import (
	"fmt"
	"math"
	"strconv"
)

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count for display, e.g. 1536 -> "1.5 KB".
// Values are rounded to at most two decimal places; trailing zeros are dropped.
func FileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := math.Round(float64(bytes)/math.Pow(k, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Duration renders a duration in seconds as mm:ss, e.g. 125 -> "2:05".
// Minutes are not wrapped into hours: 3665 -> "61:05".
func Duration(seconds float64) string {
	mins := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", mins, secs)
}
