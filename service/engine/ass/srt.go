package ass

import (
	"fmt"
	"strings"
	"time"
)

const srtNewLine = "\r\n"

func formatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func writeSRT(cues []*cue) string {
	var b strings.Builder
	for i, c := range cues {
		b.WriteString(fmt.Sprintf("%d%s", i+1, srtNewLine))
		b.WriteString(formatTimestamp(c.start))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(c.end))
		b.WriteString(srtNewLine)
		b.WriteString(strings.ReplaceAll(c.text, "\n", srtNewLine))
		b.WriteString(srtNewLine)
		b.WriteString(srtNewLine)
	}
	return b.String()
}
