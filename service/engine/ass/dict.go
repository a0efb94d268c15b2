package ass

import (
	"strings"
)

// dictionary performs greedy longest-match phrase replacement. The text
// format has one entry per line: key<TAB>value [alternatives...]; only the
// first value is used.
type dictionary struct {
	entries map[string]string
	maxLen  int
}

func parseDictionary(text string) *dictionary {
	ret := &dictionary{entries: map[string]string{}}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok || key == "" {
			continue
		}
		if fields := strings.Fields(value); len(fields) > 0 {
			value = fields[0]
		} else {
			continue
		}
		ret.entries[key] = value
		if n := len([]rune(key)); n > ret.maxLen {
			ret.maxLen = n
		}
	}
	return ret
}

func (d *dictionary) replaceAll(text string) string {
	if d == nil || len(d.entries) == 0 {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		matched := false
		for n := min(d.maxLen, len(runes)-i); n > 0; n-- {
			if value, ok := d.entries[string(runes[i:i+n])]; ok {
				b.WriteString(value)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}
