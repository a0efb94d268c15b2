// Package ass implements the default conversion engine turning Advanced
// SubStation Alpha (ASS/SSA) subtitles into SubRip (SRT).
package ass

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/srtworker/model"
	"github.com/viant/srtworker/service/engine"
)

// Service converts ASS documents to SRT.
type Service struct{}

// New creates an ASS to SRT engine
func New() *Service {
	return &Service{}
}

// Convert decodes source, extracts dialogue cues, applies line selection and
// the optional conversion dictionary, and encodes the SRT output.
func (s *Service) Convert(ctx context.Context, source []byte, options *model.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := options.Clone()
	opts.Init()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.ChineseConv != model.ChineseConvNone && opts.ConvDict == nil {
		return nil, fmt.Errorf("chinese_conv %s requires a preloaded dictionary", opts.ChineseConv)
	}

	var (
		in  *charset
		err error
	)
	if opts.InCharset != nil {
		in, err = lookupCharset(*opts.InCharset)
	} else {
		in, err = detectCharset(source)
	}
	if err != nil {
		return nil, err
	}
	out := in
	if opts.OutCharset != nil {
		if out, err = lookupCharset(*opts.OutCharset); err != nil {
			return nil, err
		}
	}

	document, err := in.decode(source)
	if err != nil {
		return nil, err
	}
	cues, err := parseEvents(document)
	if err != nil {
		return nil, err
	}

	var dict *dictionary
	if opts.ConvDict != nil && opts.ChineseConv != model.ChineseConvNone {
		dict = parseDictionary(*opts.ConvDict)
	}

	selected := make([]*cue, 0, len(cues))
	for _, c := range cues {
		text, ok := selectLines(plainText(c.text), opts.Lines)
		if !ok {
			continue
		}
		selected = append(selected, &cue{start: c.start, end: c.end, text: dict.replaceAll(text)})
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].start < selected[j].start })
	return out.encode(writeSRT(selected))
}

func selectLines(text string, lines model.Lines) (string, bool) {
	parts := strings.Split(strings.TrimSpace(text), "\n")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch lines {
	case model.LinesFirst:
		text = parts[0]
	case model.LinesLast:
		text = parts[len(parts)-1]
	default:
		text = strings.Join(parts, "\n")
	}
	return text, strings.TrimSpace(text) != ""
}

var _ engine.Engine = (*Service)(nil)
