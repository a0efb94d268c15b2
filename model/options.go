package model

import "fmt"

// ChineseConv selects the built-in Chinese character conversion direction.
type ChineseConv string

const (
	ChineseConvNone ChineseConv = "None"
	ChineseConvS2T  ChineseConv = "S2T"
	ChineseConvT2S  ChineseConv = "T2S"
)

// Lines selects which lines of a multi-line cue are kept.
type Lines string

const (
	LinesFirst Lines = "First"
	LinesLast  Lines = "Last"
	LinesAll   Lines = "All"
)

// Options represents the conversion engine configuration. The dispatcher only
// touches ConvDict; every other field is passed to the engine untouched.
type Options struct {
	InCharset   *string     `json:"in_charset,omitempty" yaml:"in_charset,omitempty"`
	OutCharset  *string     `json:"out_charset,omitempty" yaml:"out_charset,omitempty"`
	ChineseConv ChineseConv `json:"chinese_conv,omitempty" yaml:"chinese_conv,omitempty"`
	Lines       Lines       `json:"lines,omitempty" yaml:"lines,omitempty"`
	// ConvDict holds the resolved dictionary text, nil when no dictionary is configured.
	ConvDict *string `json:"conv_dict,omitempty" yaml:"-"`
}

// Clone returns a shallow copy so that a task can inject ConvDict without
// mutating the caller's options.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	ret := *o
	return &ret
}

// WithConvDict returns a copy of the options carrying the supplied dictionary text.
func (o *Options) WithConvDict(dict *string) *Options {
	ret := o.Clone()
	ret.ConvDict = dict
	return ret
}

// Init applies defaults to unset enumerations.
func (o *Options) Init() {
	if o.ChineseConv == "" {
		o.ChineseConv = ChineseConvNone
	}
	if o.Lines == "" {
		o.Lines = LinesAll
	}
}

// Validate checks enumerated values.
func (o *Options) Validate() error {
	switch o.ChineseConv {
	case "", ChineseConvNone, ChineseConvS2T, ChineseConvT2S:
	default:
		return fmt.Errorf("unknown chinese_conv: %q", o.ChineseConv)
	}
	switch o.Lines {
	case "", LinesFirst, LinesLast, LinesAll:
	default:
		return fmt.Errorf("unknown lines: %q", o.Lines)
	}
	return nil
}
