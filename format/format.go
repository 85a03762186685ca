package format

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/signadot/ufoto/encode"
	"github.com/signadot/ufoto/ir"
)

type Format int

const (
	CBORFormat Format = iota
	JSONFormat
	TOMLFormat
	YAMLFormat
)

var (
	ErrBadFormat = errors.New("bad format")
	// ErrUnknownFormat is returned for a Format value outside the
	// enumeration.
	ErrUnknownFormat = errors.New("unknown format")
)

// Mode is how a destination must be opened for a format.
type Mode int

const (
	TextMode Mode = iota
	BinaryMode
)

func (m Mode) String() string {
	if m == BinaryMode {
		return "binary"
	}
	return "text"
}

// Writer encodes a tree to w.
type Writer func(node *ir.Node, w io.Writer, opts ...encode.EncodeOption) error

type spec struct {
	name     string
	abbrev   string
	mode     Mode
	suffixes []string
	writer   Writer
}

var specs = map[Format]*spec{
	CBORFormat: {name: "cbor", abbrev: "c", mode: BinaryMode, suffixes: []string{".cbor", ".cbr"}, writer: encode.CBOR},
	JSONFormat: {name: "json", abbrev: "j", mode: TextMode, suffixes: []string{".json", ".jsn"}, writer: encode.JSON},
	TOMLFormat: {name: "toml", abbrev: "t", mode: TextMode, suffixes: []string{".toml", ".tml"}, writer: encode.TOML},
	YAMLFormat: {name: "yaml", abbrev: "y", mode: TextMode, suffixes: []string{".yaml", ".yml"}, writer: encode.YAML},
}

func ParseFormat(v string) (Format, error) {
	lv := strings.ToLower(v)
	for _, f := range AllFormats() {
		s := specs[f]
		if lv == s.name || lv == s.abbrev {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// Abbrev returns the one letter name ParseFormat accepts for f.
func (f Format) Abbrev() string {
	s, ok := specs[f]
	if !ok {
		return ""
	}
	return s.abbrev
}

func (f Format) MarshalText() ([]byte, error) {
	s, ok := specs[f]
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(s.name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) spec() (*spec, error) {
	s, ok := specs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	return s, nil
}

// Writer returns the encoder of f.
func (f Format) Writer() (Writer, error) {
	s, err := f.spec()
	if err != nil {
		return nil, err
	}
	return s.writer, nil
}

// Mode returns whether destinations of f are opened as text or binary.
func (f Format) Mode() (Mode, error) {
	s, err := f.spec()
	if err != nil {
		return 0, err
	}
	return s.mode, nil
}

// Suffixes returns the file suffixes of f, the default one first.
func (f Format) Suffixes() []string {
	s, ok := specs[f]
	if !ok {
		return nil
	}
	return append([]string(nil), s.suffixes...)
}

// DefaultSuffix returns the suffix used when a file name is made up for f.
func (f Format) DefaultSuffix() string {
	s, ok := specs[f]
	if !ok {
		return ""
	}
	return s.suffixes[0]
}

func (f Format) IsBinary() bool {
	m, err := f.Mode()
	return err == nil && m == BinaryMode
}

// ForFile returns the format claiming the suffix of path, compared case
// insensitively. Paths with no suffix or an unclaimed one are JSON.
func ForFile(path string) Format {
	f, _ := Lookup(path)
	return f
}

// Lookup is like ForFile but reports whether a format claimed the suffix.
func Lookup(path string) (Format, bool) {
	suffix := strings.ToLower(filepath.Ext(path))
	if suffix == "" {
		return JSONFormat, false
	}
	for _, f := range AllFormats() {
		for _, s := range specs[f].suffixes {
			if s == suffix {
				return f, true
			}
		}
	}
	return JSONFormat, false
}

// AllFormats returns all formats in suffix matching order.
func AllFormats() []Format {
	return []Format{CBORFormat, JSONFormat, TOMLFormat, YAMLFormat}
}
