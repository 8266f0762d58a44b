package emit

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies an artifact representation.
type Format string

const (
	CSS         Format = "css"
	Module      Format = "js"
	Declaration Format = "d.ts"
	JSON        Format = "json"
)

// ErrUnknownFormat is returned for a format name no emitter handles.
var ErrUnknownFormat = errors.New("unknown artifact format")

// DownloadPrefix is the base name of viewer downloads.
const DownloadPrefix = "lumiere.tokens"

type formatInfo struct {
	buildPath    string
	contentType  string
	downloadable bool
}

var formats = map[Format]formatInfo{
	CSS:         {buildPath: "css/tokens.css", contentType: "text/css", downloadable: true},
	Module:      {buildPath: "js/tokens.js", contentType: "text/javascript", downloadable: true},
	Declaration: {buildPath: "js/tokens.d.ts", contentType: "application/typescript"},
	JSON:        {buildPath: "json/tokens.json", contentType: "application/json", downloadable: true},
}

// Formats lists every format in build order.
func Formats() []Format {
	return []Format{CSS, Module, Declaration, JSON}
}

// DownloadFormats lists the formats the viewer offers, in button order.
func DownloadFormats() []Format {
	return []Format{Module, JSON, CSS}
}

// ParseFormat maps a name (optionally with a leading dot) to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(name), "."))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Ext is the file extension without the leading dot.
func (f Format) Ext() string { return string(f) }

// BuildPath is the artifact's path relative to the output directory.
func (f Format) BuildPath() string { return formats[f].buildPath }

// ContentType is the MIME type served for the artifact.
func (f Format) ContentType() string { return formats[f].contentType }

// Downloadable reports whether the viewer offers the format.
func (f Format) Downloadable() bool { return formats[f].downloadable }

// DownloadName is the literal filename of a viewer download.
func (f Format) DownloadName() string { return DownloadPrefix + "." + f.Ext() }
