// Package artifact persists rendered artifacts through swappable sinks.
//
// The build writes through FSSink; the viewer writes through an HTTP
// download sink. Both receive identical emit.Artifact values.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/emit"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Sink receives rendered artifacts.
type Sink interface {
	WriteArtifact(ctx context.Context, a emit.Artifact) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, a emit.Artifact) error

// WriteArtifact implements Sink.
func (f SinkFunc) WriteArtifact(ctx context.Context, a emit.Artifact) error { return f(ctx, a) }

// FSSink writes artifacts under the root of a billy filesystem, creating
// parent directories as needed.
type FSSink struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewFSSink creates a sink over fs. A nil logger disables logging.
func NewFSSink(fs billy.Filesystem, logger *zap.Logger) *FSSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSSink{fs: fs, logger: logger}
}

// WriteArtifact implements Sink.
func (s *FSSink) WriteArtifact(ctx context.Context, a emit.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := path.Dir(a.Name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(s.fs, a.Name, a.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.Name, err)
	}
	s.logger.Debug("artifact written",
		zap.String("path", s.fs.Join(s.fs.Root(), a.Name)),
		zap.String("format", string(a.Format)),
		zap.Int("bytes", len(a.Body)))
	return nil
}

// Build renders every format and hands each artifact to sink in build
// order. It stops at the first write error.
func Build(ctx context.Context, doc *api.Document, sink Sink) ([]emit.Artifact, error) {
	artifacts := emit.RenderAll(doc)
	for _, a := range artifacts {
		if err := sink.WriteArtifact(ctx, a); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

// ReadBuilt reads a previously built artifact back from fs.
func ReadBuilt(fs billy.Filesystem, f emit.Format) ([]byte, error) {
	data, err := util.ReadFile(fs, f.BuildPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not built: %w", f.BuildPath(), err)
		}
		return nil, fmt.Errorf("read %s: %w", f.BuildPath(), err)
	}
	return data, nil
}
