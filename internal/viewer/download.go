package viewer

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/agentic-research/lumiere/internal/blob"
	"github.com/agentic-research/lumiere/internal/emit"
)

// BlobHeader carries the handle of the blob backing a download.
const BlobHeader = "X-Lumiere-Blob"

// downloadSink hands an artifact to the client as an attachment. Each write
// holds a blob handle for the duration of the hand-off and schedules its
// release once the body has been written.
type downloadSink struct {
	w     http.ResponseWriter
	blobs *blob.Registry
}

func newDownloadSink(w http.ResponseWriter, blobs *blob.Registry) *downloadSink {
	return &downloadSink{w: w, blobs: blobs}
}

// WriteArtifact implements artifact.Sink.
func (d *downloadSink) WriteArtifact(ctx context.Context, a emit.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := d.blobs.Create(a.Body, a.ContentType)
	defer d.blobs.Release(b.URL)

	h := d.w.Header()
	h.Set("Content-Type", b.ContentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	h.Set("Content-Length", strconv.Itoa(len(b.Body)))
	h.Set(BlobHeader, b.URL)
	_, err := d.w.Write(b.Body)
	return err
}
