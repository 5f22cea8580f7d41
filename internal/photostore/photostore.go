package photostore

import (
	"context"
	"io"
)

const (
	// OriginalName is the file name of the raw capture within a session directory.
	OriginalName = "photo.jpg"
	// ConvertedName is the file name of the rotated PNG within a session directory.
	ConvertedName = "photo.png"
)

// PhotoStore keeps the files of each session under their own directory.
type PhotoStore interface {
	// Save writes r to the named file of the session and returns its path.
	Save(ctx context.Context, sessionID, name string, r io.Reader) (path string, err error)
	// URL returns the slash-separated location of the file relative to the
	// store root, suitable for a web page served from that root.
	URL(sessionID, name string) string
}
