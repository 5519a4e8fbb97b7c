package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// ErrDownload marks every network or HTTP failure while downloading.
var ErrDownload = errors.New("download failed")

// ProgressFunc is a callback for download progress
type ProgressFunc func(downloaded, total int64)

// Workspace is a private temporary directory holding everything the
// installer downloads. Cleanup removes it and is safe to call repeatedly.
type Workspace struct {
	Dir string
}

// NewWorkspace creates a mode 0700 workspace under TMPDIR (os.TempDir).
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "mcpify-install-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	log.Debugf("Created workspace %s", dir)
	return &Workspace{Dir: dir}, nil
}

// Path returns the workspace path for a downloaded file name.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, filepath.Base(name))
}

// Cleanup removes the workspace and everything in it.
func (w *Workspace) Cleanup() {
	if w == nil || w.Dir == "" {
		return
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		log.WithError(err).Warnf("failed to remove %s", w.Dir)
		return
	}
	log.Debugf("Removed workspace %s", w.Dir)
}

// Downloader performs single-attempt HTTP GET downloads.
type Downloader struct {
	Client   *http.Client
	Progress ProgressFunc
}

// Download fetches url into destPath. The file is created with mode 0600
// and removed again if the download does not complete.
func (d *Downloader) Download(ctx context.Context, url, destPath string) (err error) {
	log.Debugf("Downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDownload, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status code %d", ErrDownload, url, resp.StatusCode)
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
		if err != nil {
			os.Remove(destPath)
		}
	}()

	var written int64
	if d.Progress != nil {
		written, err = copyWithProgress(out, resp.Body, resp.ContentLength, d.Progress)
	} else {
		written, err = io.Copy(out, resp.Body)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDownload, url, err)
	}
	if written == 0 {
		return fmt.Errorf("%w: %s: no content downloaded", ErrDownload, url)
	}

	log.Debugf("Downloaded %d bytes to %s", written, destPath)
	return nil
}

// copyWithProgress copies data and reports progress
func copyWithProgress(dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	var written int64
	buf := make([]byte, 32*1024) // 32KB buffer

	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[0:nr])
			if writeErr != nil {
				return written, writeErr
			}
			written += int64(nw)
			progress(written, total)
		}

		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}
