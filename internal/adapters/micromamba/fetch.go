package micromamba

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/toolcube/toolcube/internal/core/ports"
	"github.com/ulikunitz/xz"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	binPerm  = 0o755
	filePerm = 0o644
)

// binaryMember is the archive member holding the executable.
const binaryMember = "bin/micromamba"

// Fetcher implements ports.Bootstrapper: it downloads the micromamba release
// archive for the host platform and unpacks the binary.
type Fetcher struct {
	client *http.Client
	logger ports.Logger
	url    string
}

// NewFetcher creates a Fetcher for the host platform.
func NewFetcher(logger ports.Logger) *Fetcher {
	return &Fetcher{client: &http.Client{}, logger: logger}
}

// NewFetcherWithSource creates a Fetcher downloading from a fixed URL
// instead of the platform default. Used for testing against local servers.
func NewFetcherWithSource(logger ports.Logger, url string) *Fetcher {
	return &Fetcher{client: &http.Client{}, logger: logger, url: url}
}

// Fetch downloads the release archive into destDir and extracts the binary,
// returning its path.
func (f *Fetcher) Fetch(ctx context.Context, destDir string) (string, error) {
	url := f.url
	if url == "" {
		platformURL, err := DownloadURL(runtime.GOOS, runtime.GOARCH)
		if err != nil {
			return "", err
		}
		url = platformURL
	}

	archivePath := filepath.Join(destDir, "micromamba.tar.bz2")
	if err := f.download(ctx, url, archivePath); err != nil {
		return "", err
	}
	f.logger.Debug("downloaded package manager archive", "url", url, "path", archivePath)

	binPath, err := extractBinary(archivePath, destDir)
	if err != nil {
		return "", err
	}
	f.logger.Debug("extracted package manager binary", "path", binPath)
	return binPath, nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to build download request")
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to download package manager"), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		err := zerr.With(zerr.New("unexpected download status"), "url", url)
		return zerr.With(err, "status", resp.Status)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm) //nolint:gosec // dest is our scratch dir
	if err != nil {
		return zerr.Wrap(err, "failed to create archive file")
	}
	defer out.Close() //nolint:errcheck // Best effort close in defer

	w := io.Writer(out)
	if v := ports.VertexFromContext(ctx); v != nil {
		w = io.MultiWriter(out, &progressWriter{out: v.Stdout(), total: resp.ContentLength})
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return zerr.With(zerr.Wrap(err, "download interrupted"), "url", url)
	}
	return nil
}

// progressWriter reports a running download total at coarse intervals.
type progressWriter struct {
	out     io.Writer
	total   int64
	done    int64
	lastLog int64
}

const progressStep = 256 * 1024

func (p *progressWriter) Write(b []byte) (int, error) {
	p.done += int64(len(b))
	if p.done-p.lastLog >= progressStep || p.done == p.total {
		p.lastLog = p.done
		if p.total > 0 {
			_, _ = fmt.Fprintf(p.out, "downloaded %d / %d KB\n", p.done/1024, p.total/1024)
		} else {
			_, _ = fmt.Fprintf(p.out, "downloaded %d KB\n", p.done/1024)
		}
	}
	return len(b), nil
}

// extractBinary walks the archive and extracts the bin/micromamba member
// into destDir, preserving the bin/ subdirectory.
func extractBinary(archivePath, destDir string) (string, error) {
	f, err := os.Open(archivePath) //nolint:gosec // archive was written by us
	if err != nil {
		return "", zerr.Wrap(err, "failed to open archive")
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	r, err := decompress(f, archivePath)
	if err != nil {
		return "", err
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to read archive"), "archive", archivePath)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, binaryMember) {
			continue
		}

		binPath := filepath.Join(destDir, binaryMember)
		if err := os.MkdirAll(filepath.Dir(binPath), dirPerm); err != nil {
			return "", zerr.Wrap(err, "failed to create binary directory")
		}
		out, err := os.OpenFile(binPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, binPerm) //nolint:gosec // destDir is our scratch dir
		if err != nil {
			return "", zerr.Wrap(err, "failed to create binary file")
		}
		if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // trusted release archive
			_ = out.Close()
			return "", zerr.Wrap(err, "failed to extract binary")
		}
		if err := out.Close(); err != nil {
			return "", zerr.Wrap(err, "failed to close binary file")
		}
		return binPath, nil
	}
	return "", zerr.With(zerr.New("package manager binary not found in archive"), "archive", archivePath)
}

var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// decompress sniffs the compression format by magic bytes. Releases ship as
// .tar.bz2, but gzip and xz archives are handled as well.
func decompress(f *os.File, name string) (io.Reader, error) {
	var magic [6]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to sniff archive"), "archive", name)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, zerr.Wrap(err, "failed to rewind archive")
	}

	switch {
	case magic[0] == 0x1f && magic[1] == 0x8b:
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open gzip archive"), "archive", name)
		}
		return r, nil
	case magic[0] == 'B' && magic[1] == 'Z' && magic[2] == 'h':
		return bzip2.NewReader(f), nil
	case bytes.Equal(magic[:], xzMagic):
		r, err := xz.NewReader(f)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open xz archive"), "archive", name)
		}
		return r, nil
	}
	return nil, zerr.With(zerr.New("unrecognized archive compression"), "archive", name)
}
