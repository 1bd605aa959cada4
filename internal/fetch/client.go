package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	apperrors "github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/logger"
)

const filePerm os.FileMode = 0o644

// partPattern names in-flight downloads. It carries no part of the
// destination name, so a leftover from a killed process cannot match a slug.
const partPattern = ".lutrisart-*.part"

// Client downloads replacement artwork. A download either replaces the
// destination completely or leaves it untouched.
type Client struct {
	http *resty.Client
	fs   afero.Fs
}

// New returns a Client writing to fs. A zero timeout means requests never
// time out on their own.
func New(fs afero.Fs, timeout time.Duration) *Client {
	http := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "lutrisart/1.0")
	return &Client{http: http, fs: fs}
}

// Download fetches rawURL with a single GET and writes the body to dest.
// The body is streamed into a temporary file next to dest which is renamed
// over dest only after the whole body arrived.
func (c *Client) Download(ctx context.Context, dest, rawURL string) error {
	log := logger.FromContext(ctx).WithPrefix("fetch").WithField("url", rawURL)

	if dest == "" {
		return apperrors.NewFetchFailedError(rawURL, "empty destination path", nil)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		log.Warn("malformed url: %v", err)
		return apperrors.NewFetchFailedError(rawURL, "malformed url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		log.Warn("unsupported url: scheme=%q host=%q", u.Scheme, u.Host)
		return apperrors.NewFetchFailedError(rawURL, "url must be absolute http(s)", nil)
	}

	log.Debug("downloading to %s", dest)
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		log.Error("request failed: %v", err)
		return apperrors.NewFetchFailedError(rawURL, "request failed", err)
	}
	body := resp.RawBody()
	defer body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode())

	if !resp.IsSuccess() {
		snippet, _ := io.ReadAll(io.LimitReader(body, 1024))
		log.Error("download failed: status=%d, body=%s", resp.StatusCode(), string(snippet))
		return apperrors.NewFetchFailedError(rawURL, fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}

	n, err := c.writeAtomically(dest, body)
	if err != nil {
		log.Error("failed to write %s: %v", dest, err)
		return apperrors.NewFetchFailedError(rawURL, "write "+dest, err)
	}

	log.Info("saved %d bytes to %s in %v", n, dest, time.Since(start))
	return nil
}

func (c *Client) writeAtomically(dest string, r io.Reader) (int64, error) {
	tmp, err := afero.TempFile(c.fs, filepath.Dir(dest), partPattern)
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = c.fs.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	if err := c.fs.Chmod(tmpName, filePerm); err != nil {
		return n, err
	}
	if err := c.fs.Rename(tmpName, dest); err != nil {
		return n, err
	}
	committed = true
	return n, nil
}
