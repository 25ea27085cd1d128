// Package asset loads the banner font off the frame loop and reports the
// outcome as a message the game loop can poll.
package asset

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
)

// maxFontSize caps a downloaded font.
const maxFontSize = 32 << 20

// Source selects where a font comes from. URL wins over Path; when both are
// empty the embedded Go Bold face is used.
type Source struct {
	URL  string
	Path string
}

func (s Source) String() string {
	switch {
	case s.URL != "":
		return s.URL
	case s.Path != "":
		return s.Path
	default:
		return "embedded:gobold"
	}
}

// Result is delivered once per Load.
type Result struct {
	Source Source
	Face   *text.GoTextFaceSource
	Err    error
}

// Loader fetches fonts in the background.
type Loader struct {
	client  *http.Client
	maxSize int64
	results chan Result
}

// NewLoader creates a loader whose HTTP fetches time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client:  &http.Client{Timeout: timeout},
		maxSize: maxFontSize,
		results: make(chan Result, 4),
	}
}

// Results is the channel the frame loop polls.
func (l *Loader) Results() <-chan Result { return l.results }

// Load starts loading src and returns immediately.
func (l *Loader) Load(ctx context.Context, src Source) {
	go func() {
		face, err := l.load(ctx, src)
		if err != nil {
			log.Printf("[Asset] failed to load font %s: %v", src, err)
		} else {
			log.Printf("[Asset] font %s loaded", src)
		}
		l.results <- Result{Source: src, Face: face, Err: err}
	}()
}

func (l *Loader) load(ctx context.Context, src Source) (*text.GoTextFaceSource, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case src.URL != "":
		data, err = l.fetch(ctx, src.URL)
	case src.Path != "":
		data, err = os.ReadFile(src.Path)
		err = errors.Wrapf(err, "read %s", src.Path)
	default:
		data = gobold.TTF
	}
	if err != nil {
		return nil, err
	}

	face, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", src)
	}
	return face, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read body of %s", url)
	}
	if int64(len(data)) > l.maxSize {
		return nil, errors.Errorf("fetch %s: font too large, limit is %d bytes", url, l.maxSize)
	}
	return data, nil
}
