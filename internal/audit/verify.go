package audit

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/brogergvhs/landingkit/internal/ui"
	"github.com/brogergvhs/landingkit/internal/util"

	"golang.org/x/sync/errgroup"
)

type ImageResult struct {
	Ref         Ref    `json:"ref"`
	OK          bool   `json:"ok"`
	StatusCode  int    `json:"status_code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Error       string `json:"error,omitempty"`
}

type ImageSummary struct {
	Total   int           `json:"total"`
	OK      int           `json:"ok"`
	Failed  int           `json:"failed"`
	Results []ImageResult `json:"results"`
}

// Rate is the share of references that resolved, in percent.
func (s ImageSummary) Rate() float64 {
	if s.Total == 0 {
		return 100
	}
	return float64(s.OK) * 100 / float64(s.Total)
}

type Verifier struct {
	Client  *http.Client
	Workers int
	Status  *ui.Status
}

// VerifyImages stats local references and sends HEAD requests for remote
// ones. Results keep the order of refs.
func (v *Verifier) VerifyImages(ctx context.Context, refs []Ref) (ImageSummary, error) {
	results := make([]ImageResult, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(v.Workers, 1))

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if ref.Remote {
				results[i] = v.head(gctx, ref)
			} else {
				results[i] = statLocal(ref)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ImageSummary{}, err
	}

	sum := ImageSummary{Total: len(refs), Results: results}
	for _, r := range results {
		if r.OK {
			sum.OK++
		} else {
			sum.Failed++
		}
		v.print(r)
	}
	return sum, nil
}

func statLocal(ref Ref) ImageResult {
	info, err := os.Stat(ref.Resolved)
	switch {
	case err != nil:
		return ImageResult{Ref: ref, Error: "file not found"}
	case info.IsDir():
		return ImageResult{Ref: ref, Error: "is a directory"}
	}
	return ImageResult{Ref: ref, OK: true, Size: info.Size()}
}

func (v *Verifier) head(ctx context.Context, ref Ref) ImageResult {
	res := ImageResult{Ref: ref}

	resp, err := v.request(ctx, http.MethodHead, ref.Resolved)
	// some static hosts refuse HEAD
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		_ = resp.Body.Close()
		resp, err = v.request(ctx, http.MethodGet, ref.Resolved)
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.StatusCode = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")
	res.Size = resp.ContentLength
	res.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !res.OK {
		res.Error = resp.Status
	}
	return res
}

func (v *Verifier) request(ctx context.Context, method, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	return util.DoWithRetry(v.Client, req, retryAttempts, retryBackoff)
}

func (v *Verifier) print(r ImageResult) {
	if v.Status == nil {
		return
	}
	if r.OK {
		detail := util.Human(r.Size)
		if r.ContentType != "" {
			detail = fmt.Sprintf("%d %s", r.StatusCode, r.ContentType)
		}
		v.Status.Pass("%s (%s)", r.Ref.Raw, detail)
		return
	}
	v.Status.Fail("%s: %s", r.Ref.Raw, r.Error)
}

func PrintSummary(s *ui.Status, sum ImageSummary) {
	s.Heading("Image Results Summary:")
	s.Printf("   Total: %d", sum.Total)
	s.Printf("   Successful: %d", sum.OK)
	s.Printf("   Failed: %d", sum.Failed)
	s.Printf("   Success Rate: %.1f%%", sum.Rate())
}
