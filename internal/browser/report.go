package browser

import (
	"time"

	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/google/uuid"
)

type Status string

const (
	Passed Status = "passed"
	Failed Status = "failed"
	Warned Status = "warning"
)

type Outcome struct {
	Check   string   `json:"check"`
	Status  Status   `json:"status"`
	Message string   `json:"message"`
	Toggles []Toggle `json:"toggles,omitempty"`
}

type SectionReport struct {
	Name     string    `json:"name"`
	Viewport string    `json:"viewport"`
	Outcomes []Outcome `json:"outcomes"`
}

type Report struct {
	RunID      string          `json:"run_id"`
	URL        string          `json:"url"`
	Fallback   bool            `json:"fallback"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Sections   []SectionReport `json:"sections"`
	Passed     int             `json:"passed"`
	Failed     int             `json:"failed"`
	Warnings   int             `json:"warnings"`
}

func newReport(url string) *Report {
	return &Report{RunID: uuid.NewString(), URL: url, StartedAt: time.Now().UTC()}
}

func (r *Report) add(section *SectionReport, o Outcome) {
	section.Outcomes = append(section.Outcomes, o)
	switch o.Status {
	case Passed:
		r.Passed++
	case Failed:
		r.Failed++
	case Warned:
		r.Warnings++
	}
}

func (r *Report) OK() bool {
	return r.Failed == 0
}

func (r *Report) Save(path string) error {
	return util.WriteJSON(path, r)
}
