package audit

import (
	"time"

	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/google/uuid"
)

type Report struct {
	RunID     string        `json:"run_id"`
	Source    string        `json:"source"`
	CreatedAt time.Time     `json:"created_at"`
	Checks    CheckSummary  `json:"checks"`
	Images    *ImageSummary `json:"images,omitempty"`
}

func NewReport(source string) *Report {
	return &Report{RunID: uuid.NewString(), Source: source, CreatedAt: time.Now().UTC()}
}

func (r *Report) OK() bool {
	if !r.Checks.OK() {
		return false
	}
	return r.Images == nil || r.Images.Failed == 0
}

func (r *Report) Save(path string) error {
	return util.WriteJSON(path, r)
}
