package workflow

import (
	"time"

	"storage-probe/core/storage"
)

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Entry is one listing result. Exactly one of Object and Error is set.
type Entry struct {
	Object *storage.ObjectAttrs `json:"object,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// ListResult is a materialised listing of a bucket.
type ListResult struct {
	Bucket  string  `json:"bucket"`
	Prefix  string  `json:"prefix,omitempty"`
	Entries []Entry `json:"entries"`
	Failed  int     `json:"failed"`
}

// Objects returns the successfully listed objects.
func (r ListResult) Objects() []*storage.ObjectAttrs {
	objects := make([]*storage.ObjectAttrs, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Object != nil {
			objects = append(objects, e.Object)
		}
	}
	return objects
}

// Expectation describes what a listing must show after an upload.
type Expectation struct {
	// Key is the object name that must appear exactly once.
	Key string
	// Payload is compared against the stored content when ReadBack is set.
	Payload []byte
	// ReadBack downloads the object and compares content digests.
	ReadBack bool
	// Sole requires the key to be the only object in the bucket.
	Sole bool
}

// Verification is the outcome of checking an Expectation.
type Verification struct {
	Key         string   `json:"key"`
	Listed      int      `json:"listed"`
	Matches     int      `json:"matches"`
	Failed      int      `json:"failed"`
	DigestMatch *bool    `json:"digest_match,omitempty"`
	Passed      bool     `json:"passed"`
	Problems    []string `json:"problems,omitempty"`
}

// Plan is a full workflow run request.
type Plan struct {
	Key      string `json:"key" validate:"required,max=1024"`
	Payload  string `json:"payload"`
	ReadBack bool   `json:"read_back"`
	Sole     bool   `json:"sole"`
	Cleanup  bool   `json:"cleanup"`
}

// Report summarises a workflow run.
type Report struct {
	RunID         string               `json:"run_id"`
	Bucket        string               `json:"bucket"`
	Key           string               `json:"key"`
	BucketExisted bool                 `json:"bucket_existed"`
	Object        *storage.ObjectAttrs `json:"object,omitempty"`
	Verification  *Verification        `json:"verification,omitempty"`
	CleanedUp     bool                 `json:"cleaned_up"`
	Status        string               `json:"status"`
	Error         string               `json:"error,omitempty"`
	StartedAt     time.Time            `json:"started_at"`
	Duration      time.Duration        `json:"duration"`
}

// Passed reports whether every step of the run succeeded.
func (r *Report) Passed() bool {
	return r.Status == StatusPass
}
