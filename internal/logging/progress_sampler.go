package logging

import "strings"

// ProgressSampler thins per-item progress so a pass over thousands of
// galleries logs a handful of lines. It emits on the first item of a pass,
// whenever completion crosses a bucket boundary, and on the final item.
type ProgressSampler struct {
	bucketSize float64
	pass       string
	bucket     int
}

// NewProgressSampler constructs a sampler with buckets of bucketSize percent
// (default 5).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, bucket: -1}
}

// ShouldLog reports whether item done of total in pass should be logged.
func (s *ProgressSampler) ShouldLog(pass string, done, total int) bool {
	if s == nil {
		return true
	}
	if total <= 0 {
		return false
	}
	pass = strings.TrimSpace(pass)
	if pass != s.pass {
		s.pass = pass
		s.bucket = -1
	}
	if done >= total {
		done = total
	}
	bucket := int(float64(done) / float64(total) * 100 / s.bucketSize)
	if bucket <= s.bucket {
		return false
	}
	s.bucket = bucket
	return true
}

// Reset forgets the current pass.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.pass = ""
	s.bucket = -1
}
