package organizer

import (
	"errors"
	"fmt"
	"strings"
)

// Failure is one gallery a pass could not update.
type Failure struct {
	GalleryID string
	Err       error
}

// Summary counts the outcomes of one pass.
type Summary struct {
	Mode     Mode
	Matched  int
	Updated  int
	Skipped  int
	Failures []Failure
	// Unresolved lists tag labels seen at least twice without a matching tag.
	Unresolved []string
}

// Failed returns the number of galleries whose update failed.
func (s *Summary) Failed() int {
	if s == nil {
		return 0
	}
	return len(s.Failures)
}

// Err joins the per-gallery failures, or returns nil when there were none.
func (s *Summary) Err() error {
	if s == nil || len(s.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Failures))
	for _, failure := range s.Failures {
		errs = append(errs, fmt.Errorf("gallery %s: %w", failure.GalleryID, failure.Err))
	}
	return errors.Join(errs...)
}

func (s *Summary) String() string {
	if s == nil {
		return "no pass run"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: matched=%d updated=%d skipped=%d failed=%d",
		s.Mode, s.Matched, s.Updated, s.Skipped, len(s.Failures))
	if len(s.Unresolved) > 0 {
		fmt.Fprintf(&b, " unresolved=%s", strings.Join(s.Unresolved, ", "))
	}
	return b.String()
}
