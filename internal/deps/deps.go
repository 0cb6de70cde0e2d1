package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"galleryorganizer/internal/services"
)

// Requirement names an external tool the gallery workflow expects on PATH.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is a Requirement plus the outcome of looking it up.
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// Requirements returns the external tools expected on goos. Only linux and
// windows are supported; the archiver differs between them.
func Requirements(goos string) ([]Requirement, error) {
	reqs := []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Generates previews for video galleries"},
		{Name: "ExifTool", Command: "exiftool", Description: "Reads capture dates embedded in images"},
	}
	switch goos {
	case "linux":
		reqs = append(reqs, Requirement{Name: "Zip", Command: "zip", Description: "Packs folder galleries into archives"})
	case "windows":
		reqs = append(reqs, Requirement{Name: "Bandizip", Command: "bz", Description: "Packs folder galleries into archives"})
	default:
		return nil, services.Wrap(services.ErrEnvironment, "environment", "detect os",
			fmt.Sprintf("unsupported operating system %q; linux or windows required", goos), nil)
	}
	return reqs, nil
}

// CheckBinaries resolves each requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Available = true
			status.Path = path
		}
		results = append(results, status)
	}
	return results
}

// Ensure fails with an environment error when a required tool is missing.
// The statuses are returned either way so callers can render them.
func Ensure(goos string) ([]Status, error) {
	reqs, err := Requirements(goos)
	if err != nil {
		return nil, err
	}
	statuses := CheckBinaries(reqs)
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Command)
		}
	}
	if len(missing) > 0 {
		return statuses, services.Wrap(services.ErrEnvironment, "environment", "check tools",
			"missing required tools: "+strings.Join(missing, ", "), nil)
	}
	return statuses, nil
}
