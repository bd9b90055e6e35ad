package service

import (
	"encoding/json"
	"fmt"
	"os"

	"simtrack/internal/domain"
)

// defaultJobs is the built-in posting fixture served when no jobs file is
// configured. Order is stable; handlers return it as-is.
var defaultJobs = []domain.Job{
	{
		Title:    "Frontend Developer",
		Company:  "Infosys",
		Location: "Remote",
		Link:     "https://www.linkedin.com/jobs/view/000",
	},
	{
		Title:    "Python Intern",
		Company:  "Zoho",
		Location: "Chennai",
		Link:     "https://www.naukri.com/job-listings-python",
	},
	{
		Title:    "Business Analyst",
		Company:  "Wipro",
		Location: "Bangalore",
		Link:     "https://www.linkedin.com/jobs/view/001",
	},
}

// JobService serves the static job feed.
type JobService interface {
	Listing() []domain.Job
}

type jobService struct {
	jobs []domain.Job
}

// NewJobService returns a service backed by the built-in fixture, or by the
// JSON array at path when one is configured.
func NewJobService(path string) (JobService, error) {
	jobs := defaultJobs
	if path != "" {
		loaded, err := loadJobsFile(path)
		if err != nil {
			return nil, err
		}
		jobs = loaded
	}
	return &jobService{jobs: jobs}, nil
}

func (s *jobService) Listing() []domain.Job {
	out := make([]domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func loadJobsFile(path string) ([]domain.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	var jobs []domain.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse jobs file: %w", err)
	}
	return jobs, nil
}
