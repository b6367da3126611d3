package main

import (
	"fmt"
	"time"

	"propcare/models"
	"propcare/services/interval"
	"propcare/services/matching"

	"gopkg.in/yaml.v3"
)

const wallClockLayout = "2006-01-02 15:04"

type wallInterval struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type scenarioJob struct {
	ID           string `yaml:"id"`
	wallInterval `yaml:",inline"`
}

type scenarioFile struct {
	Timezone           string         `yaml:"timezone"`
	GridMinutes        int            `yaml:"gridMinutes"`
	JobDurationMinutes int            `yaml:"jobDurationMinutes"`
	ExcludeJobID       string         `yaml:"excludeJobId"`
	Proposals          []wallInterval `yaml:"proposals"`
	Jobs               []scenarioJob  `yaml:"jobs"`
	Selection          *wallInterval  `yaml:"selection"`
}

// Scenario is a parsed scenario with every time resolved in Location.
type Scenario struct {
	Location    *time.Location
	GridMinutes int
	Input       matching.Input
	Selection   *models.SelectedInterval
}

// ParseScenario decodes YAML with wall-clock times ("2006-01-02 15:04") in
// the scenario's timezone, or tz when non-empty.
func ParseScenario(data []byte, tz string) (*Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if tz == "" {
		tz = f.Timezone
	}
	loc, err := interval.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	s := &Scenario{
		Location:    loc,
		GridMinutes: f.GridMinutes,
		Input: matching.Input{
			ExcludeJobID:       f.ExcludeJobID,
			JobDurationMinutes: f.JobDurationMinutes,
		},
	}
	if s.GridMinutes <= 0 {
		s.GridMinutes = 30
	}

	for i, p := range f.Proposals {
		iv, err := p.resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", i, err)
		}
		s.Input.TenantSlots = append(s.Input.TenantSlots, models.ProposedSlot{Index: i, Interval: iv})
	}
	for i, j := range f.Jobs {
		iv, err := j.resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		id := j.ID
		if id == "" {
			id = fmt.Sprintf("job-%d", i)
		}
		s.Input.ContractorJobs = append(s.Input.ContractorJobs, models.ScheduledJob{
			ID: id, Start: iv.Start, End: iv.End, Status: models.JobScheduled,
		})
	}
	if f.Selection != nil {
		iv, err := f.Selection.resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}
		s.Selection = &models.SelectedInterval{Interval: iv}
	}
	return s, nil
}

func (w wallInterval) resolve(loc *time.Location) (models.TimeInterval, error) {
	start, err := time.ParseInLocation(wallClockLayout, w.Start, loc)
	if err != nil {
		return models.TimeInterval{}, fmt.Errorf("start %q: %w", w.Start, err)
	}
	end, err := time.ParseInLocation(wallClockLayout, w.End, loc)
	if err != nil {
		return models.TimeInterval{}, fmt.Errorf("end %q: %w", w.End, err)
	}
	return interval.New(start, end)
}
