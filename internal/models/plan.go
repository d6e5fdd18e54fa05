package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDescriptionLength bounds a single task description in bytes.
const MaxDescriptionLength = 1000

type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

type Week struct {
	Title string `json:"title" yaml:"title"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// DefaultPlan is the built-in 4-week business improvement checklist,
// used when no plan file is given at startup.
func DefaultPlan() []Week {
	return []Week{
		{
			Title: "Week 1: Foundation",
			Tasks: []Task{
				{ID: 1, Description: "Write down the three biggest bottlenecks in the business"},
				{ID: 2, Description: "Pick one measurable goal for the next 30 days"},
				{ID: 3, Description: "List every recurring expense and cancel one"},
				{ID: 4, Description: "Block two hours of focused work time in the calendar, daily"},
			},
		},
		{
			Title: "Week 2: Customers",
			Tasks: []Task{
				{ID: 5, Description: "Call five existing customers and ask what almost made them leave"},
				{ID: 6, Description: "Answer every open customer message from the last month"},
				{ID: 7, Description: "Write one follow-up email template and start using it"},
				{ID: 8, Description: "Ask three happy customers for a referral or review"},
			},
		},
		{
			Title: "Week 3: Operations",
			Tasks: []Task{
				{ID: 9, Description: "Document the one process only you know how to do"},
				{ID: 10, Description: "Delegate or automate one weekly recurring chore"},
				{ID: 11, Description: "Set up a simple dashboard for the 30-day goal metric"},
				{ID: 12, Description: "Review pricing against the two closest competitors"},
			},
		},
		{
			Title: "Week 4: Growth",
			Tasks: []Task{
				{ID: 13, Description: "Launch one small experiment to bring in new leads"},
				{ID: 14, Description: "Write next month's plan based on what the metric did"},
				{ID: 15, Description: "Schedule a monthly review meeting, recurring"},
				{ID: 16, Description: "Celebrate one win with the team, however small"},
			},
		},
	}
}

// Validate checks plan invariants: task IDs unique across all weeks,
// descriptions non-empty and within MaxDescriptionLength.
func Validate(weeks []Week) error {
	seen := make(map[int]bool)
	for _, week := range weeks {
		if week.Title == "" {
			return errors.New("week title is required")
		}
		for _, task := range week.Tasks {
			if seen[task.ID] {
				return fmt.Errorf("duplicate task ID %d in week %q", task.ID, week.Title)
			}
			seen[task.ID] = true

			if task.Description == "" {
				return fmt.Errorf("task %d: description is required", task.ID)
			}
			if len(task.Description) > MaxDescriptionLength {
				return fmt.Errorf("task %d: description exceeds %d bytes", task.ID, MaxDescriptionLength)
			}
		}
	}
	return nil
}

// LoadPlan reads a plan from a .json, .yaml or .yml file and
// validates it.
func LoadPlan(path string) ([]Week, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var weeks []Week
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &weeks); err != nil {
			return nil, fmt.Errorf("parsing plan %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &weeks); err != nil {
			return nil, fmt.Errorf("parsing plan %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan format %q, use .json or .yaml", ext)
	}

	if err := Validate(weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// SaveJSON writes a plan out as indented JSON.
func SaveJSON(path string, weeks []Week) error {
	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
