package manager

import (
	"fmt"
	"sync"
	"time"

	"growth-dashboard/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toggleTaskCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "growthboard_task_toggles_total",
			Help: "Total number of ToggleTask operations",
		},
		[]string{"status"},
	)

	toggleTaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "growthboard_toggle_duration_seconds",
			Help:    "Duration of ToggleTask operation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	completedTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "growthboard_tasks_completed",
			Help: "Number of tasks currently marked completed",
		},
	)
)

// WeekProgress is the completed/total pair for one week.
type WeekProgress struct {
	Week      string `json:"week"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// Progress is the completed/total count for the whole board plus the
// per-week breakdown, in plan order.
type Progress struct {
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
	Weeks     []WeekProgress `json:"weeks"`
}

// BoardManager owns the in-memory board state. Completion flags live
// here for the lifetime of the process; there is no persistence.
type BoardManager struct {
	weeks []models.Week
	mu    sync.Mutex
}

func NewBoardManager(weeks []models.Week) *BoardManager {
	bm := &BoardManager{weeks: copyWeeks(weeks)}
	completedTasks.Set(float64(bm.countCompleted()))
	return bm
}

// Weeks returns a snapshot copy of the board.
func (bm *BoardManager) Weeks() []models.Week {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return copyWeeks(bm.weeks)
}

// ToggleTask flips the Completed flag of the task with the given ID
// and returns the updated task. All other tasks are untouched.
func (bm *BoardManager) ToggleTask(id int) (*models.Task, error) {
	startTime := time.Now()
	defer func() {
		toggleTaskDuration.Observe(time.Since(startTime).Seconds())
	}()

	bm.mu.Lock()
	defer bm.mu.Unlock()

	for wi := range bm.weeks {
		for ti := range bm.weeks[wi].Tasks {
			if bm.weeks[wi].Tasks[ti].ID == id {
				bm.weeks[wi].Tasks[ti].Completed = !bm.weeks[wi].Tasks[ti].Completed

				toggleTaskCount.WithLabelValues("success").Inc()
				completedTasks.Set(float64(bm.countCompleted()))

				task := bm.weeks[wi].Tasks[ti]
				return &task, nil
			}
		}
	}

	toggleTaskCount.WithLabelValues("error").Inc()
	return nil, fmt.Errorf("task with ID %d not found", id)
}

// SetCompleted sets the Completed flag to an absolute value. Used by
// the bot, where "done 3" must not accidentally un-complete a task.
func (bm *BoardManager) SetCompleted(id int, completed bool) (*models.Task, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for wi := range bm.weeks {
		for ti := range bm.weeks[wi].Tasks {
			if bm.weeks[wi].Tasks[ti].ID == id {
				bm.weeks[wi].Tasks[ti].Completed = completed
				completedTasks.Set(float64(bm.countCompleted()))

				task := bm.weeks[wi].Tasks[ti]
				return &task, nil
			}
		}
	}

	return nil, fmt.Errorf("task with ID %d not found", id)
}

// Progress reports completed/total counts over the whole board and
// per week.
func (bm *BoardManager) Progress() Progress {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	var p Progress
	for _, week := range bm.weeks {
		wp := WeekProgress{Week: week.Title, Total: len(week.Tasks)}
		for _, task := range week.Tasks {
			if task.Completed {
				wp.Completed++
			}
		}
		p.Completed += wp.Completed
		p.Total += wp.Total
		p.Weeks = append(p.Weeks, wp)
	}
	return p
}

// Reset clears every Completed flag.
func (bm *BoardManager) Reset() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for wi := range bm.weeks {
		for ti := range bm.weeks[wi].Tasks {
			bm.weeks[wi].Tasks[ti].Completed = false
		}
	}
	completedTasks.Set(0)
}

// countCompleted assumes bm.mu is held.
func (bm *BoardManager) countCompleted() int {
	n := 0
	for _, week := range bm.weeks {
		for _, task := range week.Tasks {
			if task.Completed {
				n++
			}
		}
	}
	return n
}

func copyWeeks(weeks []models.Week) []models.Week {
	out := make([]models.Week, len(weeks))
	for i, week := range weeks {
		out[i] = models.Week{
			Title: week.Title,
			Tasks: append([]models.Task(nil), week.Tasks...),
		}
	}
	return out
}
