// Package web renders the dashboard page from templates embedded at
// compile time. A parse failure here is a bug in the embedded
// content, not a runtime condition, so parsing happens at init.
package web

import (
	"embed"
	"html/template"
	"io"

	"growth-dashboard/internal/manager"
	"growth-dashboard/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// WeekView is one rendered card: the week plus its progress counts.
type WeekView struct {
	Title     string
	Tasks     []models.Task
	Completed int
	Total     int
}

type PageData struct {
	Title string
	Weeks []WeekView
}

// NewPageData builds the view model for the dashboard page. The card
// counts come from the manager's per-week progress, which is in the
// same plan order as the weeks.
func NewPageData(weeks []models.Week, progress manager.Progress) PageData {
	data := PageData{Title: "Growth Dashboard"}
	for i, week := range weeks {
		view := WeekView{
			Title: week.Title,
			Tasks: week.Tasks,
			Total: len(week.Tasks),
		}
		if i < len(progress.Weeks) {
			view.Completed = progress.Weeks[i].Completed
			view.Total = progress.Weeks[i].Total
		}
		data.Weeks = append(data.Weeks, view)
	}
	return data
}

func RenderDashboard(w io.Writer, data PageData) error {
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}
