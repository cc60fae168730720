package update

import (
	"math"

	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/views"
)

func (m Model) renderInsightsView() string {
	dash := m.store.Dashboard()
	data := views.InsightsPanelData{
		LoadScore: int(math.Round(dash.BrainLoad.Score)),
		LoadLevel: string(dash.BrainLoad.Level),
		Total:     dash.Profile.Total,
		Completed: dash.Profile.Completed,
		Pending:   dash.Profile.Pending,
	}
	for _, b := range dash.Buckets {
		data.Buckets = append(data.Buckets, views.BucketData{Name: string(b.Bucket), Completed: b.Completed, Total: b.Total})
	}
	for _, h := range dash.Habits {
		data.Habits = append(data.Habits, views.HabitData{Title: h.Title, Tier: string(h.Tier()), Count: h.Count, Growth: h.Growth()})
	}
	for _, r := range dash.Reminders {
		data.Reminders = append(data.Reminders, views.ReminderData{
			Title:  r.Title,
			When:   r.TriggerAt.Format("Jan 2 15:04"),
			Offset: model.FormatReminder(r.MinutesBefore),
		})
	}
	data.ReceiptView = views.RenderMarkdown(m.store.Receipt().Markdown())
	return views.RenderInsightsPanel(data)
}
