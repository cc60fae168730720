package ads

// Creative is one static sponsored message.
type Creative struct {
	Icon        string
	Title       string
	Description string
	CTA         string
	Category    Category
}

var catalogue = map[Category][]Creative{
	CategoryProductivity: {
		{Icon: "📊", Title: "Boost Your Productivity", Description: "Try our premium task manager", CTA: "Try Now"},
		{Icon: "⏰", Title: "Time Tracking Made Easy", Description: "Track your time and boost efficiency", CTA: "Install"},
		{Icon: "🎯", Title: "Focus & Concentration", Description: "Block distractions and stay focused", CTA: "Get Started"},
	},
	CategoryStudy: {
		{Icon: "📚", Title: "Study Planner Pro", Description: "Organize your study schedule", CTA: "Try Now"},
		{Icon: "✍️", Title: "Note-Taking Master", Description: "Take better notes, study smarter", CTA: "Install"},
	},
	CategoryFinance: {
		{Icon: "💰", Title: "Budget Tracker", Description: "Manage your finances easily", CTA: "Try Now"},
		{Icon: "💳", Title: "Expense Manager", Description: "Track every expense effortlessly", CTA: "Get Started"},
	},
}

// Pick rotates through the creatives of a category by display count.
func Pick(c Category, displayCount int) Creative {
	list := catalogue[c]
	if len(list) == 0 {
		list = catalogue[CategoryProductivity]
	}
	out := list[displayCount%len(list)]
	out.Category = c
	return out
}
