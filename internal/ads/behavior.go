package ads

import "strings"

type Category string

const (
	CategoryProductivity Category = "productivity"
	CategoryStudy        Category = "study"
	CategoryFinance      Category = "finance"
)

// Behavior counts keyword hits in task titles per ad category.
type Behavior struct {
	Productivity int `json:"productivity" yaml:"productivity"`
	Study        int `json:"study" yaml:"study"`
	Finance      int `json:"finance" yaml:"finance"`
}

var keywords = []struct {
	category Category
	words    []string
}{
	{CategoryStudy, []string{"study", "learn", "read"}},
	{CategoryFinance, []string{"budget", "money", "expense", "bill"}},
	{CategoryProductivity, []string{"work", "project", "meeting"}},
}

// Track bumps each category whose keywords appear in title, once per
// category.
func (b Behavior) Track(title string) Behavior {
	lower := strings.ToLower(title)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				b.add(k.category)
				break
			}
		}
	}
	return b
}

func (b *Behavior) add(c Category) {
	switch c {
	case CategoryProductivity:
		b.Productivity++
	case CategoryStudy:
		b.Study++
	case CategoryFinance:
		b.Finance++
	}
}

// Target picks the category with the most hits. Ties resolve in the order
// productivity, study, finance.
func (b Behavior) Target() Category {
	best, count := CategoryProductivity, b.Productivity
	if b.Study > count {
		best, count = CategoryStudy, b.Study
	}
	if b.Finance > count {
		best = CategoryFinance
	}
	return best
}
