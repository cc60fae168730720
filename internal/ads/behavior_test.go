package ads

import "testing"

func TestBehaviorTrack(t *testing.T) {
	var b Behavior
	b = b.Track("Read chapter 4 and learn Go")
	b = b.Track("Pay electricity BILL")
	b = b.Track("Project meeting notes")
	b = b.Track("Walk the dog")
	if b.Study != 1 || b.Finance != 1 || b.Productivity != 1 {
		t.Fatalf("unexpected counters %+v", b)
	}
	b = b.Track("Study budget for work")
	if b.Study != 2 || b.Finance != 2 || b.Productivity != 2 {
		t.Fatalf("expected one hit per category, got %+v", b)
	}
}

func TestBehaviorTarget(t *testing.T) {
	cases := []struct {
		in   Behavior
		want Category
	}{
		{in: Behavior{}, want: CategoryProductivity},
		{in: Behavior{Productivity: 2, Study: 2, Finance: 2}, want: CategoryProductivity},
		{in: Behavior{Study: 3, Finance: 3}, want: CategoryStudy},
		{in: Behavior{Productivity: 1, Finance: 4}, want: CategoryFinance},
		{in: Behavior{Productivity: 5, Study: 4}, want: CategoryProductivity},
	}
	for _, tc := range cases {
		if got := tc.in.Target(); got != tc.want {
			t.Fatalf("Target(%+v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPickRotates(t *testing.T) {
	first := Pick(CategoryFinance, 0)
	second := Pick(CategoryFinance, 1)
	if first.Title == second.Title || first.Category != CategoryFinance {
		t.Fatalf("expected rotation, got %q and %q", first.Title, second.Title)
	}
	if Pick(CategoryFinance, 2).Title != first.Title {
		t.Fatal("expected rotation to wrap")
	}
}
