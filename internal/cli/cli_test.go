package cli

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskjar/internal/config"
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/tasks"
)

// Tuesday mid-morning.
var testNow = time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, backend string) *app {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = backend
	cfg.Storage.Driver = "sqlite"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := newApp(t.Context(), cfg, logger,
		tasks.WithClock(tasks.ClockFunc(func() time.Time { return testNow })),
		tasks.WithIDGenerator(&tasks.SequenceIDs{Prefix: "task"}))
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func seed(t *testing.T, a *app, title, at string) model.Task {
	t.Helper()
	clock, err := model.ParseClock(at)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	in := model.NewTaskInput(title)
	in.Time = &clock
	task, err := a.store.Create(t.Context(), in)
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	return task
}

func TestLoadAppFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKJAR_DATA_DIR", dir)
	t.Setenv("TASKJAR_STORAGE_BACKEND", "file")
	old := configPath
	configPath = filepath.Join(dir, "missing.yaml")
	t.Cleanup(func() { configPath = old })

	a, err := loadApp(t.Context(), true)
	if err != nil {
		t.Fatalf("loadApp: %v", err)
	}
	defer a.Close()
	if a.cfg.DataDir != dir || a.cfg.Storage.Backend != config.BackendFile {
		t.Fatalf("unexpected config %+v", a.cfg)
	}
	if _, err := os.Stat(a.cfg.LogPath()); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestAddAndList(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	clock := model.Clock{Hour: 11, Minute: 30}
	in := model.NewTaskInput("Morning run")
	in.Time = &clock
	in.Priority = model.PriorityHigh
	in.Bucket = model.BucketHealth

	var out bytes.Buffer
	if err := addTask(t.Context(), a, &out, in); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := out.String(); !strings.Contains(got, `Added task-1 "Morning run" on 2026-04-14 at 11:30AM (high priority)`) {
		t.Fatalf("unexpected add output %q", got)
	}

	out.Reset()
	if err := listTasks(a, &out, listOptions{bucket: "health", pending: true}); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"task-1", "Morning run", "High", "pending"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("list output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := listTasks(a, &out, listOptions{done: true}); err != nil {
		t.Fatalf("list done: %v", err)
	}
	if !strings.Contains(out.String(), "No tasks.") {
		t.Fatalf("expected no completed tasks, got %q", out.String())
	}

	if err := listTasks(a, &out, listOptions{done: true, pending: true}); err == nil {
		t.Fatal("expected --pending with --done to fail")
	}
	if err := listTasks(a, &out, listOptions{bucket: "fun"}); err == nil || !strings.Contains(err.Error(), "invalid bucket") {
		t.Fatalf("expected invalid bucket error, got %v", err)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	in := model.NewTaskInput("Too much")
	in.Effort = 140
	err := addTask(t.Context(), a, io.Discard, in)
	if err == nil || !strings.Contains(err.Error(), "invalid effort") {
		t.Fatalf("expected effort validation error, got %v", err)
	}
	if len(a.store.List(tasks.Filter{})) != 0 {
		t.Fatal("invalid input must not create a task")
	}
}

func TestEditTask(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	task := seed(t, a, "Call mom", "19:00")
	in := model.FromTask(task)
	in.Title = "Call mom and dad"
	in.Bucket = model.BucketFamily

	var out bytes.Buffer
	if err := editTask(t.Context(), a, &out, task.ID, in); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, err := a.store.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Call mom and dad" || got.Bucket != model.BucketFamily || got.Time != task.Time {
		t.Fatalf("unexpected edited task %+v", got)
	}
	if err := editTask(t.Context(), a, &out, "nope", in); err == nil || !strings.Contains(err.Error(), "no task matches") {
		t.Fatalf("expected not found message, got %v", err)
	}
}

func TestToggleReportsStreakAndReward(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	var ids []model.Task
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, seed(t, a, title, "12:00"))
	}

	var out bytes.Buffer
	if err := toggleTask(t.Context(), a, &out, ids[0]); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !strings.Contains(out.String(), `Completed "a"`) || !strings.Contains(out.String(), "Streak: 1 day(s)") {
		t.Fatalf("unexpected first toggle output %q", out.String())
	}
	for _, task := range ids[1:] {
		out.Reset()
		if err := toggleTask(t.Context(), a, &out, task); err != nil {
			t.Fatalf("toggle %s: %v", task.Title, err)
		}
	}
	if !strings.Contains(out.String(), "Reward jar filled! You now have 1 reward point(s)") {
		t.Fatalf("expected reward on fifth completion, got %q", out.String())
	}
}

func TestToggleOffMissedTaskSuggestsShiftOrDrop(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	task := seed(t, a, "Standup", "09:00")
	if err := toggleTask(t.Context(), a, io.Discard, task); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	var out bytes.Buffer
	if err := toggleTask(t.Context(), a, &out, task); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if !strings.Contains(out.String(), "Its time has passed: run 'taskjar shift task-1' or 'taskjar drop task-1'") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestShiftAndDrop(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	late := seed(t, a, "Gym", "07:00")
	gone := seed(t, a, "Read", "08:00")

	var out bytes.Buffer
	if err := shiftTask(t.Context(), a, &out, late); err != nil {
		t.Fatalf("shift: %v", err)
	}
	if !strings.Contains(out.String(), `Moved "Gym" to 2026-04-15 at 7:00AM`) {
		t.Fatalf("unexpected shift output %q", out.String())
	}
	if err := dropTask(t.Context(), a, io.Discard, gone); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := a.store.Get(gone.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected dropped task to be gone, got %v", err)
	}
	if err := dropTask(t.Context(), a, io.Discard, gone); err == nil {
		t.Fatal("dropping an unknown task should fail")
	}
}

func TestRemoveUnknownTaskIsIgnored(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	if err := removeTask(t.Context(), a, io.Discard, model.Task{ID: "missing", Title: "x"}); err != nil {
		t.Fatalf("remove of unknown id should be a no-op, got %v", err)
	}
}

func TestAgendaAndCalendar(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	task := seed(t, a, "Pay rent", "18:00")
	in := model.FromTask(task)
	in.Priority = model.PriorityHigh
	if _, err := a.store.Update(t.Context(), task.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}

	var out bytes.Buffer
	if err := printAgenda(a, &out, ""); err != nil {
		t.Fatalf("agenda: %v", err)
	}
	for _, want := range []string{"Today (2026-04-14)", "Reward jar: 0/5", "[ ]", "Pay rent", "(8h 0m)"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("agenda missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := printAgenda(a, &out, "tomorrow"); err != nil {
		t.Fatalf("agenda tomorrow: %v", err)
	}
	if !strings.Contains(out.String(), "Tomorrow (2026-04-15)") || !strings.Contains(out.String(), "Nothing planned.") {
		t.Fatalf("unexpected tomorrow agenda:\n%s", out.String())
	}

	out.Reset()
	if err := printCalendar(a, &out, ""); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(out.String(), "April 2026") || !strings.Contains(out.String(), "*14H") {
		t.Fatalf("unexpected calendar:\n%s", out.String())
	}
	if err := printCalendar(a, &out, "April"); err == nil {
		t.Fatal("expected invalid month to fail")
	}
}

func TestTiredAgendaShowsFirstThree(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	for i, title := range []string{"One", "Two", "Three", "Four"} {
		task := seed(t, a, title, "18:00")
		in := model.FromTask(task)
		in.Effort = 10 * (i + 1)
		if _, err := a.store.Update(t.Context(), task.ID, in); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	var out bytes.Buffer
	if err := printAgenda(a, &out, ""); err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if strings.Count(out.String(), "[ ]") != 4 {
		t.Fatalf("expected 4 rows in normal mood:\n%s", out.String())
	}

	a.store.SetMood(insight.MoodTired)
	out.Reset()
	if err := printAgenda(a, &out, ""); err != nil {
		t.Fatalf("tired agenda: %v", err)
	}
	if strings.Count(out.String(), "[ ]") != 3 || strings.Contains(out.String(), "Four") {
		t.Fatalf("expected the 3 lightest tasks when tired:\n%s", out.String())
	}
}

func TestStatsHabitsAndReminders(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	var last model.Task
	for range 3 {
		last = seed(t, a, "Meditate", "11:00")
	}
	in := model.FromTask(last)
	thirty := 30
	in.Reminder = &thirty
	if _, err := a.store.Update(t.Context(), last.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}

	var out bytes.Buffer
	if err := printStats(a, &out, true); err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Tasks: 3 total, 0 completed, 3 pending", "Streak: 0 day(s)", "| tasks completed | 0 |", "Streak at risk"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("stats missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := printHabits(a, &out); err != nil {
		t.Fatalf("habits: %v", err)
	}
	if !strings.Contains(out.String(), "seedling  [..........] Meditate (0/3 done)") {
		t.Fatalf("unexpected habits %q", out.String())
	}

	out.Reset()
	if err := printReminders(a, &out, false); err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if !strings.Contains(out.String(), "Tue Apr 14 10:30") || !strings.Contains(out.String(), "30 min before") {
		t.Fatalf("unexpected reminders %q", out.String())
	}
}

func TestExportRequiresPremiumAndRoundTrips(t *testing.T) {
	src := newTestApp(t, config.BackendFile)
	seed(t, src, "Water plants", "08:30")

	var doc bytes.Buffer
	if err := exportState(t.Context(), src, &doc); !errors.Is(err, errPremiumRequired) {
		t.Fatalf("expected premium gate, got %v", err)
	}
	if err := unlockPremium(t.Context(), src, io.Discard); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := exportState(t.Context(), src, &doc); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"version: 1", "title: Water plants", "time: \"08:30\""} {
		if !strings.Contains(doc.String(), want) {
			t.Fatalf("export missing %q:\n%s", want, doc.String())
		}
	}

	dst := newTestApp(t, config.BackendFile)
	var out bytes.Buffer
	if err := importState(t.Context(), dst, bytes.NewReader(doc.Bytes()), &out); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 1 task(s)") {
		t.Fatalf("unexpected import output %q", out.String())
	}
	got := dst.store.List(tasks.Filter{})
	if len(got) != 1 || got[0].Title != "Water plants" || got[0].Time != (model.Clock{Hour: 8, Minute: 30}) {
		t.Fatalf("unexpected imported tasks %+v", got)
	}
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestExportReportsCloseError(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	seed(t, a, "Water plants", "08:30")
	if err := unlockPremium(t.Context(), a, io.Discard); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	w := &failingCloser{}
	err := exportTo(t.Context(), a, w)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected close error, got %v", err)
	}
	if !w.closed || !strings.Contains(w.String(), "Water plants") {
		t.Fatalf("expected document written then closed, closed=%v doc=%q", w.closed, w.String())
	}

	path := filepath.Join(t.TempDir(), "export.yaml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := exportTo(t.Context(), a, f); err != nil {
		t.Fatalf("export to file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "title: Water plants") {
		t.Fatalf("unexpected export file %q (%v)", data, err)
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	err := importState(t.Context(), a, strings.NewReader("version: 9\ntasks: []\n"), io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unsupported export version 9") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestAttachMemory(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	task := seed(t, a, "Beach day", "15:00")

	dir := t.TempDir()
	png := filepath.Join(dir, "beach.png")
	pngBytes := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	if err := os.WriteFile(png, pngBytes, 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	if err := attachMemory(t.Context(), a, io.Discard, task, attachOptions{emoji: "🏖", setEmoji: true, imagePath: png}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	got, _ := a.store.Get(task.ID)
	if got.Emoji != "🏖" || !strings.HasPrefix(got.Image, "data:image/png;base64,") {
		t.Fatalf("unexpected attachments emoji=%q image=%.40q", got.Emoji, got.Image)
	}

	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("just text"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	if err := attachMemory(t.Context(), a, io.Discard, task, attachOptions{imagePath: notes}); err == nil || !strings.Contains(err.Error(), "is not an image") {
		t.Fatalf("expected non-image error, got %v", err)
	}

	if err := attachMemory(t.Context(), a, io.Discard, task, attachOptions{clearImage: true}); err != nil {
		t.Fatalf("clear image: %v", err)
	}
	if got, _ := a.store.Get(task.ID); got.Image != "" {
		t.Fatalf("expected image cleared, got %.20q", got.Image)
	}
}

func TestWhoami(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	var out bytes.Buffer
	if err := whoami(t.Context(), a, &out, ""); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if out.String() != "User\n" {
		t.Fatalf("expected default name, got %q", out.String())
	}
	out.Reset()
	if err := whoami(t.Context(), a, &out, "  Asha "); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if out.String() != "Asha\n" {
		t.Fatalf("unexpected name %q", out.String())
	}
}

func TestInspectState(t *testing.T) {
	file := newTestApp(t, config.BackendFile)
	if err := inspectState(t.Context(), file, io.Discard, "", false); err == nil {
		t.Fatal("expected file backend to be rejected")
	}

	a := newTestApp(t, config.BackendSQLite)
	seed(t, a, "Stretch", "10:30")

	var out bytes.Buffer
	if err := inspectState(t.Context(), a, &out, "", false); err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if !strings.Contains(out.String(), "tasks") || !strings.Contains(out.String(), "streakCount") {
		t.Fatalf("unexpected key listing:\n%s", out.String())
	}

	out.Reset()
	if err := inspectState(t.Context(), a, &out, "currentUser", false); err != nil {
		t.Fatalf("get key: %v", err)
	}
	if !strings.Contains(out.String(), `"name":"User"`) {
		t.Fatalf("unexpected value %q", out.String())
	}

	if err := inspectState(t.Context(), a, io.Discard, "habits", true); err != nil {
		t.Fatalf("reset key: %v", err)
	}
	if err := inspectState(t.Context(), a, io.Discard, "habits", false); err == nil || !strings.Contains(err.Error(), `no key "habits"`) {
		t.Fatalf("expected reset key to be gone, got %v", err)
	}
}

func TestFormBindingsRoundTrip(t *testing.T) {
	a := newTestApp(t, config.BackendFile)
	task := seed(t, a, "Budget review", "20:15")
	in := model.FromTask(task)
	fifteen := 15
	in.Reminder = &fifteen
	in.Place = "desk"
	in.NightOnly = true

	got, err := bindingsFrom(in).input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip changed input:\n got %+v\nwant %+v", got, in)
	}

	fb := bindingsFrom(in)
	fb.effort = "lots"
	if _, err := fb.input(); err == nil || !strings.Contains(err.Error(), "effort") {
		t.Fatalf("expected effort error, got %v", err)
	}
	fb = bindingsFrom(in)
	fb.date = "14/04/2026"
	if _, err := fb.input(); err == nil {
		t.Fatal("expected date error")
	}
}

func TestParseDay(t *testing.T) {
	today := model.DateOf(testNow)
	tests := []struct {
		in   string
		want model.Date
	}{
		{"today", today},
		{"Tomorrow", today.AddDays(1)},
		{"2026-05-01", model.Date{Year: 2026, Month: time.May, Day: 1}},
	}
	for _, tt := range tests {
		got, err := parseDay(tt.in, today)
		if err != nil || got != tt.want {
			t.Fatalf("parseDay(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseDay("someday", today); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
