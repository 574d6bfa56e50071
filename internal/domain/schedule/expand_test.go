package schedule

import (
	"testing"
	"time"

	"med-reminder/internal/domain/medicines"
)

// 2024-06-03 es lunes.
var monday = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func aspirin() medicines.Medicine {
	return medicines.Medicine{
		ID:   "asp",
		Name: "Aspirin",
		Type: medicines.TypePill,
		Dose: medicines.Dose{Amount: 500, Unit: medicines.UnitMg},
		Schedule: &medicines.Schedule{
			SelectedDays: []medicines.Weekday{medicines.Monday},
			Times:        []medicines.ScheduleTime{{Time: "08:00", Dosage: "1 tablet", ID: "t1"}},
		},
	}
}

func TestExpand_EmptySelectedDaysNeverFires(t *testing.T) {
	m := medicines.Medicine{ID: "x", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{},
		Times:        []medicines.ScheduleTime{{Time: "08:00"}, {Time: "12:00"}},
	}}
	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d)
		if got := Expand([]medicines.Medicine{m}, date, nil); len(got) != 0 {
			t.Fatalf("%s: expected no occurrences, got %d", date.Weekday(), len(got))
		}
	}
}

func TestExpand_NoScheduleMeansEveryDay(t *testing.T) {
	m := medicines.Medicine{ID: "vit", Name: "Vitamin D"}
	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d)
		got := Expand([]medicines.Medicine{m}, date, nil)
		if len(got) != 1 {
			t.Fatalf("%s: expected 1 occurrence, got %d", date.Weekday(), len(got))
		}
		if got[0].Time != DefaultTime {
			t.Fatalf("expected default time, got %q", got[0].Time)
		}
	}
}

func TestExpand_EmptyTimesYieldsSyntheticDefault(t *testing.T) {
	m := medicines.Medicine{ID: "x", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{medicines.Monday},
	}}
	got := Expand([]medicines.Medicine{m}, monday, nil)
	if len(got) != 1 || got[0].Time != "08:00" || got[0].TimeIndex != 0 {
		t.Fatalf("expected one synthetic 08:00 occurrence, got %+v", got)
	}
}

func TestExpand_FiltersByWeekday(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	if got := Expand([]medicines.Medicine{aspirin()}, tuesday, nil); len(got) != 0 {
		t.Fatalf("expected no occurrences on tuesday, got %d", len(got))
	}

	got := Expand([]medicines.Medicine{aspirin()}, monday, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence on monday, got %d", len(got))
	}
	o := got[0]
	if o.Key() != "asp-0-2024-06-03" || o.Weekday != medicines.Monday || o.Dosage != "1 tablet" {
		t.Fatalf("unexpected occurrence %+v key=%s", o, o.Key())
	}
}

func TestExpand_OrderingPendingThenCompleted(t *testing.T) {
	m := medicines.Medicine{ID: "m", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{medicines.Monday},
		Times:        []medicines.ScheduleTime{{Time: "20:00"}, {Time: "08:00"}},
	}}

	got := Expand([]medicines.Medicine{m}, monday, nil)
	if got[0].Time != "08:00" || got[1].Time != "20:00" {
		t.Fatalf("expected 08:00 before 20:00, got %s, %s", got[0].Time, got[1].Time)
	}

	// 08:00 es el índice 1 en el horario original.
	done := map[string]bool{CompletionKey("m", 1, "2024-06-03"): true}
	got = Expand([]medicines.Medicine{m}, monday, func(k string) bool { return done[k] })
	if got[0].Time != "20:00" || got[1].Time != "08:00" || !got[1].Completed {
		t.Fatalf("expected completed 08:00 after pending 20:00, got %+v", got)
	}
}

func TestExpand_MixedMedicinesSortedByClock(t *testing.T) {
	a := medicines.Medicine{ID: "a", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{medicines.Monday},
		Times:        []medicines.ScheduleTime{{Time: "13:30"}},
	}}
	b := medicines.Medicine{ID: "b", Schedule: &medicines.Schedule{
		SelectedDays: []medicines.Weekday{medicines.Monday},
		Times:        []medicines.ScheduleTime{{Time: "07:15"}, {Time: "21:00"}},
	}}

	got := Expand([]medicines.Medicine{a, b}, monday, nil)
	want := []string{"07:15", "13:30", "21:00"}
	for i, w := range want {
		if got[i].Time != w {
			t.Fatalf("pos %d: want %s got %s", i, w, got[i].Time)
		}
	}
}

func TestFind(t *testing.T) {
	o, ok := Find([]medicines.Medicine{aspirin()}, "asp", 0, monday, nil)
	if !ok || o.Time != "08:00" {
		t.Fatalf("expected to find aspirin 08:00, got %+v ok=%v", o, ok)
	}
	if _, ok := Find([]medicines.Medicine{aspirin()}, "asp", 1, monday, nil); ok {
		t.Fatalf("index 1 does not exist")
	}
}

func TestWeekdayOf(t *testing.T) {
	want := []medicines.Weekday{
		medicines.Monday, medicines.Tuesday, medicines.Wednesday, medicines.Thursday,
		medicines.Friday, medicines.Saturday, medicines.Sunday,
	}
	for i, w := range want {
		if got := WeekdayOf(monday.AddDate(0, 0, i)); got != w {
			t.Errorf("day %d: want %s got %s", i, w, got)
		}
	}
}
