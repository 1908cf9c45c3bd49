package templates

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

func testRepo(t *testing.T) (*Repository, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(kv, log), kv
}

// TestListEmpty verifies a missing key yields an empty list.
func TestListEmpty(t *testing.T) {
	repo, _ := testRepo(t)
	if got := repo.List(context.Background()); len(got) != 0 {
		t.Errorf("list = %v, want empty", got)
	}
}

// TestListParseFailure verifies malformed persisted data degrades to an
// empty list instead of failing.
func TestListParseFailure(t *testing.T) {
	repo, kv := testRepo(t)
	kv.Set(context.Background(), store.KeyTemplates, "{not json")

	if got := repo.List(context.Background()); len(got) != 0 {
		t.Errorf("list = %v, want empty on parse failure", got)
	}
}

// TestCreateTemplate verifies creation persists a template with defaults
// applied.
func TestCreateTemplate(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Push Day", "chest and shoulders", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("created template has no id")
	}
	if created.DefaultRestTime != models.DefaultRestSeconds {
		t.Errorf("defaultRestTime = %d, want %d", created.DefaultRestTime, models.DefaultRestSeconds)
	}
	if created.EstimatedTime != models.DefaultEstimatedTime {
		t.Errorf("estimatedTime = %d, want %d", created.EstimatedTime, models.DefaultEstimatedTime)
	}

	list := repo.List(ctx)
	if len(list) != 1 || list[0].Name != "Push Day" {
		t.Errorf("list = %+v, want the created template", list)
	}
}

// TestCreateRequiresName verifies the name constraint blocks the write.
func TestCreateRequiresName(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "", "desc", 60); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if got := repo.List(ctx); len(got) != 0 {
		t.Errorf("validation failure still wrote data: %v", got)
	}
}

// TestAddExerciseValidation checks the sets/reps bounds and that failed
// validation leaves the template untouched.
func TestAddExerciseValidation(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()
	tmpl, _ := repo.Create(ctx, "Legs", "", 60)

	cases := []struct {
		name string
		ex   models.Exercise
	}{
		{"missing name", models.Exercise{Sets: 3, Reps: 12}},
		{"sets too low", models.Exercise{Name: "Squat", Sets: 0, Reps: 12}},
		{"sets too high", models.Exercise{Name: "Squat", Sets: 21, Reps: 12}},
		{"reps too low", models.Exercise{Name: "Squat", Sets: 3, Reps: 0}},
		{"reps too high", models.Exercise{Name: "Squat", Sets: 3, Reps: 101}},
	}
	for _, tc := range cases {
		if _, err := repo.AddExercise(ctx, tmpl.ID, tc.ex); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}

	got, _ := repo.Get(ctx, tmpl.ID)
	if len(got.Exercises) != 0 {
		t.Errorf("exercises = %v, want none after failed validations", got.Exercises)
	}

	if _, err := repo.AddExercise(ctx, tmpl.ID, models.Exercise{Name: "Squat", Sets: 20, Reps: 100}); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
}

// TestExerciseLifecycle exercises add, edit and remove against one
// template.
func TestExerciseLifecycle(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()
	tmpl, _ := repo.Create(ctx, "Pull Day", "", 60)

	ex, err := repo.AddExercise(ctx, tmpl.ID, models.Exercise{Name: "Deadlift", Sets: 5, Reps: 5, Weight: "100kg"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := repo.UpdateExercise(ctx, tmpl.ID, ex.ID, models.Exercise{Name: "Deadlift", Sets: 3, Reps: 8, Weight: "110kg"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != ex.ID {
		t.Errorf("update changed the id: %q -> %q", ex.ID, updated.ID)
	}

	got, _ := repo.Get(ctx, tmpl.ID)
	if got.Exercises[0].Weight != "110kg" || got.Exercises[0].Sets != 3 {
		t.Errorf("persisted exercise = %+v, want the updated fields", got.Exercises[0])
	}

	if err := repo.RemoveExercise(ctx, tmpl.ID, ex.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = repo.Get(ctx, tmpl.ID)
	if len(got.Exercises) != 0 {
		t.Errorf("exercises = %v, want empty after remove", got.Exercises)
	}

	if err := repo.RemoveExercise(ctx, tmpl.ID, "missing"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("remove missing = %v, want ErrExerciseNotFound", err)
	}
}

// TestDeleteTemplate verifies deletion and the not-found case.
func TestDeleteTemplate(t *testing.T) {
	repo, _ := testRepo(t)
	ctx := context.Background()
	a, _ := repo.Create(ctx, "A", "", 60)
	b, _ := repo.Create(ctx, "B", "", 60)

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := repo.List(ctx)
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("list = %+v, want only B", list)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("second delete = %v, want ErrTemplateNotFound", err)
	}
}

// TestNormalizeLegacyRecords verifies records persisted before the
// sets/reps/rest fields existed are defaulted on load, while complete
// records pass through untouched.
func TestNormalizeLegacyRecords(t *testing.T) {
	repo, kv := testRepo(t)
	ctx := context.Background()

	legacy := `[
		{"id":"t1","name":"Old","description":"","estimatedTime":30,
		 "exercises":[{"id":"e1","name":"Curl","muscleGroup":"Biceps","instructions":""}]},
		{"id":"t2","name":"New","description":"","estimatedTime":40,"defaultRestTime":120,
		 "exercises":[{"id":"e2","name":"Row","muscleGroup":"Back","instructions":"","sets":5,"reps":8,"weight":"60kg","progressionNotes":"add 2.5kg"}]}
	]`
	kv.Set(ctx, store.KeyTemplates, legacy)

	list := repo.List(ctx)
	if len(list) != 2 {
		t.Fatalf("list = %d templates, want 2", len(list))
	}

	old := list[0]
	if old.DefaultRestTime != models.DefaultRestSeconds {
		t.Errorf("legacy defaultRestTime = %d, want %d", old.DefaultRestTime, models.DefaultRestSeconds)
	}
	if old.Exercises[0].Sets != models.DefaultSets || old.Exercises[0].Reps != models.DefaultReps {
		t.Errorf("legacy exercise = %+v, want defaulted sets/reps", old.Exercises[0])
	}

	complete := list[1]
	if complete.DefaultRestTime != 120 || complete.Exercises[0].Sets != 5 || complete.Exercises[0].Reps != 8 {
		t.Errorf("complete record altered by normalization: %+v", complete)
	}

	// Normalization is idempotent: a second load yields the same result.
	if again := repo.List(ctx); !reflect.DeepEqual(list, again) {
		t.Error("normalization not idempotent across loads")
	}
}

// TestTemplateRoundTrip verifies a template survives JSON serialization
// field-for-field, including nested exercise order.
func TestTemplateRoundTrip(t *testing.T) {
	tmpl := models.WorkoutTemplate{
		ID:          "t1",
		Name:        "Full Body",
		Description: "everything",
		Exercises: []models.Exercise{
			{ID: "e1", Name: "Squat", MuscleGroup: "Legs", Instructions: "deep", Sets: 5, Reps: 5, Weight: "100kg", ProgressionNotes: "add 2.5kg weekly"},
			{ID: "e2", Name: "Bench", MuscleGroup: "Chest", Sets: 3, Reps: 12, Weight: "80kg"},
			{ID: "e3", Name: "Row", MuscleGroup: "Back", Sets: 3, Reps: 10, Weight: "70kg"},
		},
		EstimatedTime:   60,
		DefaultRestTime: 90,
	}

	data, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back models.WorkoutTemplate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(tmpl, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, tmpl)
	}
}
