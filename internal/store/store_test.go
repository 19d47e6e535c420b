package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskpad/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, err)
	return st
}

func TestOpen_MissingFile(t *testing.T) {
	st := openTestStore(t)
	assert.Equal(t, 0, st.Len())
	assert.False(t, st.Recovered())
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st, err := Open(path)
	require.NoError(t, err, "corrupt file is recovered, not an error")
	assert.True(t, st.Recovered())
	assert.Equal(t, 0, st.Len())
}

func TestAdd_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	st, err := Open(path)
	require.NoError(t, err)

	due, err := model.ParseDate("2026-09-15")
	require.NoError(t, err)
	task, err := st.Add("  file the report  ", model.PriorityHigh, due)
	require.NoError(t, err)

	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "file the report", task.Text, "text is trimmed")
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.False(t, task.Created.IsZero())
	assert.False(t, task.Completed)
	assert.False(t, task.Deleted)

	// A fresh store sees identical field values.
	st2, err := Open(path)
	require.NoError(t, err)
	got, err := st2.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Text, got.Text)
	assert.Equal(t, task.Priority, got.Priority)
	assert.True(t, task.Due.Equal(got.Due))
	assert.True(t, task.Created.Equal(got.Created))
	assert.Equal(t, task.Completed, got.Completed)
}

func TestAdd_Validation(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Add("   ", model.PriorityMedium, model.Date{})
	assert.ErrorIs(t, err, model.ErrEmptyText)
	assert.Equal(t, 0, st.Len(), "failed add must not mutate the store")

	_, err = st.Add("task", "Urgent", model.Date{})
	assert.ErrorIs(t, err, model.ErrInvalidPriority)
}

func TestAdd_DefaultPriority(t *testing.T) {
	st := openTestStore(t)
	task, err := st.Add("task", "", model.Date{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPriority, task.Priority)
}

func TestIDs_NeverReused(t *testing.T) {
	st := openTestStore(t)

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		task, err := st.Add("task", model.PriorityMedium, model.Date{})
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}

	// Deleting the highest id must not free it up.
	require.NoError(t, st.Delete(5))
	task, err := st.Add("after delete", model.PriorityMedium, model.Date{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), task.ID)
}

func TestEdit(t *testing.T) {
	st := openTestStore(t)
	task, err := st.Add("draft", model.PriorityLow, model.Date{})
	require.NoError(t, err)
	created := task.Created

	newText := "final"
	pri := model.PriorityHigh
	due, err := model.ParseDate("2026-01-01")
	require.NoError(t, err)
	got, err := st.Edit(task.ID, Changes{Text: &newText, Priority: &pri, Due: &due})
	require.NoError(t, err)

	assert.Equal(t, "final", got.Text)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.True(t, due.Equal(got.Due))
	assert.True(t, created.Equal(got.Created), "created is immutable")

	// Partial update leaves other fields alone.
	clearDue := model.Date{}
	got, err = st.Edit(task.ID, Changes{Due: &clearDue})
	require.NoError(t, err)
	assert.True(t, got.Due.IsZero())
	assert.Equal(t, "final", got.Text)
}

func TestEdit_NotFound(t *testing.T) {
	st := openTestStore(t)
	task, err := st.Add("only task", model.PriorityMedium, model.Date{})
	require.NoError(t, err)

	text := "changed"
	_, err = st.Edit(999, Changes{Text: &text})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := st.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "only task", got.Text, "failed edit must leave the store unchanged")
}

func TestEdit_RejectsInvalid(t *testing.T) {
	st := openTestStore(t)
	task, err := st.Add("keep me", model.PriorityMedium, model.Date{})
	require.NoError(t, err)

	empty := "   "
	_, err = st.Edit(task.ID, Changes{Text: &empty})
	assert.ErrorIs(t, err, model.ErrEmptyText)

	got, err := st.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Text)
}

func TestToggleComplete(t *testing.T) {
	st := openTestStore(t)
	task, err := st.Add("task", model.PriorityMedium, model.Date{})
	require.NoError(t, err)

	got, err := st.ToggleComplete(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = st.ToggleComplete(task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	_, err = st.ToggleComplete(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Soft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	st, err := Open(path)
	require.NoError(t, err)

	task, err := st.Add("doomed", model.PriorityMedium, model.Date{})
	require.NoError(t, err)
	require.NoError(t, st.Delete(task.ID))

	assert.Equal(t, 0, st.Len())
	_, err = st.Get(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice reports not found: the task is gone from every view.
	assert.ErrorIs(t, st.Delete(task.ID), ErrNotFound)

	// The record stays in the file.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"deleted": true`)
	assert.Contains(t, string(b), "doomed")
}

func TestClearCompleted(t *testing.T) {
	st := openTestStore(t)
	a, err := st.Add("a", model.PriorityMedium, model.Date{})
	require.NoError(t, err)
	_, err = st.Add("b", model.PriorityMedium, model.Date{})
	require.NoError(t, err)
	c, err := st.Add("c", model.PriorityMedium, model.Date{})
	require.NoError(t, err)

	_, err = st.ToggleComplete(a.ID)
	require.NoError(t, err)
	_, err = st.ToggleComplete(c.ID)
	require.NoError(t, err)

	n, err := st.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, st.Len())

	n, err = st.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTasks_InsertionOrderAndCopy(t *testing.T) {
	st := openTestStore(t)
	for _, text := range []string{"first", "second", "third"} {
		_, err := st.Add(text, model.PriorityMedium, model.Date{})
		require.NoError(t, err)
	}

	tasks := st.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Text)
	assert.Equal(t, "third", tasks[2].Text)

	tasks[0].Text = "mutated"
	fresh, err := st.Get(tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "first", fresh.Text, "Tasks returns a copy")
}
