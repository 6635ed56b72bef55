package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

type mockAPI struct {
	listFn   func(ctx context.Context) ([]Task, error)
	createFn func(ctx context.Context, in TaskInput) (Task, error)
	updateFn func(ctx context.Context, id int64, in TaskInput) (Task, error)
	deleteFn func(ctx context.Context, id int64) error
	toggleFn func(ctx context.Context, id int64) (Task, error)
}

func (m *mockAPI) List(ctx context.Context) ([]Task, error) {
	return m.listFn(ctx)
}

func (m *mockAPI) Create(ctx context.Context, in TaskInput) (Task, error) {
	return m.createFn(ctx, in)
}

func (m *mockAPI) Update(ctx context.Context, id int64, in TaskInput) (Task, error) {
	return m.updateFn(ctx, id, in)
}

func (m *mockAPI) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAPI) Toggle(ctx context.Context, id int64) (Task, error) {
	return m.toggleFn(ctx, id)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func loadedBoard(t *testing.T, api *mockAPI) (*Board, *recordingNotifier) {
	t.Helper()

	if api.listFn == nil {
		api.listFn = func(context.Context) ([]Task, error) { return sampleTasks(), nil }
	}
	n := &recordingNotifier{}
	b := NewBoard(api, n)
	require.NoError(t, b.Load(context.Background()))
	return b, n
}

func TestBoard_Load(t *testing.T) {
	b, n := loadedBoard(t, &mockAPI{})

	assert.True(t, b.Loaded())
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(b.Tasks()))
	assert.Empty(t, n.successes)
	assert.Empty(t, n.errors)
}

func TestBoard_LoadFailureKeepsState(t *testing.T) {
	calls := 0
	api := &mockAPI{listFn: func(context.Context) ([]Task, error) {
		calls++
		if calls == 1 {
			return sampleTasks(), nil
		}
		return nil, errors.New("connection refused")
	}}
	b, n := loadedBoard(t, api)

	err := b.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(b.Tasks()))
	assert.Equal(t, []string{"Error fetching tasks"}, n.errors)
}

func TestBoard_AddPrepends(t *testing.T) {
	api := &mockAPI{createFn: func(_ context.Context, in TaskInput) (Task, error) {
		return Task{ID: 5, Title: *in.Title, Status: domain.StatusPending, Priority: domain.PriorityMedium}, nil
	}}
	b, n := loadedBoard(t, api)

	created, err := b.Add(context.Background(), TaskInput{Title: String("Call mom")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(b.Tasks()))
	assert.Equal(t, []string{"Task created successfully"}, n.successes)
}

func TestBoard_AddUsesServerMessage(t *testing.T) {
	api := &mockAPI{createFn: func(context.Context, TaskInput) (Task, error) {
		return Task{}, &APIError{StatusCode: 400, Message: "Title is required", Field: "title"}
	}}
	b, n := loadedBoard(t, api)

	_, err := b.Add(context.Background(), TaskInput{Title: String("")})
	require.Error(t, err)
	assert.Len(t, b.Tasks(), 4)
	assert.Equal(t, []string{"Title is required"}, n.errors)
	assert.Empty(t, n.successes)
}

func TestBoard_UpdateReplacesInPlace(t *testing.T) {
	api := &mockAPI{updateFn: func(_ context.Context, id int64, in TaskInput) (Task, error) {
		return Task{ID: id, Title: *in.Title, Status: domain.StatusPending, Priority: domain.PriorityMedium}, nil
	}}
	b, n := loadedBoard(t, api)

	_, err := b.Update(context.Background(), 2, TaskInput{Title: String("Write final report")})
	require.NoError(t, err)

	tasks := b.Tasks()
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(tasks))
	assert.Equal(t, "Write final report", tasks[2].Title)
	assert.Equal(t, []string{"Task updated successfully"}, n.successes)
}

func TestBoard_UpdateFailure(t *testing.T) {
	api := &mockAPI{updateFn: func(context.Context, int64, TaskInput) (Task, error) {
		return Task{}, errors.New("timeout")
	}}
	b, n := loadedBoard(t, api)

	_, err := b.Update(context.Background(), 2, TaskInput{Title: String("x")})
	require.Error(t, err)
	assert.Equal(t, "Write report", b.Tasks()[2].Title)
	assert.Equal(t, []string{"Error updating task"}, n.errors)
}

func TestBoard_Toggle(t *testing.T) {
	api := &mockAPI{toggleFn: func(_ context.Context, id int64) (Task, error) {
		return Task{ID: id, Title: "Buy milk", Status: domain.StatusCompleted, Priority: domain.PriorityHigh}, nil
	}}
	b, n := loadedBoard(t, api)

	_, err := b.Toggle(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, b.Tasks()[0].Status)
	assert.Equal(t, Stats{Total: 4, Completed: 3, Pending: 1, Priority: 2}, b.Stats())
	assert.Equal(t, []string{"Task status updated successfully"}, n.successes)
}

func TestBoard_ToggleFailure(t *testing.T) {
	api := &mockAPI{toggleFn: func(context.Context, int64) (Task, error) {
		return Task{}, &APIError{StatusCode: 404, Message: "Task not found"}
	}}
	b, n := loadedBoard(t, api)

	_, err := b.Toggle(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, []string{"Task not found"}, n.errors)
}

func TestBoard_Remove(t *testing.T) {
	api := &mockAPI{deleteFn: func(context.Context, int64) error { return nil }}
	b, n := loadedBoard(t, api)

	require.NoError(t, b.Remove(context.Background(), 3))
	assert.Equal(t, []int64{4, 2, 1}, ids(b.Tasks()))
	assert.Equal(t, []string{"Task deleted successfully"}, n.successes)
}

func TestBoard_RemoveFailureKeepsTask(t *testing.T) {
	api := &mockAPI{deleteFn: func(context.Context, int64) error {
		return &APIError{StatusCode: 500, Message: ""}
	}}
	b, n := loadedBoard(t, api)

	require.Error(t, b.Remove(context.Background(), 3))
	assert.Len(t, b.Tasks(), 4)
	assert.Equal(t, []string{"Error deleting task"}, n.errors)
}

func TestBoard_FilterAndTasksCopy(t *testing.T) {
	b, _ := loadedBoard(t, &mockAPI{})

	assert.Equal(t, []int64{4, 1}, ids(b.Filter(Filter{Priority: "high"})))

	tasks := b.Tasks()
	tasks[0].Title = "mutated"
	assert.Equal(t, "Buy milk", b.Tasks()[0].Title)
}

func TestNewBoard_NilNotifier(t *testing.T) {
	api := &mockAPI{listFn: func(context.Context) ([]Task, error) {
		return nil, errors.New("down")
	}}
	b := NewBoard(api, nil)

	require.Error(t, b.Load(context.Background()))
	assert.False(t, b.Loaded())
	assert.Empty(t, b.Tasks())
	assert.Equal(t, Stats{}, b.Stats())
}
