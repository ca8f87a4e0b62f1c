package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/inovacc/clientdb/internal/kv"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/inovacc/clientdb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeView records what the Controller asks of it.
type fakeView struct {
	visible  bool
	header   string
	form     model.Client
	rows     []Row
	invalid  error
	answer   bool
	prompts  []string
	calls    []string
	cleared  int
	rendered int
}

func (v *fakeView) ShowForm(header string) {
	v.calls = append(v.calls, "show")
	v.visible = true
	v.header = header
}

func (v *fakeView) HideForm() {
	v.calls = append(v.calls, "hide")
	v.visible = false
}

func (v *fakeView) PopulateForm(c model.Client) {
	v.calls = append(v.calls, "populate")
	v.form = c
}

func (v *fakeView) ClearForm() {
	v.calls = append(v.calls, "clear")
	v.form = model.Client{}
	v.invalid = nil
	v.cleared++
}

func (v *fakeView) FormValues() model.Client { return v.form }

func (v *fakeView) ReportInvalid(err error) { v.invalid = err }

func (v *fakeView) RenderRows(rows []Row) {
	v.rows = rows
	v.rendered++
}

func (v *fakeView) Confirm(message string) bool {
	v.prompts = append(v.prompts, message)
	return v.answer
}

// countingStore wraps a Store and counts mutating calls.
type countingStore struct {
	store.Store
	mutations int
}

func (s *countingStore) Create(ctx context.Context, c model.Client) (int, error) {
	s.mutations++
	return s.Store.Create(ctx, c)
}

func (s *countingStore) Update(ctx context.Context, i int, c model.Client) error {
	s.mutations++
	return s.Store.Update(ctx, i, c)
}

func (s *countingStore) Delete(ctx context.Context, i int) error {
	s.mutations++
	return s.Store.Delete(ctx, i)
}

func setup(t *testing.T) (*Controller, *fakeView, *countingStore, *kv.Memory) {
	t.Helper()

	backend := kv.NewMemory()
	s := &countingStore{Store: store.New(backend)}
	v := &fakeView{}

	return New(s, v, nil), v, s, backend
}

func ana() model.Client {
	return model.Client{Name: "Ana", Email: "a@x.com", Phone: "111", City: "SP"}
}

func cellsOf(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}

	return out
}

func TestController_Scenario(t *testing.T) {
	ctx := context.Background()
	c, v, _, backend := setup(t)

	require.NoError(t, c.Render(ctx))
	assert.Empty(t, v.rows)

	// create
	c.OpenCreate()
	assert.True(t, v.visible)
	assert.Equal(t, HeaderNew, v.header)
	assert.Equal(t, ModeCreate, c.Mode())

	v.form = ana()
	require.NoError(t, c.Save(ctx))
	assert.False(t, v.visible)
	assert.Equal(t, ModeClosed, c.Mode())
	require.Len(t, v.rows, 1)
	assert.Equal(t, []string{"Ana", "a@x.com", "111", "SP"}, v.rows[0].Cells())

	// edit row 0
	require.NoError(t, c.Dispatch(ctx, v.rows[0].ActionID(ActionEdit)))
	assert.True(t, v.visible)
	assert.Equal(t, "Editing Ana", v.header)
	assert.Equal(t, 0, c.EditingIndex())

	v.form.City = "RJ"
	require.NoError(t, c.Save(ctx))
	require.Len(t, v.rows, 1, "editing the first record must not append")
	assert.Equal(t, "RJ", v.rows[0].Client.City)

	// delete row 0, confirmed
	v.answer = true
	require.NoError(t, c.Dispatch(ctx, v.rows[0].ActionID(ActionDelete)))
	assert.Equal(t, []string{"Do you really want to delete client Ana?"}, v.prompts)
	assert.Empty(t, v.rows)

	raw, err := backend.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestController_RenderReflectsStore(t *testing.T) {
	ctx := context.Background()
	c, v, s, _ := setup(t)

	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, model.Client{Name: n, Email: n + "@x.com", Phone: "1", City: "X"})
		require.NoError(t, err)
	}

	require.NoError(t, s.Update(ctx, 2, model.Client{Name: "C", Email: "c@x.com", Phone: "2", City: "Y"}))
	require.NoError(t, s.Delete(ctx, 0))

	require.NoError(t, c.Render(ctx))

	assert.Equal(t, [][]string{
		{"b", "b@x.com", "1", "X"},
		{"C", "c@x.com", "2", "Y"},
	}, cellsOf(v.rows))

	// ids are recomputed from current positions
	assert.Equal(t, "edit-0", v.rows[0].ActionID(ActionEdit))
	assert.Equal(t, "delete-1", v.rows[1].ActionID(ActionDelete))
}

func TestController_SaveInvalid(t *testing.T) {
	ctx := context.Background()
	c, v, s, _ := setup(t)

	c.OpenCreate()
	v.form = model.Client{Name: "Ana"}

	err := c.Save(ctx)
	require.Error(t, err)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, err, v.invalid)

	assert.True(t, v.visible, "form stays open")
	assert.Equal(t, ModeCreate, c.Mode())
	assert.Zero(t, s.mutations, "no store call on invalid form")
}

func TestController_SaveWithoutForm(t *testing.T) {
	c, _, s, _ := setup(t)

	assert.Error(t, c.Save(context.Background()))
	assert.Zero(t, s.mutations)
}

func TestController_CloseClearsBeforeHide(t *testing.T) {
	ctx := context.Background()
	c, v, s, _ := setup(t)

	_, err := s.Create(ctx, ana())
	require.NoError(t, err)

	require.NoError(t, c.OpenEdit(ctx, 0))
	v.calls = nil

	c.Close()

	assert.Equal(t, []string{"clear", "hide"}, v.calls)
	assert.Equal(t, model.Client{}, v.form)
	assert.Equal(t, NoIndex, c.EditingIndex())
	assert.Equal(t, ModeClosed, c.Mode())
}

func TestController_OpenCreateAfterEditResetsIndex(t *testing.T) {
	ctx := context.Background()
	c, v, s, _ := setup(t)

	_, err := s.Create(ctx, ana())
	require.NoError(t, err)

	require.NoError(t, c.OpenEdit(ctx, 0))
	c.OpenCreate()

	assert.Equal(t, NoIndex, c.EditingIndex())
	assert.Equal(t, model.Client{}, v.form)

	v.form = model.Client{Name: "Bia", Email: "b@x.com", Phone: "2", City: "BH"}
	require.NoError(t, c.Save(ctx))

	assert.Len(t, v.rows, 2)
}

func TestController_OpenEditOutOfRange(t *testing.T) {
	c, v, _, _ := setup(t)

	err := c.OpenEdit(context.Background(), 0)
	assert.True(t, errors.Is(err, store.ErrIndexOutOfRange))
	assert.False(t, v.visible)
	assert.Equal(t, ModeClosed, c.Mode())
}

func TestController_DeleteDeclined(t *testing.T) {
	ctx := context.Background()
	c, v, s, backend := setup(t)

	_, err := s.Create(ctx, ana())
	require.NoError(t, err)

	before, err := backend.Get(ctx, store.DefaultKey)
	require.NoError(t, err)

	v.answer = false
	deleted, err := c.Delete(ctx, 0)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, v.prompts, 1)
	assert.Equal(t, 1, s.mutations, "only the initial create")

	after, err := backend.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestController_DispatchIgnoresUnknown(t *testing.T) {
	ctx := context.Background()
	c, v, s, _ := setup(t)

	for _, id := range []string{"", "edit", "copy-1", "edit-x", "delete--1"} {
		require.NoError(t, c.Dispatch(ctx, id), id)
	}

	assert.False(t, v.visible)
	assert.Empty(t, v.prompts)
	assert.Zero(t, s.mutations)
}

func TestParseActionID(t *testing.T) {
	tests := []struct {
		id         string
		wantAction Action
		wantIndex  int
		wantOK     bool
	}{
		{id: "edit-0", wantAction: ActionEdit, wantIndex: 0, wantOK: true},
		{id: "delete-12", wantAction: ActionDelete, wantIndex: 12, wantOK: true},
		{id: "edit-", wantOK: false},
		{id: "view-1", wantOK: false},
		{id: "delete-1a", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			action, index, ok := ParseActionID(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ParseActionID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}

			if !ok {
				return
			}

			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "closed", ModeClosed.String())
	assert.Equal(t, "create", ModeCreate.String())
	assert.Equal(t, "edit", ModeEdit.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

// flakyReadStore fails the first Read that follows a mutation.
type flakyReadStore struct {
	store.Store
	failNext bool
}

func (s *flakyReadStore) Read(ctx context.Context) ([]model.Client, error) {
	if s.failNext {
		s.failNext = false
		return nil, errors.New("transient read failure")
	}

	return s.Store.Read(ctx)
}

func (s *flakyReadStore) Create(ctx context.Context, c model.Client) (int, error) {
	index, err := s.Store.Create(ctx, c)
	s.failNext = err == nil

	return index, err
}

func (s *flakyReadStore) Update(ctx context.Context, i int, c model.Client) error {
	err := s.Store.Update(ctx, i, c)
	s.failNext = err == nil

	return err
}

func TestController_SaveClosesFormWhenRedrawFails(t *testing.T) {
	ctx := context.Background()
	backing := store.New(kv.NewMemory())
	s := &flakyReadStore{Store: backing}
	v := &fakeView{}
	c := New(s, v, nil)

	c.OpenCreate()
	v.form = ana()

	err := c.Save(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transient read failure")
	assert.Equal(t, ModeClosed, c.Mode())
	assert.Equal(t, NoIndex, c.EditingIndex())
	assert.False(t, v.visible)

	// a second save has no open form to submit
	assert.Error(t, c.Save(ctx))

	clients, err := backing.Read(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	// same for an update
	require.NoError(t, c.OpenEdit(ctx, 0))
	v.form.City = "RJ"

	require.Error(t, c.Save(ctx))
	assert.Equal(t, ModeClosed, c.Mode())

	clients, err = backing.Read(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "RJ", clients[0].City)
}
