package sweet

import (
	"context"
	"errors"
	"testing"

	"keepsake/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTable struct {
	rows    []models.SweetMessage
	nextID  uint64
	calls   []string
	failOn  string
	failErr error
}

func (f *fakeTable) fail(op string) error {
	f.calls = append(f.calls, op)
	if f.failOn == op {
		return f.failErr
	}
	return nil
}

func (f *fakeTable) List(ctx context.Context) ([]models.SweetMessage, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	result := []models.SweetMessage{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		result = append(result, f.rows[i])
	}
	return result, nil
}

func (f *fakeTable) ListActive(ctx context.Context) ([]models.SweetMessage, error) {
	all, err := f.List(ctx)
	active := []models.SweetMessage{}
	for _, r := range all {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, err
}

func (f *fakeTable) Insert(ctx context.Context, message string) (models.SweetMessage, error) {
	if err := f.fail("insert"); err != nil {
		return models.SweetMessage{}, err
	}
	f.nextID++
	row := models.SweetMessage{ID: f.nextID, Message: message, IsActive: true}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeTable) SetActive(ctx context.Context, id uint64, active bool) error {
	if err := f.fail("update"); err != nil {
		return err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].IsActive = active
		}
	}
	return nil
}

func (f *fakeTable) Delete(ctx context.Context, id uint64) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	kept := []models.SweetMessage{}
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func TestCatalogAddBlankIsNoop(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{}
	c := NewCatalog(table, nil)
	_, _, err := c.Add(ctx, "existing")
	require.NoError(t, err)
	before := c.Rows()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, added, err := c.Add(ctx, text)
		require.NoError(t, err)
		assert.False(t, added)
	}
	assert.Equal(t, before, c.Rows())
	assert.Equal(t, []string{"insert"}, table.calls, "no insert for blank text")
}

func TestCatalogAddPrepends(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{}
	c := NewCatalog(table, nil)

	_, added, err := c.Add(ctx, "first")
	require.NoError(t, err)
	require.True(t, added)
	row, added, err := c.Add(ctx, "  second  ")
	require.NoError(t, err)
	require.True(t, added)

	assert.Equal(t, "second", row.Message)
	assert.True(t, row.IsActive)
	rows := c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0].Message)
	assert.Equal(t, "first", rows[1].Message)
}

func TestCatalogAddFailureKeepsMirror(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{failOn: "insert", failErr: errors.New("permission denied for table sweet_messages")}
	c := NewCatalog(table, nil)

	_, added, err := c.Add(ctx, "hello")
	assert.EqualError(t, err, "permission denied for table sweet_messages")
	assert.False(t, added)
	assert.Empty(t, c.Rows())
}

func TestCatalogToggle(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{}
	c := NewCatalog(table, nil)
	row, _, err := c.Add(ctx, "hello")
	require.NoError(t, err)

	updated, err := c.Toggle(ctx, row)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, c.Rows()[0].IsActive)
	assert.False(t, table.rows[0].IsActive)

	table.failOn, table.failErr = "update", errors.New("network down")
	_, err = c.Toggle(ctx, updated)
	assert.EqualError(t, err, "network down")
	assert.False(t, c.Rows()[0].IsActive, "mirror untouched on failure")
}

func TestCatalogRemoveAndRefresh(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{}
	c := NewCatalog(table, nil)
	a, _, _ := c.Add(ctx, "a")
	b, _, _ := c.Add(ctx, "b")

	table.failOn, table.failErr = "delete", errors.New("nope")
	assert.Error(t, c.Remove(ctx, a))
	assert.Len(t, c.Rows(), 2)

	table.failOn = ""
	require.NoError(t, c.Remove(ctx, a))
	rows := c.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, b.ID, rows[0].ID)

	_, found := c.Find(a.ID)
	assert.False(t, found)
	got, found := c.Find(b.ID)
	assert.True(t, found)
	assert.Equal(t, "b", got.Message)

	// Someone else added a row, refresh picks it up
	table.rows = append(table.rows, models.SweetMessage{ID: 99, Message: "c", IsActive: true})
	require.NoError(t, c.Refresh(ctx))
	rows = c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, uint64(99), rows[0].ID)

	table.failOn, table.failErr = "list", errors.New("timeout")
	assert.EqualError(t, c.Refresh(ctx), "timeout")
	assert.Len(t, c.Rows(), 2)
}

func TestPool(t *testing.T) {
	ctx := context.Background()
	table := &fakeTable{rows: []models.SweetMessage{
		{ID: 1, Message: "old", IsActive: true},
		{ID: 2, Message: "hidden", IsActive: false},
		{ID: 3, Message: "   ", IsActive: true},
		{ID: 4, Message: " new ", IsActive: true},
	}}
	pool, err := Pool(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, pool)

	pool, err = Pool(ctx, &fakeTable{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPool, pool)

	pool, err = Pool(ctx, &fakeTable{failOn: "list", failErr: errors.New("offline")})
	assert.EqualError(t, err, "offline")
	assert.Equal(t, DefaultPool, pool)
}
