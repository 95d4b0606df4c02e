package sweet

import (
	"context"
	"strings"
	"sync"

	"keepsake/models"

	"go.uber.org/zap"
)

// Table is the remote side of the catalog
type Table interface {
	List(ctx context.Context) ([]models.SweetMessage, error)
	Insert(ctx context.Context, message string) (models.SweetMessage, error)
	SetActive(ctx context.Context, id uint64, active bool) error
	Delete(ctx context.Context, id uint64) error
}

// ActiveSource lists the messages visible on the public pages
type ActiveSource interface {
	ListActive(ctx context.Context) ([]models.SweetMessage, error)
}

// Catalog keeps a local mirror of the sweet_messages table for the admin panel.
// The mirror only changes after the table accepted the change.
type Catalog struct {
	table Table
	log   *zap.Logger

	mu   sync.RWMutex
	rows []models.SweetMessage
}

func NewCatalog(table Table, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{table: table, log: log, rows: []models.SweetMessage{}}
}

// Rows returns a copy of the mirror, newest first
func (c *Catalog) Rows() []models.SweetMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.SweetMessage{}, c.rows...)
}

func (c *Catalog) Refresh(ctx context.Context) error {
	rows, err := c.table.List(ctx)
	if err != nil {
		c.log.Warn("sweet messages refresh failed", zap.Error(err))
		return err
	}
	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
	return nil
}

// Add stores text as a new active message. Blank text is ignored and reported with added=false
func (c *Catalog) Add(ctx context.Context, text string) (row models.SweetMessage, added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return row, false, nil
	}
	row, err = c.table.Insert(ctx, text)
	if err != nil {
		c.log.Warn("sweet message insert failed", zap.Error(err))
		return row, false, err
	}
	c.mu.Lock()
	c.rows = append([]models.SweetMessage{row}, c.rows...)
	c.mu.Unlock()
	return row, true, nil
}

// Toggle flips is_active of row and returns the updated row
func (c *Catalog) Toggle(ctx context.Context, row models.SweetMessage) (models.SweetMessage, error) {
	if err := c.table.SetActive(ctx, row.ID, !row.IsActive); err != nil {
		c.log.Warn("sweet message update failed", zap.Uint64("id", row.ID), zap.Error(err))
		return row, err
	}
	row.IsActive = !row.IsActive
	c.mu.Lock()
	for i := range c.rows {
		if c.rows[i].ID == row.ID {
			c.rows[i].IsActive = !c.rows[i].IsActive
		}
	}
	c.mu.Unlock()
	return row, nil
}

func (c *Catalog) Remove(ctx context.Context, row models.SweetMessage) error {
	if err := c.table.Delete(ctx, row.ID); err != nil {
		c.log.Warn("sweet message delete failed", zap.Uint64("id", row.ID), zap.Error(err))
		return err
	}
	c.mu.Lock()
	kept := c.rows[:0:0]
	for _, r := range c.rows {
		if r.ID != row.ID {
			kept = append(kept, r)
		}
	}
	c.rows = kept
	c.mu.Unlock()
	return nil
}

// Find looks a row up in the mirror
func (c *Catalog) Find(id uint64) (models.SweetMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.rows {
		if r.ID == id {
			return r, true
		}
	}
	return models.SweetMessage{}, false
}

// Pool returns the active messages for the public pages, newest first.
// On a load error or with nothing usable stored, DefaultPool is returned (with the error, if any).
func Pool(ctx context.Context, source ActiveSource) ([]string, error) {
	rows, err := source.ListActive(ctx)
	messages := []string{}
	for _, r := range rows {
		if m := strings.TrimSpace(r.Message); m != "" {
			messages = append(messages, m)
		}
	}
	if len(messages) == 0 {
		return append([]string{}, DefaultPool...), err
	}
	return messages, err
}
