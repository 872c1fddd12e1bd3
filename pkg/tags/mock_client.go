package tags

import (
	"context"
	"fmt"
	"sync"
	"time"

	board "github.com/gridboard/go-gridboard/components/board"
)

// MockClient implements board.TagService from in-memory fixtures. Safe for
// concurrent use, so it can back a live poller in demos and tests.
type MockClient struct {
	mu       sync.RWMutex
	readings map[string]board.TagReading
	failures map[string]error
}

var _ board.TagService = (*MockClient)(nil)

// NewMockClient builds a mock tag client from the provided fixtures.
func NewMockClient(readings ...board.TagReading) *MockClient {
	c := &MockClient{
		readings: map[string]board.TagReading{},
		failures: map[string]error{},
	}
	for _, r := range readings {
		c.readings[r.ID] = r
	}
	return c
}

// Set stores or replaces a reading, stamping LastUpdated when unset.
func (c *MockClient) Set(reading board.TagReading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reading.LastUpdated.IsZero() {
		reading.LastUpdated = time.Now().UTC()
	}
	c.readings[reading.ID] = reading
	delete(c.failures, reading.ID)
}

// SetValue updates just the numeric value of an existing tag.
func (c *MockClient) SetValue(id string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.readings[id]
	r.ID = id
	r.Value = value
	r.LastUpdated = time.Now().UTC()
	c.readings[id] = r
}

// Fail makes reads of the tag return err until the tag is Set again.
func (c *MockClient) Fail(id string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[id] = err
}

// ReadTag returns the stored reading or an error for unknown/failed tags.
func (c *MockClient) ReadTag(_ context.Context, id string) (board.TagReading, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err, ok := c.failures[id]; ok {
		return board.TagReading{}, err
	}
	reading, ok := c.readings[id]
	if !ok {
		return board.TagReading{}, fmt.Errorf("tags: tag %s not found", id)
	}
	return reading, nil
}

// ReadTags resolves each id; the first unknown or failed tag aborts the
// batch.
func (c *MockClient) ReadTags(ctx context.Context, ids []string) ([]board.TagReading, error) {
	readings := make([]board.TagReading, 0, len(ids))
	for _, id := range ids {
		reading, err := c.ReadTag(ctx, id)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}
