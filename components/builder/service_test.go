package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComponentUsesPaletteDefaults(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Operator Panel")

	c, err := service.AddComponent(context.Background(), TypeButton, 40, 80)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 40.0, c.X)
	assert.Equal(t, 80.0, c.Y)
	assert.Equal(t, 120.0, c.Width)
	assert.Equal(t, "Button", c.Props["label"])
}

func TestAddComponentUnknownTypeGetsDefaults(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")

	c, err := service.AddComponent(context.Background(), ComponentType("custom"), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(defaultComponentWidth), c.Width)
	assert.Equal(t, float64(defaultComponentHeight), c.Height)
}

func TestComponentsMayOverlap(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")

	first, err := service.AddComponent(context.Background(), TypeCard, 10, 10)
	require.NoError(t, err)
	second, err := service.AddComponent(context.Background(), TypeCard, 10, 10)
	require.NoError(t, err)

	// Same position is legal; the canvas has no collision constraints.
	assert.NotEqual(t, first.ID, second.ID)
	page := service.Current()
	require.Len(t, page.Components, 2)
	assert.Equal(t, page.Components[0].X, page.Components[1].X)
}

func TestMoveAndResize(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")
	c, err := service.AddComponent(context.Background(), TypeText, 0, 0)
	require.NoError(t, err)

	moved, err := service.Move(context.Background(), c.ID, 150, 220)
	require.NoError(t, err)
	assert.Equal(t, 150.0, moved.X)
	assert.Equal(t, 220.0, moved.Y)

	resized, err := service.Resize(context.Background(), c.ID, 320, 90)
	require.NoError(t, err)
	assert.Equal(t, 320.0, resized.Width)
	assert.Equal(t, 90.0, resized.Height)

	// Non-positive sizes fall back to defaults instead of collapsing.
	resized, err = service.Resize(context.Background(), c.ID, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, float64(defaultComponentWidth), resized.Width)
	assert.Equal(t, float64(defaultComponentHeight), resized.Height)
}

func TestUpdatePropsMerges(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")
	c, err := service.AddComponent(context.Background(), TypeButton, 0, 0)
	require.NoError(t, err)

	updated, err := service.UpdateProps(context.Background(), c.ID, map[string]any{"label": "Start"})
	require.NoError(t, err)
	assert.Equal(t, "Start", updated.Props["label"])
	assert.Equal(t, "primary", updated.Props["variant"], "untouched keys survive the merge")
}

func TestDuplicateOffsetsCopy(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")
	c, err := service.AddComponent(context.Background(), TypeHeading, 100, 100)
	require.NoError(t, err)

	dup, err := service.Duplicate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, dup.ID)
	assert.Equal(t, c.X+16, dup.X)
	assert.Equal(t, c.Props["text"], dup.Props["text"])
}

func TestRemoveComponent(t *testing.T) {
	service := NewService(Options{})
	service.NewPage(context.Background(), "Panel")
	c, err := service.AddComponent(context.Background(), TypeDivider, 0, 0)
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), c.ID))
	page := service.Current()
	assert.Empty(t, page.Components)

	err = service.Remove(context.Background(), c.ID)
	assert.Error(t, err, "removing twice should fail")
}

func TestSaveRoundTrip(t *testing.T) {
	store := &memoryPageStore{pages: map[string]*Page{}}
	service := NewService(Options{Store: store})
	page := service.NewPage(context.Background(), "Panel")
	_, err := service.AddComponent(context.Background(), TypeCard, 5, 5)
	require.NoError(t, err)

	saved, err := service.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, page.ID, saved.ID)

	loaded, err := service.Load(context.Background(), page.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Components, 1)
}

func TestOperationsWithoutPageFail(t *testing.T) {
	service := NewService(Options{})
	_, err := service.AddComponent(context.Background(), TypeCard, 0, 0)
	assert.ErrorIs(t, err, errNoPage)
	_, err = service.Move(context.Background(), "c1", 0, 0)
	assert.ErrorIs(t, err, errNoPage)
}

type memoryPageStore struct {
	pages map[string]*Page
}

func (s *memoryPageStore) FetchPage(_ context.Context, id string) (*Page, error) {
	p, ok := s.pages[id]
	if !ok {
		return nil, errNoPage
	}
	return p.Clone(), nil
}

func (s *memoryPageStore) SavePage(_ context.Context, p *Page) (*Page, error) {
	s.pages[p.ID] = p.Clone()
	return p.Clone(), nil
}
