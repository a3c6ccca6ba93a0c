package csvimport

import (
	"context"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
)

type fakePlatforms struct {
	index map[string]int64
	err   error
	calls int
}

func (platforms *fakePlatforms) NameIndex(ctx context.Context) (map[string]int64, error) {
	platforms.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if platforms.err != nil {
		return nil, platforms.err
	}
	return platforms.index, nil
}

// Los fakes respetan ctx como lo hace pgx.
type fakeStore struct {
	err    error
	calls  int
	inputs []items.CreateItemInput
}

func (store *fakeStore) InsertItems(ctx context.Context, inputs []items.CreateItemInput) (int, error) {
	store.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if store.err != nil {
		return 0, store.err
	}
	store.inputs = append(store.inputs, inputs...)
	return len(inputs), nil
}

// seededPlatforms replica parte de las plataformas que carga db/schema.sql.
func seededPlatforms() *fakePlatforms {
	return &fakePlatforms{index: map[string]int64{
		"nes":              1,
		"snes":             2,
		"n64":              3,
		"switch":           7,
		"game boy advance": 10,
	}}
}

func seededResolver() *PlatformResolver {
	return NewPlatformResolver(seededPlatforms().index)
}

const header = "Title,Platform,Region,Condition,HasBox,HasManual,PurchasePrice,PurchaseDate,EstimatedValue,Notes"
