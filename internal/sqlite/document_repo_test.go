package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func TestDocumentRepo_Expiring(t *testing.T) {
	s := newTestStore(t, WithClock(fixedClock))
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")

	create := func(title string, expires *time.Time) *types.Document {
		t.Helper()
		d, err := s.Documents.Create(ctx, &types.Document{PropertyID: p.ID, Title: title, ExpirationDate: expires})
		require.NoError(t, err)
		return d
	}
	soon := create("Home insurance", types.Ptr(day(2024, time.April, 1)))
	create("Expired warranty", types.Ptr(day(2024, time.March, 1)))
	create("Deed", nil)
	create("Passport", types.Ptr(day(2025, time.January, 1)))

	expiring, err := s.Documents.GetExpiring(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, soon.ID, expiring[0].ID)

	all, err := s.Documents.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// Clearing the expiration date with the zero time.
	cleared, err := s.Documents.Update(ctx, soon.ID, types.DocumentPatch{ExpirationDate: &time.Time{}})
	require.NoError(t, err)
	assert.Nil(t, cleared.ExpirationDate)
}

func TestDocumentRepo_AssetDeleteDetaches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")
	fridge := mustAsset(t, s, types.Asset{PropertyID: p.ID, Name: "Fridge"})

	manual, err := s.Documents.Create(ctx, &types.Document{
		PropertyID: p.ID,
		AssetID:    fridge.ID,
		Title:      "Fridge manual",
		FileSize:   2048,
	})
	require.NoError(t, err)
	byAsset, err := s.Documents.ListByAsset(ctx, fridge.ID)
	require.NoError(t, err)
	assert.Len(t, byAsset, 1)

	require.NoError(t, s.Assets.Delete(ctx, fridge.ID))
	got, err := s.Documents.Get(ctx, manual.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AssetID)
	assert.Equal(t, int64(2048), got.FileSize)
}

func TestNoteRepo_OrderAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")

	older, err := s.Notes.Create(ctx, &types.Note{PropertyID: p.ID, Title: "Gate code", Content: "4821"})
	require.NoError(t, err)
	pinned, err := s.Notes.Create(ctx, &types.Note{PropertyID: p.ID, Title: "Alarm", Content: "call 555-0100", IsPinned: true})
	require.NoError(t, err)
	newer, err := s.Notes.Create(ctx, &types.Note{PropertyID: p.ID, Content: "Trash goes out Tuesday"})
	require.NoError(t, err)

	list, err := s.Notes.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{pinned.ID, newer.ID, older.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	// Editing a note moves it ahead of other unpinned notes.
	_, err = s.Notes.Update(ctx, older.ID, types.NotePatch{Content: types.Ptr("4822")})
	require.NoError(t, err)
	list, err = s.Notes.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, list[1].ID)

	found, err := s.Notes.Search(ctx, "tuesday")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, newer.ID, found[0].ID)

	_, err = s.Notes.Create(ctx, &types.Note{PropertyID: p.ID})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestAssetRepo_ExpiringWarrantyAndSearch(t *testing.T) {
	s := newTestStore(t, WithClock(fixedClock))
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")
	kitchen := mustRoom(t, s, p.ID, "Kitchen")

	dishwasher := mustAsset(t, s, types.Asset{
		PropertyID: p.ID, RoomID: kitchen.ID, Name: "Dishwasher", Brand: "Bosch",
		WarrantyExpiration: types.Ptr(day(2024, time.April, 10)),
	})
	mustAsset(t, s, types.Asset{
		PropertyID: p.ID, Name: "Furnace",
		WarrantyExpiration: types.Ptr(day(2027, time.January, 1)),
	})
	mustAsset(t, s, types.Asset{
		PropertyID: p.ID, Name: "Old TV",
		WarrantyExpiration: types.Ptr(day(2020, time.January, 1)),
	})

	expiring, err := s.Assets.GetWithExpiringWarranty(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, dishwasher.ID, expiring[0].ID)

	found, err := s.Assets.Search(ctx, p.ID, "bosch")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, dishwasher.ID, found[0].ID)

	inKitchen, err := s.Assets.ListByRoom(ctx, kitchen.ID)
	require.NoError(t, err)
	assert.Len(t, inKitchen, 1)
}

func TestReferenceRepos(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustProperty(t, s, "Lake House")
	garage := mustRoom(t, s, p.ID, "Garage")

	paint, err := s.PaintCodes.Create(ctx, &types.PaintCode{
		PropertyID: p.ID, RoomID: garage.ID, Location: "Walls", Brand: "Behr", ColorCode: "PPU18-06",
	})
	require.NoError(t, err)
	paints, err := s.PaintCodes.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, paints, 1)

	shutoff, err := s.EmergencyShutoffs.Create(ctx, &types.EmergencyShutoff{
		PropertyID: p.ID, ShutoffType: types.ShutoffWater, Location: "Basement, north wall",
	})
	require.NoError(t, err)
	_, err = s.EmergencyShutoffs.Update(ctx, shutoff.ID, types.EmergencyShutoffPatch{ShutoffType: types.Ptr("")})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	m, err := s.Measurements.Create(ctx, &types.Measurement{
		PropertyID: p.ID, RoomID: garage.ID, Name: "Door width", Value: money("2.74"), Unit: "m",
	})
	require.NoError(t, err)
	assertMoney(t, "2.74", m.Value)
	byRoom, err := s.Measurements.ListByRoom(ctx, garage.ID)
	require.NoError(t, err)
	assert.Len(t, byRoom, 1)

	_, err = s.StorageBoxes.Create(ctx, &types.StorageBox{
		PropertyID: p.ID, RoomID: garage.ID, Name: "Box 1", Contents: "Christmas lights, tinsel",
	})
	require.NoError(t, err)
	_, err = s.StorageBoxes.Create(ctx, &types.StorageBox{PropertyID: p.ID, Name: "Lights spares"})
	require.NoError(t, err)
	found, err := s.StorageBoxes.Search(ctx, "lights")
	require.NoError(t, err)
	assert.Len(t, found, 2)
	boxes, err := s.StorageBoxes.ListByRoom(ctx, garage.ID)
	require.NoError(t, err)
	assert.Len(t, boxes, 1)

	guest, err := s.WiFi.Create(ctx, &types.WiFiInfo{PropertyID: p.ID, NetworkName: "Lake-Guest", IsGuest: true})
	require.NoError(t, err)
	main, err := s.WiFi.Create(ctx, &types.WiFiInfo{PropertyID: p.ID, NetworkName: "Lake", Password: "hunter2"})
	require.NoError(t, err)
	networks, err := s.WiFi.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, main.ID, networks[0].ID)
	assert.Equal(t, guest.ID, networks[1].ID)

	// Deleting the garage keeps paint and boxes but drops its measurements.
	require.NoError(t, s.Rooms.Delete(ctx, garage.ID))
	gotPaint, err := s.PaintCodes.Get(ctx, paint.ID)
	require.NoError(t, err)
	assert.Empty(t, gotPaint.RoomID)
	byRoom, err = s.Measurements.ListByProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, byRoom)
}
