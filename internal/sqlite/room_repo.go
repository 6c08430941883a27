package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var rooms = entityTable[types.Room]{
	name:    types.TableRooms,
	columns: []string{"id", "property_id", "name", "room_type", "floor", "notes", "created_at", "updated_at"},
	scan:    hydrateRoom,
}

func hydrateRoom(s RowScanner) (types.Room, error) {
	var r types.Room
	err := s.Scan(&r.ID, &r.PropertyID, &r.Name, &r.RoomType, &r.Floor, &r.Notes,
		tsCol(&r.CreatedAt), tsCol(&r.UpdatedAt))
	if err != nil {
		return types.Room{}, fmt.Errorf("hydrating room: %w", err)
	}
	return r, nil
}

// RoomRepo stores rooms.
type RoomRepo struct{ repo }

func (r *RoomRepo) Get(ctx context.Context, id string) (*types.Room, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return rooms.get(ctx, q, id)
}

func (r *RoomRepo) List(ctx context.Context) ([]types.Room, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return rooms.list(ctx, q, "", "property_id, name COLLATE NOCASE, id")
}

// ListByProperty returns the property's rooms ordered by name.
func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Room, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return rooms.list(ctx, q, "property_id = ?", "name COLLATE NOCASE, id", propertyID)
}

func (r *RoomRepo) CountByProperty(ctx context.Context, propertyID string) (int, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return 0, err
	}
	n, err := scanInt(q.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE property_id = ?`, propertyID))
	if err != nil {
		return 0, fmt.Errorf("counting rooms: %w", err)
	}
	return n, nil
}

func (r *RoomRepo) Create(ctx context.Context, room *types.Room) (*types.Room, error) {
	if room == nil || room.Name == "" || room.PropertyID == "" {
		return nil, fmt.Errorf("%w: room name and property are required", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(room.ID)
	now := fmtTime(r.backend.stamp())
	err = rooms.insert(ctx, q, map[string]any{
		"id":          id,
		"property_id": room.PropertyID,
		"name":        room.Name,
		"room_type":   room.RoomType,
		"floor":       room.Floor,
		"notes":       room.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return rooms.reread(ctx, q, id)
}

func (r *RoomRepo) Update(ctx context.Context, id string, patch types.RoomPatch) (*types.Room, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("name", patch.Name)
	p.text("room_type", patch.RoomType)
	p.integer("floor", patch.Floor)
	p.text("notes", patch.Notes)
	return rooms.update(ctx, q, id, &p, r.backend.stamp())
}

// Delete removes the room. Measurements in it go with it; assets, expenses,
// and other rows that merely reference it keep existing with the reference
// cleared.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return rooms.delete(ctx, q, id)
}
