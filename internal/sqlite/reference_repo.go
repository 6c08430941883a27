package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var paintCodes = entityTable[types.PaintCode]{
	name: types.TablePaintCodes,
	columns: []string{
		"id", "property_id", "room_id", "location", "brand", "color_name", "color_code",
		"finish", "notes", "created_at", "updated_at",
	},
	scan: hydratePaintCode,
}

func hydratePaintCode(s RowScanner) (types.PaintCode, error) {
	var p types.PaintCode
	err := s.Scan(&p.ID, &p.PropertyID, nullRefCol(&p.RoomID), &p.Location, &p.Brand,
		&p.ColorName, &p.ColorCode, &p.Finish, &p.Notes, tsCol(&p.CreatedAt), tsCol(&p.UpdatedAt))
	if err != nil {
		return types.PaintCode{}, fmt.Errorf("hydrating paint code: %w", err)
	}
	return p, nil
}

// PaintCodeRepo stores paint codes.
type PaintCodeRepo struct{ repo }

func (r *PaintCodeRepo) Get(ctx context.Context, id string) (*types.PaintCode, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return paintCodes.get(ctx, q, id)
}

func (r *PaintCodeRepo) List(ctx context.Context) ([]types.PaintCode, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return paintCodes.list(ctx, q, "", "property_id, location COLLATE NOCASE, id")
}

func (r *PaintCodeRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.PaintCode, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return paintCodes.list(ctx, q, "property_id = ?", "location COLLATE NOCASE, id", propertyID)
}

func (r *PaintCodeRepo) Create(ctx context.Context, p *types.PaintCode) (*types.PaintCode, error) {
	if p == nil || p.PropertyID == "" {
		return nil, fmt.Errorf("%w: paint code needs a property", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(p.ID)
	now := fmtTime(r.backend.stamp())
	err = paintCodes.insert(ctx, q, map[string]any{
		"id":          id,
		"property_id": p.PropertyID,
		"room_id":     refArg(p.RoomID),
		"location":    p.Location,
		"brand":       p.Brand,
		"color_name":  p.ColorName,
		"color_code":  p.ColorCode,
		"finish":      p.Finish,
		"notes":       p.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return paintCodes.reread(ctx, q, id)
}

func (r *PaintCodeRepo) Update(ctx context.Context, id string, patch types.PaintCodePatch) (*types.PaintCode, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.text("location", patch.Location)
	p.text("brand", patch.Brand)
	p.text("color_name", patch.ColorName)
	p.text("color_code", patch.ColorCode)
	p.text("finish", patch.Finish)
	p.text("notes", patch.Notes)
	return paintCodes.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *PaintCodeRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return paintCodes.delete(ctx, q, id)
}

var emergencyShutoffs = entityTable[types.EmergencyShutoff]{
	name: types.TableEmergencyShutoffs,
	columns: []string{
		"id", "property_id", "shutoff_type", "location", "instructions", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateEmergencyShutoff,
}

func hydrateEmergencyShutoff(s RowScanner) (types.EmergencyShutoff, error) {
	var e types.EmergencyShutoff
	err := s.Scan(&e.ID, &e.PropertyID, &e.ShutoffType, &e.Location, &e.Instructions, &e.Notes,
		tsCol(&e.CreatedAt), tsCol(&e.UpdatedAt))
	if err != nil {
		return types.EmergencyShutoff{}, fmt.Errorf("hydrating emergency shutoff: %w", err)
	}
	return e, nil
}

// EmergencyShutoffRepo stores utility shutoff locations.
type EmergencyShutoffRepo struct{ repo }

func (r *EmergencyShutoffRepo) Get(ctx context.Context, id string) (*types.EmergencyShutoff, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return emergencyShutoffs.get(ctx, q, id)
}

func (r *EmergencyShutoffRepo) List(ctx context.Context) ([]types.EmergencyShutoff, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return emergencyShutoffs.list(ctx, q, "", "property_id, shutoff_type, id")
}

func (r *EmergencyShutoffRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.EmergencyShutoff, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return emergencyShutoffs.list(ctx, q, "property_id = ?", "shutoff_type, id", propertyID)
}

func (r *EmergencyShutoffRepo) Create(ctx context.Context, e *types.EmergencyShutoff) (*types.EmergencyShutoff, error) {
	if e == nil || e.PropertyID == "" || e.ShutoffType == "" {
		return nil, fmt.Errorf("%w: shutoff needs a property and a type", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(e.ID)
	now := fmtTime(r.backend.stamp())
	err = emergencyShutoffs.insert(ctx, q, map[string]any{
		"id":           id,
		"property_id":  e.PropertyID,
		"shutoff_type": e.ShutoffType,
		"location":     e.Location,
		"instructions": e.Instructions,
		"notes":        e.Notes,
		"created_at":   now,
		"updated_at":   now,
	})
	if err != nil {
		return nil, err
	}
	return emergencyShutoffs.reread(ctx, q, id)
}

func (r *EmergencyShutoffRepo) Update(ctx context.Context, id string, patch types.EmergencyShutoffPatch) (*types.EmergencyShutoff, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("shutoff_type", patch.ShutoffType)
	p.text("location", patch.Location)
	p.text("instructions", patch.Instructions)
	p.text("notes", patch.Notes)
	return emergencyShutoffs.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *EmergencyShutoffRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return emergencyShutoffs.delete(ctx, q, id)
}

var measurements = entityTable[types.Measurement]{
	name: types.TableMeasurements,
	columns: []string{
		"id", "property_id", "room_id", "asset_id", "name", "value", "unit", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateMeasurement,
}

func hydrateMeasurement(s RowScanner) (types.Measurement, error) {
	var m types.Measurement
	err := s.Scan(&m.ID, &m.PropertyID, nullRefCol(&m.RoomID), nullRefCol(&m.AssetID), &m.Name,
		&m.Value, &m.Unit, &m.Notes, tsCol(&m.CreatedAt), tsCol(&m.UpdatedAt))
	if err != nil {
		return types.Measurement{}, fmt.Errorf("hydrating measurement: %w", err)
	}
	return m, nil
}

// MeasurementRepo stores recorded dimensions.
type MeasurementRepo struct{ repo }

func (r *MeasurementRepo) Get(ctx context.Context, id string) (*types.Measurement, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return measurements.get(ctx, q, id)
}

func (r *MeasurementRepo) List(ctx context.Context) ([]types.Measurement, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return measurements.list(ctx, q, "", "property_id, name COLLATE NOCASE, id")
}

func (r *MeasurementRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Measurement, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return measurements.list(ctx, q, "property_id = ?", "name COLLATE NOCASE, id", propertyID)
}

func (r *MeasurementRepo) ListByRoom(ctx context.Context, roomID string) ([]types.Measurement, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return measurements.list(ctx, q, "room_id = ?", "name COLLATE NOCASE, id", roomID)
}

func (r *MeasurementRepo) Create(ctx context.Context, m *types.Measurement) (*types.Measurement, error) {
	if m == nil || m.PropertyID == "" || m.Name == "" {
		return nil, fmt.Errorf("%w: measurement needs a property and a name", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(m.ID)
	now := fmtTime(r.backend.stamp())
	err = measurements.insert(ctx, q, map[string]any{
		"id":          id,
		"property_id": m.PropertyID,
		"room_id":     refArg(m.RoomID),
		"asset_id":    refArg(m.AssetID),
		"name":        m.Name,
		"value":       m.Value.InexactFloat64(),
		"unit":        m.Unit,
		"notes":       m.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return measurements.reread(ctx, q, id)
}

func (r *MeasurementRepo) Update(ctx context.Context, id string, patch types.MeasurementPatch) (*types.Measurement, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.ref("asset_id", patch.AssetID)
	p.required("name", patch.Name)
	p.money("value", patch.Value)
	p.text("unit", patch.Unit)
	p.text("notes", patch.Notes)
	return measurements.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *MeasurementRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return measurements.delete(ctx, q, id)
}

var storageBoxes = entityTable[types.StorageBox]{
	name: types.TableStorageBoxes,
	columns: []string{
		"id", "property_id", "room_id", "name", "location", "contents", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateStorageBox,
}

func hydrateStorageBox(s RowScanner) (types.StorageBox, error) {
	var b types.StorageBox
	err := s.Scan(&b.ID, &b.PropertyID, nullRefCol(&b.RoomID), &b.Name, &b.Location, &b.Contents,
		&b.Notes, tsCol(&b.CreatedAt), tsCol(&b.UpdatedAt))
	if err != nil {
		return types.StorageBox{}, fmt.Errorf("hydrating storage box: %w", err)
	}
	return b, nil
}

// StorageBoxRepo stores labeled containers.
type StorageBoxRepo struct{ repo }

func (r *StorageBoxRepo) Get(ctx context.Context, id string) (*types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return storageBoxes.get(ctx, q, id)
}

func (r *StorageBoxRepo) List(ctx context.Context) ([]types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return storageBoxes.list(ctx, q, "", "property_id, name COLLATE NOCASE, id")
}

func (r *StorageBoxRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return storageBoxes.list(ctx, q, "property_id = ?", "name COLLATE NOCASE, id", propertyID)
}

func (r *StorageBoxRepo) ListByRoom(ctx context.Context, roomID string) ([]types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return storageBoxes.list(ctx, q, "room_id = ?", "name COLLATE NOCASE, id", roomID)
}

// Search returns boxes whose name or contents contain term.
func (r *StorageBoxRepo) Search(ctx context.Context, term string) ([]types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(term)
	return storageBoxes.list(ctx, q, `name LIKE ? ESCAPE '\' OR contents LIKE ? ESCAPE '\'`,
		"name COLLATE NOCASE, id", pattern, pattern)
}

func (r *StorageBoxRepo) Create(ctx context.Context, b *types.StorageBox) (*types.StorageBox, error) {
	if b == nil || b.PropertyID == "" || b.Name == "" {
		return nil, fmt.Errorf("%w: storage box needs a property and a name", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(b.ID)
	now := fmtTime(r.backend.stamp())
	err = storageBoxes.insert(ctx, q, map[string]any{
		"id":          id,
		"property_id": b.PropertyID,
		"room_id":     refArg(b.RoomID),
		"name":        b.Name,
		"location":    b.Location,
		"contents":    b.Contents,
		"notes":       b.Notes,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return storageBoxes.reread(ctx, q, id)
}

func (r *StorageBoxRepo) Update(ctx context.Context, id string, patch types.StorageBoxPatch) (*types.StorageBox, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("room_id", patch.RoomID)
	p.required("name", patch.Name)
	p.text("location", patch.Location)
	p.text("contents", patch.Contents)
	p.text("notes", patch.Notes)
	return storageBoxes.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *StorageBoxRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return storageBoxes.delete(ctx, q, id)
}

var wifiNetworks = entityTable[types.WiFiInfo]{
	name: types.TableWiFiInfo,
	columns: []string{
		"id", "property_id", "network_name", "password", "security_type", "is_guest", "notes",
		"created_at", "updated_at",
	},
	scan: hydrateWiFiInfo,
}

func hydrateWiFiInfo(s RowScanner) (types.WiFiInfo, error) {
	var w types.WiFiInfo
	err := s.Scan(&w.ID, &w.PropertyID, &w.NetworkName, &w.Password, &w.SecurityType,
		boolCol(&w.IsGuest), &w.Notes, tsCol(&w.CreatedAt), tsCol(&w.UpdatedAt))
	if err != nil {
		return types.WiFiInfo{}, fmt.Errorf("hydrating wifi info: %w", err)
	}
	return w, nil
}

// WiFiRepo stores wireless networks.
type WiFiRepo struct{ repo }

func (r *WiFiRepo) Get(ctx context.Context, id string) (*types.WiFiInfo, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return wifiNetworks.get(ctx, q, id)
}

func (r *WiFiRepo) List(ctx context.Context) ([]types.WiFiInfo, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return wifiNetworks.list(ctx, q, "", "property_id, is_guest, network_name, id")
}

// ListByProperty returns the property's networks, primary networks first.
func (r *WiFiRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.WiFiInfo, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return wifiNetworks.list(ctx, q, "property_id = ?", "is_guest, network_name, id", propertyID)
}

func (r *WiFiRepo) Create(ctx context.Context, w *types.WiFiInfo) (*types.WiFiInfo, error) {
	if w == nil || w.PropertyID == "" || w.NetworkName == "" {
		return nil, fmt.Errorf("%w: wifi network needs a property and a name", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(w.ID)
	now := fmtTime(r.backend.stamp())
	err = wifiNetworks.insert(ctx, q, map[string]any{
		"id":            id,
		"property_id":   w.PropertyID,
		"network_name":  w.NetworkName,
		"password":      w.Password,
		"security_type": w.SecurityType,
		"is_guest":      boolInt(w.IsGuest),
		"notes":         w.Notes,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}
	return wifiNetworks.reread(ctx, q, id)
}

func (r *WiFiRepo) Update(ctx context.Context, id string, patch types.WiFiInfoPatch) (*types.WiFiInfo, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.required("network_name", patch.NetworkName)
	p.text("password", patch.Password)
	p.text("security_type", patch.SecurityType)
	p.flag("is_guest", patch.IsGuest)
	p.text("notes", patch.Notes)
	return wifiNetworks.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *WiFiRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return wifiNetworks.delete(ctx, q, id)
}
