package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

var documents = entityTable[types.Document]{
	name: types.TableDocuments,
	columns: []string{
		"id", "property_id", "asset_id", "worker_id", "title", "document_type", "file_uri",
		"mime_type", "file_size", "expiration_date", "notes", "created_at", "updated_at",
	},
	scan: hydrateDocument,
}

func hydrateDocument(s RowScanner) (types.Document, error) {
	var d types.Document
	err := s.Scan(&d.ID, nullRefCol(&d.PropertyID), nullRefCol(&d.AssetID), nullRefCol(&d.WorkerID),
		&d.Title, &d.DocumentType, &d.FileURI, &d.MimeType, &d.FileSize,
		nullDayCol(&d.ExpirationDate), &d.Notes, tsCol(&d.CreatedAt), tsCol(&d.UpdatedAt))
	if err != nil {
		return types.Document{}, fmt.Errorf("hydrating document: %w", err)
	}
	return d, nil
}

const documentOrder = "created_at DESC, id DESC"

// DocumentRepo stores document references.
type DocumentRepo struct{ repo }

func (r *DocumentRepo) Get(ctx context.Context, id string) (*types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return documents.get(ctx, q, id)
}

func (r *DocumentRepo) List(ctx context.Context) ([]types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return documents.list(ctx, q, "", documentOrder)
}

func (r *DocumentRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return documents.list(ctx, q, "property_id = ?", documentOrder, propertyID)
}

func (r *DocumentRepo) ListByAsset(ctx context.Context, assetID string) ([]types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return documents.list(ctx, q, "asset_id = ?", documentOrder, assetID)
}

func (r *DocumentRepo) ListByWorker(ctx context.Context, workerID string) ([]types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return documents.list(ctx, q, "worker_id = ?", documentOrder, workerID)
}

// GetExpiring returns documents expiring between today and daysAhead days
// from now, soonest first.
func (r *DocumentRepo) GetExpiring(ctx context.Context, daysAhead int) ([]types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	today := r.backend.today()
	return documents.list(ctx, q,
		"expiration_date >= ? AND expiration_date <= ?",
		"expiration_date, title COLLATE NOCASE, id",
		fmtDate(today), fmtDate(today.AddDate(0, 0, daysAhead)))
}

func (r *DocumentRepo) Create(ctx context.Context, d *types.Document) (*types.Document, error) {
	if d == nil || d.Title == "" {
		return nil, fmt.Errorf("%w: document title is required", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(d.ID)
	now := fmtTime(r.backend.stamp())
	err = documents.insert(ctx, q, map[string]any{
		"id":              id,
		"property_id":     refArg(d.PropertyID),
		"asset_id":        refArg(d.AssetID),
		"worker_id":       refArg(d.WorkerID),
		"title":           d.Title,
		"document_type":   d.DocumentType,
		"file_uri":        d.FileURI,
		"mime_type":       d.MimeType,
		"file_size":       d.FileSize,
		"expiration_date": dateArg(d.ExpirationDate),
		"notes":           d.Notes,
		"created_at":      now,
		"updated_at":      now,
	})
	if err != nil {
		return nil, err
	}
	return documents.reread(ctx, q, id)
}

func (r *DocumentRepo) Update(ctx context.Context, id string, patch types.DocumentPatch) (*types.Document, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("property_id", patch.PropertyID)
	p.ref("asset_id", patch.AssetID)
	p.ref("worker_id", patch.WorkerID)
	p.required("title", patch.Title)
	p.text("document_type", patch.DocumentType)
	p.text("file_uri", patch.FileURI)
	p.text("mime_type", patch.MimeType)
	p.integer64("file_size", patch.FileSize)
	p.date("expiration_date", patch.ExpirationDate)
	p.text("notes", patch.Notes)
	return documents.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return documents.delete(ctx, q, id)
}

var notes = entityTable[types.Note]{
	name: types.TableNotes,
	columns: []string{
		"id", "property_id", "asset_id", "title", "content", "is_pinned",
		"created_at", "updated_at",
	},
	scan: hydrateNote,
}

func hydrateNote(s RowScanner) (types.Note, error) {
	var n types.Note
	err := s.Scan(&n.ID, nullRefCol(&n.PropertyID), nullRefCol(&n.AssetID), &n.Title, &n.Content,
		boolCol(&n.IsPinned), tsCol(&n.CreatedAt), tsCol(&n.UpdatedAt))
	if err != nil {
		return types.Note{}, fmt.Errorf("hydrating note: %w", err)
	}
	return n, nil
}

// Pinned notes first, then most recently edited.
const noteOrder = "is_pinned DESC, updated_at DESC, id DESC"

// NoteRepo stores free-form notes.
type NoteRepo struct{ repo }

func (r *NoteRepo) Get(ctx context.Context, id string) (*types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return notes.get(ctx, q, id)
}

func (r *NoteRepo) List(ctx context.Context) ([]types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return notes.list(ctx, q, "", noteOrder)
}

func (r *NoteRepo) ListByProperty(ctx context.Context, propertyID string) ([]types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return notes.list(ctx, q, "property_id = ?", noteOrder, propertyID)
}

func (r *NoteRepo) ListByAsset(ctx context.Context, assetID string) ([]types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	return notes.list(ctx, q, "asset_id = ?", noteOrder, assetID)
}

// Search returns notes whose title or content contains term.
func (r *NoteRepo) Search(ctx context.Context, term string) ([]types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(term)
	return notes.list(ctx, q, `title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`, noteOrder, pattern, pattern)
}

func (r *NoteRepo) Create(ctx context.Context, n *types.Note) (*types.Note, error) {
	if n == nil || (n.Title == "" && n.Content == "") {
		return nil, fmt.Errorf("%w: note needs a title or content", types.ErrInvalidData)
	}
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	id := ensureID(n.ID)
	now := fmtTime(r.backend.stamp())
	err = notes.insert(ctx, q, map[string]any{
		"id":          id,
		"property_id": refArg(n.PropertyID),
		"asset_id":    refArg(n.AssetID),
		"title":       n.Title,
		"content":     n.Content,
		"is_pinned":   boolInt(n.IsPinned),
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	return notes.reread(ctx, q, id)
}

func (r *NoteRepo) Update(ctx context.Context, id string, patch types.NotePatch) (*types.Note, error) {
	q, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}
	var p patchSet
	p.ref("property_id", patch.PropertyID)
	p.ref("asset_id", patch.AssetID)
	p.text("title", patch.Title)
	p.text("content", patch.Content)
	p.flag("is_pinned", patch.IsPinned)
	return notes.update(ctx, q, id, &p, r.backend.stamp())
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	q, err := r.querier(ctx)
	if err != nil {
		return err
	}
	return notes.delete(ctx, q, id)
}
