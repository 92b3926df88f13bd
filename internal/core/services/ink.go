package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/geometry"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure InkService implements the interface.
var _ driving.InkService = (*InkService)(nil)

// DefaultUndoDepth is the undo stack cap. The oldest record is dropped
// when a new mutation would exceed it.
const DefaultUndoDepth = 20

// defaultEpsilon is the Douglas-Peucker tolerance in page units.
const defaultEpsilon = 1.5

// InkService mutates a host document's live annotation set and drives
// the bounded undo/redo stacks. All mutations must happen on a single
// logical thread tied to the bound document's lifetime.
type InkService struct {
	store driven.AnnotationStore

	host       driven.HostDocument
	userID     string
	documentID string

	undo  []domain.UndoRecord
	redo  []domain.UndoRecord
	dirty bool

	// session registers stroke IDs created since the last Bind. It is
	// the fallback ownership tier for strokes whose durable tag is not
	// readable, and is cleared unconditionally on every rebind.
	session map[string]struct{}

	undoDepth int
	epsilon   float64
	segments  int
	tension   float64
}

// InkOption configures the ink service.
type InkOption func(*InkService)

// WithUndoDepth overrides the undo stack cap.
func WithUndoDepth(depth int) InkOption {
	return func(s *InkService) {
		if depth > 0 {
			s.undoDepth = depth
		}
	}
}

// WithRefinement sets the simplification epsilon and smoothing
// parameters applied by CommitCapture.
func WithRefinement(epsilon float64, segments int, tension float64) InkOption {
	return func(s *InkService) {
		if epsilon >= 0 {
			s.epsilon = epsilon
		}
		if segments > 0 {
			s.segments = segments
		}
		if tension >= 0 && tension <= 1 {
			s.tension = tension
		}
	}
}

// NewInkServiceFromConfig creates an ink service with the refinement
// and undo parameters read from configuration, falling back to the
// defaults for unset keys.
func NewInkServiceFromConfig(store driven.AnnotationStore, cfg driven.ConfigStore) *InkService {
	var opts []InkOption
	if depth := cfg.GetInt("undo_depth"); depth > 0 {
		opts = append(opts, WithUndoDepth(depth))
	}
	epsilon := cfg.GetFloat("simplify_epsilon")
	if epsilon <= 0 {
		epsilon = defaultEpsilon
	}
	segments := cfg.GetInt("smoothing_segments")
	if segments <= 0 {
		segments = geometry.DefaultSegments
	}
	tension := cfg.GetFloat("smoothing_tension")
	if tension <= 0 || tension > 1 {
		tension = geometry.DefaultTension
	}
	opts = append(opts, WithRefinement(epsilon, segments, tension))
	return NewInkService(store, opts...)
}

// NewInkService creates a new ink service backed by the given
// annotation store.
func NewInkService(store driven.AnnotationStore, opts ...InkOption) *InkService {
	s := &InkService{
		store:     store,
		session:   make(map[string]struct{}),
		undoDepth: DefaultUndoDepth,
		epsilon:   defaultEpsilon,
		segments:  geometry.DefaultSegments,
		tension:   geometry.DefaultTension,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind attaches the service to a (user, document) pair. The undo and
// redo stacks and the session registry are reset unconditionally so
// stale identifiers never leak across documents, and the previous
// pair's cache entry is evicted.
func (s *InkService) Bind(_ context.Context, userID, documentID string, host driven.HostDocument) error {
	if userID == "" || documentID == "" || host == nil {
		return fmt.Errorf("%w: user, document and host are required", domain.ErrInvalidInput)
	}

	if s.store != nil && s.userID != "" && (s.userID != userID || s.documentID != documentID) {
		s.store.Evict(s.userID, s.documentID)
	}

	s.host = host
	s.userID = userID
	s.documentID = documentID
	s.undo = nil
	s.redo = nil
	s.session = make(map[string]struct{})
	s.dirty = false

	logger.Debug("ink: bound to user=%s document=%s (%d pages)", userID, documentID, host.PageCount())
	return nil
}

// CommitCapture runs the capture pipeline on a finished drawing
// gesture and commits the result. Eraser gestures erase along the
// transformed path instead of creating ink.
func (s *InkService) CommitCapture(ctx context.Context, in driving.CaptureInput) (*domain.Stroke, error) {
	if s.host == nil {
		return nil, domain.ErrNotBound
	}

	fp, err := s.host.Geometry(in.PageIndex)
	if err != nil {
		return nil, err
	}

	points := geometry.SurfaceToPage(in.Points, in.SurfaceWidth, in.SurfaceHeight, fp.Width, fp.Height)
	if len(points) < 2 {
		logger.Debug("ink: capture on page %d discarded (%d usable points)", in.PageIndex, len(points))
		return nil, nil
	}

	width := geometry.CompensateWidth(in.RawWidth, in.Scale)

	if in.Tool == domain.ToolEraser {
		radius := math.Max(width, 1.0)
		for _, p := range points {
			if _, err := s.EraseAt(ctx, in.PageIndex, p, radius); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	refined := geometry.Refine(points, s.epsilon, s.segments, s.tension)
	logger.Debug("ink: refined capture from %d to %d points", len(points), len(refined))

	return s.Create(ctx, driving.StrokeInput{
		Points:    refined,
		PageIndex: in.PageIndex,
		Tool:      in.Tool,
		Color:     in.Color,
		Width:     width,
	})
}

// Create builds a stroke from page-native points, attaches it to the
// host page, and pushes an add record. Degenerate input (fewer than 2
// points, non-positive width or bounds with no area) represents an
// accidental tap rather than a real stroke and is discarded silently.
func (s *InkService) Create(_ context.Context, in driving.StrokeInput) (*domain.Stroke, error) {
	if s.host == nil {
		return nil, domain.ErrNotBound
	}
	if in.Tool == domain.ToolEraser {
		logger.Debug("ink: eraser strokes are never committed as ink")
		return nil, nil
	}

	fp, err := s.host.Geometry(in.PageIndex)
	if err != nil {
		return nil, err
	}

	if len(in.Points) < 2 || in.Width <= 0 {
		logger.Debug("ink: discarding degenerate stroke (%d points, width %g)", len(in.Points), in.Width)
		return nil, nil
	}

	bounds := domain.BoundsOf(in.Points, in.Width/2+2)
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		logger.Debug("ink: discarding stroke with empty bounds on page %d", in.PageIndex)
		return nil, nil
	}

	now := time.Now()
	stroke := &domain.Stroke{
		ID:          uuid.New().String(),
		PageIndex:   in.PageIndex,
		Fingerprint: fp,
		Tool:        in.Tool,
		Color:       in.Color,
		Width:       in.Width,
		Opacity:     domain.DefaultOpacity(in.Tool),
		Points:      in.Points,
		Origin:      domain.OwnerTag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.host.Attach(in.PageIndex, stroke); err != nil {
		return nil, fmt.Errorf("attaching stroke: %w", err)
	}

	s.session[stroke.ID] = struct{}{}
	s.record(domain.UndoRecord{Action: domain.ActionAdd, Stroke: stroke, PageIndex: in.PageIndex})
	return stroke, nil
}

// Remove detaches an Inkwell-owned stroke and pushes a remove record.
func (s *InkService) Remove(_ context.Context, pageIndex int, strokeID string) error {
	if s.host == nil {
		return domain.ErrNotBound
	}

	stroke, err := s.findAttached(pageIndex, strokeID)
	if err != nil {
		return err
	}
	if !s.owned(stroke) {
		return domain.ErrForeignAnnotation
	}

	if err := s.host.Detach(pageIndex, strokeID); err != nil {
		return err
	}
	s.record(domain.UndoRecord{Action: domain.ActionRemove, Stroke: stroke, PageIndex: pageIndex})
	return nil
}

// Undo reverses the most recent mutation and moves its record to the
// redo stack. A no-op on an empty stack.
func (s *InkService) Undo(_ context.Context) (bool, error) {
	if s.host == nil {
		return false, domain.ErrNotBound
	}
	if len(s.undo) == 0 {
		return false, nil
	}

	rec := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	switch rec.Action {
	case domain.ActionAdd:
		if err := s.host.Detach(rec.PageIndex, rec.Stroke.ID); err != nil {
			return false, fmt.Errorf("undoing add: %w", err)
		}
	case domain.ActionRemove:
		if err := s.host.Attach(rec.PageIndex, rec.Stroke); err != nil {
			return false, fmt.Errorf("undoing remove: %w", err)
		}
	}

	// The record keeps its tag so redo replays the original action.
	s.redo = append(s.redo, rec)
	s.dirty = true
	return true, nil
}

// Redo replays the most recently undone mutation. A no-op on an empty
// stack.
func (s *InkService) Redo(_ context.Context) (bool, error) {
	if s.host == nil {
		return false, domain.ErrNotBound
	}
	if len(s.redo) == 0 {
		return false, nil
	}

	rec := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	switch rec.Action {
	case domain.ActionAdd:
		if err := s.host.Attach(rec.PageIndex, rec.Stroke); err != nil {
			return false, fmt.Errorf("redoing add: %w", err)
		}
	case domain.ActionRemove:
		if err := s.host.Detach(rec.PageIndex, rec.Stroke.ID); err != nil {
			return false, fmt.Errorf("redoing remove: %w", err)
		}
	}

	s.pushUndo(rec)
	s.dirty = true
	return true, nil
}

// ClearPage removes every Inkwell-owned stroke on the page, pushing
// one remove record per stroke so the clear can be undone
// stroke-by-stroke.
func (s *InkService) ClearPage(_ context.Context, pageIndex int) (int, error) {
	if s.host == nil {
		return 0, domain.ErrNotBound
	}

	attached, err := s.host.Attached(pageIndex)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, stroke := range attached {
		if !s.owned(stroke) {
			continue
		}
		if err := s.host.Detach(pageIndex, stroke.ID); err != nil {
			return removed, err
		}
		s.record(domain.UndoRecord{Action: domain.ActionRemove, Stroke: stroke, PageIndex: pageIndex})
		removed++
	}

	logger.Debug("ink: cleared %d strokes on page %d", removed, pageIndex)
	return removed, nil
}

// EraseAt removes at most one Inkwell-owned stroke within radius of
// the point. Candidates are cheap-rejected by padded bounding box
// before the exact point-to-polyline test; among the survivors the
// nearest stroke wins.
func (s *InkService) EraseAt(ctx context.Context, pageIndex int, p domain.Point, radius float64) (bool, error) {
	if s.host == nil {
		return false, domain.ErrNotBound
	}

	attached, err := s.host.Attached(pageIndex)
	if err != nil {
		return false, err
	}

	bestID := ""
	bestDist := math.Inf(1)
	for _, stroke := range attached {
		if !s.owned(stroke) {
			continue
		}
		box := stroke.Bounds(stroke.Width/2 + 2).Expand(radius)
		if !box.Contains(p) {
			continue
		}
		if d := geometry.PointToPolylineDistance(p, stroke.Points); d <= radius && d < bestDist {
			bestDist = d
			bestID = stroke.ID
		}
	}

	if bestID == "" {
		return false, nil
	}
	return true, s.Remove(ctx, pageIndex, bestID)
}

// Save snapshots the host document's Inkwell-owned strokes and writes
// them through the annotation store. Unlike geometry and parse
// failures, a write failure is surfaced: silently losing annotation
// work is unacceptable.
func (s *InkService) Save(ctx context.Context) error {
	if s.host == nil {
		return domain.ErrNotBound
	}

	doc := domain.NewAnnotationDocument(s.userID, s.documentID)
	doc.UpdatedAt = time.Now()
	for page := 0; page < s.host.PageCount(); page++ {
		attached, err := s.host.Attached(page)
		if err != nil {
			return err
		}
		for _, stroke := range attached {
			if s.owned(stroke) {
				doc.Strokes = append(doc.Strokes, *stroke.Clone())
			}
		}
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving annotations: %w", err)
	}
	s.dirty = false
	logger.Debug("ink: saved %d strokes for user=%s document=%s", len(doc.Strokes), s.userID, s.documentID)
	return nil
}

// Load reads the persisted annotation set and re-attaches it to the
// host document. Strokes whose page fingerprint no longer matches the
// current page layout are skipped; strokes parsed without geometry
// adopt the current page's fingerprint.
func (s *InkService) Load(ctx context.Context) error {
	if s.host == nil {
		return domain.ErrNotBound
	}

	doc, err := s.store.Load(ctx, s.userID, s.documentID)
	if err != nil {
		return fmt.Errorf("loading annotations: %w", err)
	}

	attachedCount := 0
	for i := range doc.Strokes {
		stroke := doc.Strokes[i].Clone()
		fp, err := s.host.Geometry(stroke.PageIndex)
		if err != nil {
			logger.Warn("ink: stroke %s references missing page %d, skipping", stroke.ID, stroke.PageIndex)
			continue
		}

		if stroke.Fingerprint.IsZero() {
			stroke.Fingerprint = fp
		} else if !stroke.Fingerprint.Matches(fp) {
			logger.Warn("ink: stroke %s no longer matches page %d layout, skipping", stroke.ID, stroke.PageIndex)
			continue
		}

		if err := s.host.Attach(stroke.PageIndex, stroke); err != nil {
			return fmt.Errorf("re-attaching stroke %s: %w", stroke.ID, err)
		}
		s.session[stroke.ID] = struct{}{}
		attachedCount++
	}

	s.dirty = false
	logger.Debug("ink: loaded %d of %d strokes for user=%s document=%s",
		attachedCount, len(doc.Strokes), s.userID, s.documentID)
	return nil
}

// Dirty reports whether there are unsaved mutations.
func (s *InkService) Dirty() bool {
	return s.dirty
}

// owned applies the two-tier ownership check: the durable origin tag
// first, then the session registry for strokes created since the last
// bind.
func (s *InkService) owned(stroke *domain.Stroke) bool {
	if stroke.Owned() {
		return true
	}
	_, ok := s.session[stroke.ID]
	return ok
}

// record pushes an undo record for a fresh mutation. Any new mutation
// invalidates previously undone operations, so the redo stack is
// cleared.
func (s *InkService) record(rec domain.UndoRecord) {
	s.pushUndo(rec)
	s.redo = nil
	s.dirty = true
}

// pushUndo appends to the undo stack, dropping the oldest record when
// the cap is exceeded.
func (s *InkService) pushUndo(rec domain.UndoRecord) {
	s.undo = append(s.undo, rec)
	if len(s.undo) > s.undoDepth {
		s.undo = s.undo[1:]
	}
}

// findAttached locates a stroke attached to the given page.
func (s *InkService) findAttached(pageIndex int, strokeID string) (*domain.Stroke, error) {
	attached, err := s.host.Attached(pageIndex)
	if err != nil {
		return nil, err
	}
	for _, stroke := range attached {
		if stroke.ID == strokeID {
			return stroke, nil
		}
	}
	return nil, domain.ErrNotFound
}
