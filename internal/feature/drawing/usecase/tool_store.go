// Package usecase implements the business logic for drawing tool
// management: the authoritative tool store, the duplicate offset strategy,
// and the undoable commands that wrap store mutations.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
)

// SnapshotRepository abstracts the persistence layer for tool snapshots.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SnapshotRepository interface {
	// Save persists the snapshot for a chart, replacing any previous one.
	Save(ctx context.Context, chartID string, snap entity.Snapshot) error

	// Load retrieves the last persisted snapshot for a chart.
	// It returns domain.ErrSnapshotNotFound when none exists.
	Load(ctx context.Context, chartID string) (entity.Snapshot, error)
}

// ChangeHook is notified after every committed mutation with a snapshot of
// the new store contents. Hooks run synchronously on the mutating event;
// anything slow (persistence, network) must debounce or defer internally.
type ChangeHook func(snap entity.Snapshot)

// ToolPatch describes a partial update. Nil fields are left untouched;
// a non-nil Points slice replaces the point list wholesale.
type ToolPatch struct {
	Points  []entity.Point
	Style   *entity.Style
	Visible *bool
	Locked  *bool
}

// touchesGeometry reports whether the patch modifies anything beyond the
// lock flag. Unlocking a locked tool is always allowed.
func (p ToolPatch) touchesGeometry() bool {
	return p.Points != nil || p.Style != nil || p.Visible != nil
}

// ToolStore is the authoritative, versioned collection of drawing tools for
// one chart. It owns the tool list exclusively; other components mutate it
// only through these operations.
//
// The store is single-threaded by design: it is driven by the serialized
// pointer-event stream of one chart view, so there is no internal locking.
// Construct one store per chart instance.
type ToolStore struct {
	tools   []entity.DrawingTool // draw order
	version int
	hooks   []ChangeHook

	now   func() time.Time
	newID func() string
}

// NewToolStore creates an empty tool store.
func NewToolStore() *ToolStore {
	return &ToolStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewTool builds a tool with defaults applied (visible, unlocked, no id).
// The id and timestamps are assigned by the store on Add.
func NewTool(toolType entity.ToolType, points []entity.Point, style entity.Style) entity.DrawingTool {
	return entity.DrawingTool{
		Type:    toolType,
		Points:  points,
		Style:   style,
		Visible: true,
	}
}

// validate checks the type and point-count invariant for a tool.
func validate(tool entity.DrawingTool) error {
	if !tool.Type.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownToolType, tool.Type)
	}
	if len(tool.Points) != tool.Type.PointCount() {
		return fmt.Errorf("%w: type %q needs %d, got %d",
			domain.ErrInvalidPointCount, tool.Type, tool.Type.PointCount(), len(tool.Points))
	}
	return nil
}

// OnChange registers a hook that fires after every committed mutation.
func (s *ToolStore) OnChange(hook ChangeHook) {
	s.hooks = append(s.hooks, hook)
}

// Version returns the store's monotonic revision counter.
func (s *ToolStore) Version() int {
	return s.version
}

// Len returns the number of tools in the store.
func (s *ToolStore) Len() int {
	return len(s.tools)
}

func (s *ToolStore) indexOf(id string) int {
	for i := range s.tools {
		if s.tools[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ToolStore) committed() {
	s.version++
	if len(s.hooks) == 0 {
		return
	}
	snap := s.Export()
	for _, hook := range s.hooks {
		hook(snap)
	}
}

// Add inserts a tool, assigning a fresh id and creation timestamps unless
// the tool already carries an id (re-adds from undo/redo keep identity).
func (s *ToolStore) Add(tool entity.DrawingTool) (entity.DrawingTool, error) {
	if err := validate(tool); err != nil {
		return entity.DrawingTool{}, err
	}

	t := tool.Clone()
	if t.ID == "" {
		t.ID = s.newID()
		t.CreatedAt = s.now()
	} else if idx := s.indexOf(t.ID); idx >= 0 {
		return entity.DrawingTool{}, fmt.Errorf("add %q: id already present", t.ID)
	}
	t.UpdatedAt = s.now()

	s.tools = append(s.tools, t)
	s.committed()
	return t.Clone(), nil
}

// Update applies a partial update to a tool. Locked tools only accept
// patches that clear the lock. Unknown ids report domain.ErrToolNotFound.
func (s *ToolStore) Update(id string, patch ToolPatch) (entity.DrawingTool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return entity.DrawingTool{}, fmt.Errorf("update %q: %w", id, domain.ErrToolNotFound)
	}
	t := &s.tools[idx]
	if t.Locked && patch.touchesGeometry() {
		return entity.DrawingTool{}, fmt.Errorf("update %q: %w", id, domain.ErrToolLocked)
	}

	if patch.Points != nil {
		candidate := t.Clone()
		candidate.Points = append([]entity.Point(nil), patch.Points...)
		if err := validate(candidate); err != nil {
			return entity.DrawingTool{}, err
		}
		t.Points = candidate.Points
	}
	if patch.Style != nil {
		t.Style = *patch.Style
	}
	if patch.Visible != nil {
		t.Visible = *patch.Visible
	}
	if patch.Locked != nil {
		t.Locked = *patch.Locked
	}
	t.UpdatedAt = s.now()

	s.committed()
	return t.Clone(), nil
}

// Delete removes a tool. A second delete of the same id is a no-op failure:
// it reports domain.ErrToolNotFound and leaves the store unchanged.
func (s *ToolStore) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %q: %w", id, domain.ErrToolNotFound)
	}
	if s.tools[idx].Locked {
		return fmt.Errorf("delete %q: %w", id, domain.ErrToolLocked)
	}

	s.tools = append(s.tools[:idx], s.tools[idx+1:]...)
	s.committed()
	return nil
}

// Clear removes every tool in one committed mutation.
func (s *ToolStore) Clear() {
	if len(s.tools) == 0 {
		return
	}
	s.tools = nil
	s.committed()
}

// GetTool returns a copy of the tool with the given id.
func (s *ToolStore) GetTool(id string) (entity.DrawingTool, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return entity.DrawingTool{}, false
	}
	return s.tools[idx].Clone(), true
}

// Filter returns copies of all tools matching the predicate, in draw order.
func (s *ToolStore) Filter(pred func(entity.DrawingTool) bool) []entity.DrawingTool {
	var out []entity.DrawingTool
	for i := range s.tools {
		if pred(s.tools[i]) {
			out = append(out, s.tools[i].Clone())
		}
	}
	return out
}

// All returns copies of every tool in draw order.
func (s *ToolStore) All() []entity.DrawingTool {
	return s.Filter(func(entity.DrawingTool) bool { return true })
}

// LoadAll replaces the store contents with the given tools, preserving
// their ids. Used on import and reload. Validation failures leave the
// store untouched.
func (s *ToolStore) LoadAll(tools []entity.DrawingTool) error {
	replacement := make([]entity.DrawingTool, 0, len(tools))
	seen := make(map[string]struct{}, len(tools))
	for i := range tools {
		t := tools[i].Clone()
		if err := validate(t); err != nil {
			return fmt.Errorf("load tool %d: %w", i, err)
		}
		if t.ID == "" {
			t.ID = s.newID()
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("load tool %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
		replacement = append(replacement, t)
	}

	s.tools = replacement
	s.committed()
	return nil
}

// Export returns a deep-copied snapshot of the store's contents.
func (s *ToolStore) Export() entity.Snapshot {
	tools := make([]entity.DrawingTool, 0, len(s.tools))
	for i := range s.tools {
		tools = append(tools, s.tools[i].Clone())
	}
	return entity.Snapshot{
		Version: s.version,
		Tools:   tools,
	}
}
