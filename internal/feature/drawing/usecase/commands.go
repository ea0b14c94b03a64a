package usecase

import (
	"context"

	"github.com/google/uuid"

	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/shared/command"
)

// Command name tags, used for history diagnostics.
const (
	CmdAddTool       = "drawing.add_tool"
	CmdUpdateTool    = "drawing.update_tool"
	CmdDeleteTool    = "drawing.delete_tool"
	CmdDuplicateTool = "drawing.duplicate_tool"
	CmdClearTools    = "drawing.clear_tools"
)

// AddToolCommand inserts a tool into the store and removes it on undo.
type AddToolCommand struct {
	id    string
	store *ToolStore
	tool  entity.DrawingTool
	added entity.DrawingTool // populated by Execute, keeps the assigned id
}

var (
	_ command.Undoable  = (*AddToolCommand)(nil)
	_ command.Cloneable = (*AddToolCommand)(nil)
)

// NewAddToolCommand wraps a store Add as an undoable command.
func NewAddToolCommand(store *ToolStore, tool entity.DrawingTool) *AddToolCommand {
	return &AddToolCommand{id: uuid.NewString(), store: store, tool: tool}
}

func (c *AddToolCommand) ID() string   { return c.id }
func (c *AddToolCommand) Name() string { return CmdAddTool }

func (c *AddToolCommand) Execute(ctx context.Context) (any, error) {
	added, err := c.store.Add(c.tool)
	if err != nil {
		return nil, err
	}
	c.added = added
	return added, nil
}

func (c *AddToolCommand) Undo(ctx context.Context) error {
	return c.store.Delete(c.added.ID)
}

func (c *AddToolCommand) Redo(ctx context.Context) error {
	// Re-adding with the captured id preserves tool identity across
	// undo/redo cycles.
	_, err := c.store.Add(c.added)
	return err
}

func (c *AddToolCommand) Clone() command.Command {
	return NewAddToolCommand(c.store, c.tool)
}

// UpdateToolCommand applies a partial update and restores the previous
// field values on undo.
type UpdateToolCommand struct {
	id     string
	store  *ToolStore
	toolID string
	patch  ToolPatch
	prev   entity.DrawingTool // populated by Execute
}

var (
	_ command.Undoable  = (*UpdateToolCommand)(nil)
	_ command.Cloneable = (*UpdateToolCommand)(nil)
)

// NewUpdateToolCommand wraps a store Update as an undoable command.
func NewUpdateToolCommand(store *ToolStore, toolID string, patch ToolPatch) *UpdateToolCommand {
	return &UpdateToolCommand{id: uuid.NewString(), store: store, toolID: toolID, patch: patch}
}

func (c *UpdateToolCommand) ID() string   { return c.id }
func (c *UpdateToolCommand) Name() string { return CmdUpdateTool }

func (c *UpdateToolCommand) Execute(ctx context.Context) (any, error) {
	prev, ok := c.store.GetTool(c.toolID)
	if !ok {
		// Let Update produce the canonical not-found error.
		return c.store.Update(c.toolID, c.patch)
	}
	updated, err := c.store.Update(c.toolID, c.patch)
	if err != nil {
		return nil, err
	}
	c.prev = prev
	return updated, nil
}

func (c *UpdateToolCommand) Undo(ctx context.Context) error {
	restore := ToolPatch{
		Points:  c.prev.ClonePoints(),
		Style:   &c.prev.Style,
		Visible: &c.prev.Visible,
		Locked:  &c.prev.Locked,
	}
	_, err := c.store.Update(c.toolID, restore)
	return err
}

func (c *UpdateToolCommand) Redo(ctx context.Context) error {
	_, err := c.store.Update(c.toolID, c.patch)
	return err
}

func (c *UpdateToolCommand) Clone() command.Command {
	return NewUpdateToolCommand(c.store, c.toolID, c.patch)
}

// DeleteToolCommand removes a tool and re-adds it on undo. The restored
// tool keeps its id but is appended at the top of the draw order.
type DeleteToolCommand struct {
	id      string
	store   *ToolStore
	toolID  string
	removed entity.DrawingTool // populated by Execute
}

var (
	_ command.Undoable  = (*DeleteToolCommand)(nil)
	_ command.Cloneable = (*DeleteToolCommand)(nil)
)

// NewDeleteToolCommand wraps a store Delete as an undoable command.
func NewDeleteToolCommand(store *ToolStore, toolID string) *DeleteToolCommand {
	return &DeleteToolCommand{id: uuid.NewString(), store: store, toolID: toolID}
}

func (c *DeleteToolCommand) ID() string   { return c.id }
func (c *DeleteToolCommand) Name() string { return CmdDeleteTool }

func (c *DeleteToolCommand) Execute(ctx context.Context) (any, error) {
	removed, ok := c.store.GetTool(c.toolID)
	if !ok {
		return nil, c.store.Delete(c.toolID)
	}
	if err := c.store.Delete(c.toolID); err != nil {
		return nil, err
	}
	c.removed = removed
	return removed, nil
}

func (c *DeleteToolCommand) Undo(ctx context.Context) error {
	_, err := c.store.Add(c.removed)
	return err
}

func (c *DeleteToolCommand) Redo(ctx context.Context) error {
	return c.store.Delete(c.toolID)
}

func (c *DeleteToolCommand) Clone() command.Command {
	return NewDeleteToolCommand(c.store, c.toolID)
}

// DuplicateToolCommand duplicates a tool and deletes the copy on undo.
type DuplicateToolCommand struct {
	id       string
	store    *ToolStore
	sourceID string
	copy     entity.DrawingTool // populated by Execute
}

var (
	_ command.Undoable  = (*DuplicateToolCommand)(nil)
	_ command.Cloneable = (*DuplicateToolCommand)(nil)
)

// NewDuplicateToolCommand wraps a store Duplicate as an undoable command.
func NewDuplicateToolCommand(store *ToolStore, sourceID string) *DuplicateToolCommand {
	return &DuplicateToolCommand{id: uuid.NewString(), store: store, sourceID: sourceID}
}

func (c *DuplicateToolCommand) ID() string   { return c.id }
func (c *DuplicateToolCommand) Name() string { return CmdDuplicateTool }

func (c *DuplicateToolCommand) Execute(ctx context.Context) (any, error) {
	copyTool, err := c.store.Duplicate(c.sourceID)
	if err != nil {
		return nil, err
	}
	c.copy = copyTool
	return copyTool, nil
}

func (c *DuplicateToolCommand) Undo(ctx context.Context) error {
	return c.store.Delete(c.copy.ID)
}

func (c *DuplicateToolCommand) Redo(ctx context.Context) error {
	// Redo restores the captured copy rather than re-running the offset,
	// so the tool reappears exactly where the user saw it.
	_, err := c.store.Add(c.copy)
	return err
}

func (c *DuplicateToolCommand) Clone() command.Command {
	return NewDuplicateToolCommand(c.store, c.sourceID)
}

// ClearToolsCommand removes every tool and restores the previous contents
// on undo.
type ClearToolsCommand struct {
	id    string
	store *ToolStore
	prev  []entity.DrawingTool // populated by Execute
}

var (
	_ command.Undoable  = (*ClearToolsCommand)(nil)
	_ command.Cloneable = (*ClearToolsCommand)(nil)
)

// NewClearToolsCommand wraps a store Clear as an undoable command.
func NewClearToolsCommand(store *ToolStore) *ClearToolsCommand {
	return &ClearToolsCommand{id: uuid.NewString(), store: store}
}

func (c *ClearToolsCommand) ID() string   { return c.id }
func (c *ClearToolsCommand) Name() string { return CmdClearTools }

func (c *ClearToolsCommand) Execute(ctx context.Context) (any, error) {
	c.prev = c.store.All()
	c.store.Clear()
	return len(c.prev), nil
}

func (c *ClearToolsCommand) Undo(ctx context.Context) error {
	return c.store.LoadAll(c.prev)
}

func (c *ClearToolsCommand) Redo(ctx context.Context) error {
	c.store.Clear()
	return nil
}

func (c *ClearToolsCommand) Clone() command.Command {
	return NewClearToolsCommand(c.store)
}
