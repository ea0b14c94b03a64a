package usecase

import (
	"context"

	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/shared/command"
)

// DirectCommitter applies completed gestures straight to the store, without
// command history. Used when no invoker is wired.
type DirectCommitter struct {
	store *ToolStore
}

// NewDirectCommitter creates a committer that bypasses command history.
func NewDirectCommitter(store *ToolStore) *DirectCommitter {
	return &DirectCommitter{store: store}
}

// CommitAdd inserts the completed draft tool.
func (c *DirectCommitter) CommitAdd(tool entity.DrawingTool) (entity.DrawingTool, error) {
	return c.store.Add(tool)
}

// CommitMove replaces a tool's points as a single update.
func (c *DirectCommitter) CommitMove(id string, points []entity.Point) (entity.DrawingTool, error) {
	return c.store.Update(id, ToolPatch{Points: points})
}

// CommandCommitter routes completed gestures through a command invoker so
// every committed mutation gains undo/redo history.
type CommandCommitter struct {
	store   *ToolStore
	invoker *command.Invoker
}

// NewCommandCommitter creates a committer that wraps gesture commits as
// undoable commands.
func NewCommandCommitter(store *ToolStore, invoker *command.Invoker) *CommandCommitter {
	return &CommandCommitter{store: store, invoker: invoker}
}

// CommitAdd inserts the completed draft tool through an AddToolCommand.
func (c *CommandCommitter) CommitAdd(tool entity.DrawingTool) (entity.DrawingTool, error) {
	res, err := c.invoker.Execute(context.Background(), NewAddToolCommand(c.store, tool))
	if err != nil {
		return entity.DrawingTool{}, err
	}
	return res.Data.(entity.DrawingTool), nil
}

// CommitMove replaces a tool's points through an UpdateToolCommand.
func (c *CommandCommitter) CommitMove(id string, points []entity.Point) (entity.DrawingTool, error) {
	cmd := NewUpdateToolCommand(c.store, id, ToolPatch{Points: points})
	res, err := c.invoker.Execute(context.Background(), cmd)
	if err != nil {
		return entity.DrawingTool{}, err
	}
	return res.Data.(entity.DrawingTool), nil
}
