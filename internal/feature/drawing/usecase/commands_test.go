package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/shared/command"
)

func TestAddToolCommand_ExecuteUndoRedo(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	ctx := context.Background()

	res, err := inv.Execute(ctx, NewAddToolCommand(s, horizontalAt(100)))
	require.NoError(t, err)

	added, ok := res.Data.(entity.DrawingTool)
	require.True(t, ok, "execute should return the added tool")
	assert.Equal(t, 1, s.Len())

	require.True(t, inv.Undo(ctx), "undo should succeed")
	assert.Equal(t, 0, s.Len(), "undo must remove the added tool")

	require.True(t, inv.Redo(ctx), "redo should succeed")
	assert.Equal(t, 1, s.Len())

	restored, ok := s.GetTool(added.ID)
	require.True(t, ok, "redo must restore the same tool id")
	assert.Equal(t, added.Points, restored.Points)
}

func TestUpdateToolCommand_UndoRestoresPreviousFields(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	ctx := context.Background()

	added, err := s.Add(horizontalAt(100))
	require.NoError(t, err)

	newPoints := []entity.Point{{Timestamp: added.Points[0].Timestamp, Price: 150}}
	_, err = inv.Execute(ctx, NewUpdateToolCommand(s, added.ID, ToolPatch{Points: newPoints}))
	require.NoError(t, err)

	moved, _ := s.GetTool(added.ID)
	assert.Equal(t, 150.0, moved.Points[0].Price)

	require.True(t, inv.Undo(ctx))
	reverted, _ := s.GetTool(added.ID)
	assert.Equal(t, 100.0, reverted.Points[0].Price, "undo must restore the original points")

	require.True(t, inv.Redo(ctx))
	redone, _ := s.GetTool(added.ID)
	assert.Equal(t, 150.0, redone.Points[0].Price)
}

func TestDeleteToolCommand_UndoReinsertsTool(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	ctx := context.Background()

	added, err := s.Add(horizontalAt(100))
	require.NoError(t, err)

	_, err = inv.Execute(ctx, NewDeleteToolCommand(s, added.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	require.True(t, inv.Undo(ctx))
	restored, ok := s.GetTool(added.ID)
	require.True(t, ok, "undo must reinsert the deleted tool with its id")
	assert.Equal(t, added.Points, restored.Points)
}

func TestDeleteToolCommand_UnknownIDFails(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)

	_, err := inv.Execute(context.Background(), NewDeleteToolCommand(s, "ghost"))
	assert.Error(t, err, "deleting an unknown id should surface the store failure")

	// 失敗したエントリはundo対象になりません。
	assert.False(t, inv.Undo(context.Background()))
}

func TestDuplicateToolCommand_RedoRestoresExactCopy(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	ctx := context.Background()

	added, err := s.Add(horizontalAt(100))
	require.NoError(t, err)

	res, err := inv.Execute(ctx, NewDuplicateToolCommand(s, added.ID))
	require.NoError(t, err)
	copyTool := res.Data.(entity.DrawingTool)

	require.True(t, inv.Undo(ctx))
	_, ok := s.GetTool(copyTool.ID)
	assert.False(t, ok, "undo must remove the copy")

	require.True(t, inv.Redo(ctx))
	redone, ok := s.GetTool(copyTool.ID)
	require.True(t, ok, "redo must restore the copy")
	assert.Equal(t, copyTool.Points, redone.Points, "redo must not re-run the offset")
}

func TestClearToolsCommand_UndoRestoresContents(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	ctx := context.Background()

	_, _ = s.Add(horizontalAt(100))
	_, _ = s.Add(trendline(entity.Point{Timestamp: 1000, Price: 50}, entity.Point{Timestamp: 2000, Price: 60}))

	res, err := inv.Execute(ctx, NewClearToolsCommand(s))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Data)
	assert.Equal(t, 0, s.Len())

	require.True(t, inv.Undo(ctx))
	assert.Equal(t, 2, s.Len(), "undo must restore the cleared tools")

	require.True(t, inv.Redo(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestCommandCommitter_RoutesThroughInvoker(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	inv := command.NewInvoker(10)
	committer := NewCommandCommitter(s, inv)

	added, err := committer.CommitAdd(horizontalAt(100))
	require.NoError(t, err)

	_, err = committer.CommitMove(added.ID, []entity.Point{{Timestamp: added.Points[0].Timestamp, Price: 120}})
	require.NoError(t, err)

	stats := inv.Statistics()
	assert.Equal(t, 2, stats.Total, "both commits should enter command history")

	// 直近のコミット（移動）をundoすると価格が戻ります。
	require.True(t, inv.Undo(context.Background()))
	reverted, _ := s.GetTool(added.ID)
	assert.Equal(t, 100.0, reverted.Points[0].Price)
}

func TestDirectCommitter_BypassesHistory(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	committer := NewDirectCommitter(s)

	added, err := committer.CommitAdd(horizontalAt(100))
	require.NoError(t, err)

	_, err = committer.CommitMove(added.ID, []entity.Point{{Timestamp: 1, Price: 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}
