package app

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/infrastructure/imagefile"
	"crack-meter/internal/infrastructure/storage"
)

func TestInspectionService_ProcessCrackPhoto(t *testing.T) {
	sessions := NewSessionService(storage.NewMemorySessionRepository())
	svc := NewInspectionService(sessions, newTestAnalysis(1), imagefile.NewHighlighter())
	ctx := context.Background()

	_, err := sessions.SetOptics(ctx, 1, 10, unitOptics)
	require.NoError(t, err)
	_, err = sessions.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)

	photo := syntheticPNG(t, 128, 64, image.Rect(20, 30, 108, 33), 210, 50)
	out, err := svc.ProcessCrackPhoto(ctx, 1, 10, photo)
	require.NoError(t, err)
	require.Equal(t, unitOptics, out.Analysis.Optics)
	require.NotEmpty(t, out.Highlighted)

	session, err := sessions.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, session.State)
}

func TestInspectionService_FailureReturnsToMenu(t *testing.T) {
	sessions := NewSessionService(storage.NewMemorySessionRepository())
	svc := NewInspectionService(sessions, newTestAnalysis(1), nil)
	ctx := context.Background()

	_, err := svc.ProcessCrackPhoto(ctx, 1, 10, []byte("not a photo"))
	var invalid *entity.InvalidImageError
	require.ErrorAs(t, err, &invalid)

	session, err := sessions.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, session.State)
}

func TestInspectionService_NotConfigured(t *testing.T) {
	svc := NewInspectionService(NewSessionService(storage.NewMemorySessionRepository()), nil, nil)
	_, err := svc.ProcessCrackPhoto(context.Background(), 1, 10, []byte("x"))
	require.Error(t, err)
}
