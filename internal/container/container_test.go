package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/infrastructure/imagefile"
	"crack-meter/internal/infrastructure/storage"
	"crack-meter/internal/infrastructure/vision"
)

func TestNew_WiresServices(t *testing.T) {
	normalizer, segmenter := vision.NewBackend()
	c := New(storage.NewMemorySessionRepository(), imagefile.NewDecoder(), normalizer, segmenter, imagefile.NewHighlighter(), 2)

	require.NotNil(t, c.SessionService)
	require.NotNil(t, c.AnalysisService)
	require.NotNil(t, c.InspectionService)

	session, err := c.SessionService.BeginCheck(context.Background(), 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, session.State)
}
