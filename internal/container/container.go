package container

import (
	app "crack-meter/internal/application"
	"crack-meter/internal/domain/port"
)

type Container struct {
	SessionService    *app.SessionService
	AnalysisService   *app.AnalysisService
	InspectionService *app.InspectionService
}

func New(
	sessionRepo port.SessionRepository,
	decoder port.ImageDecoder,
	normalizer port.Normalizer,
	segmenter port.Segmenter,
	highlighter port.CrackHighlighter,
	workers int,
) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	analysisService := app.NewAnalysisService(decoder, normalizer, segmenter, workers)
	inspectionService := app.NewInspectionService(sessionService, analysisService, highlighter)

	return &Container{
		SessionService:    sessionService,
		AnalysisService:   analysisService,
		InspectionService: inspectionService,
	}
}
