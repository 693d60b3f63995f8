package app

import (
	"context"
	"errors"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
	"crack-meter/internal/logger"
)

type InspectionService struct {
	sessions    *SessionService
	analysis    *AnalysisService
	highlighter port.CrackHighlighter
}

// InspectionOutput содержит результат измерения и картинку с подсветкой.
type InspectionOutput struct {
	Analysis    *entity.Analysis
	Highlighted []byte
}

// NewInspectionService создаёт сервис, который ведёт проверку трещины в диалоге.
func NewInspectionService(sessions *SessionService, analysis *AnalysisService, highlighter port.CrackHighlighter) *InspectionService {
	return &InspectionService{
		sessions:    sessions,
		analysis:    analysis,
		highlighter: highlighter,
	}
}

// ProcessCrackPhoto измеряет трещину с оптикой пользователя и возвращает
// его в главное меню независимо от результата.
func (s *InspectionService) ProcessCrackPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*InspectionOutput, error) {
	if s.analysis == nil {
		return nil, errors.New("analysis service is not configured")
	}

	session, err := s.sessions.SetState(ctx, userID, chatID, entity.StateProcessing)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, err := s.sessions.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
			logger.WithError(err).WithField("user_id", userID).Error("failed to reset session state")
		}
	}()

	img, analysis, err := s.analysis.AnalyzeBytes(ctx, photo, session.Optics)
	if err != nil {
		return nil, err
	}

	var highlighted []byte
	if s.highlighter != nil {
		highlighted, err = s.highlighter.Highlight(img, analysis.Contours)
		if err != nil {
			logger.WithError(err).WithField("user_id", userID).Warn("failed to highlight crack")
		}
	}

	return &InspectionOutput{Analysis: analysis, Highlighted: highlighted}, nil
}
