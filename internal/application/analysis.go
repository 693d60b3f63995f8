package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/measure"
	"crack-meter/internal/domain/port"
	"crack-meter/internal/logger"
)

// AnalysisService прогоняет снимок через весь конвейер измерения.
// Сервис не хранит состояния между вызовами и безопасен для параллельной работы.
type AnalysisService struct {
	decoder    port.ImageDecoder
	normalizer port.Normalizer
	segmenter  port.Segmenter
	geometry   *measure.GeometryEstimator
	depth      *measure.DepthEstimator
	workers    int
}

// NewAnalysisService собирает конвейер; workers ограничивает AnalyzeAll.
func NewAnalysisService(decoder port.ImageDecoder, normalizer port.Normalizer, segmenter port.Segmenter, workers int) *AnalysisService {
	if workers < 1 {
		workers = 1
	}
	return &AnalysisService{
		decoder:    decoder,
		normalizer: normalizer,
		segmenter:  segmenter,
		geometry:   measure.NewGeometryEstimator(),
		depth:      measure.NewDepthEstimator(),
		workers:    workers,
	}
}

// Analyze измеряет трещину на снимке. Частичных результатов нет:
// либо полный MeasurementResult, либо ошибка. Отмена ctx проверяется
// между этапами конвейера.
func (s *AnalysisService) Analyze(ctx context.Context, img *entity.RawImage, optics entity.OpticalConstants) (*entity.Analysis, error) {
	if s.normalizer == nil || s.segmenter == nil {
		return nil, errors.New("analysis pipeline is not configured")
	}
	if err := optics.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optics: %w", err)
	}
	if img == nil {
		return nil, &entity.InvalidImageError{Reason: "image is nil"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.WithFields(logrus.Fields{"width": img.Width(), "height": img.Height()})

	started := time.Now()
	intensity, err := s.normalizer.Normalize(img)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	log.WithField("elapsed", time.Since(started)).Debug("image normalized")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	seg, err := s.segmenter.Segment(intensity)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	log.WithFields(logrus.Fields{
		"elapsed":  time.Since(started),
		"contours": len(seg.Contours),
		"mask":     seg.Mask.Count(),
	}).Debug("image segmented")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	depth, err := s.depth.Estimate(intensity, seg.Mask, optics.ObjectDistance)
	if err != nil {
		return nil, err
	}
	geometry, err := s.geometry.Measure(seg.Contours, optics)
	if err != nil {
		return nil, err
	}

	return &entity.Analysis{
		ImageWidth:  img.Width(),
		ImageHeight: img.Height(),
		Optics:      optics,
		Contours:    seg.Contours,
		Result:      entity.NewMeasurementResult(geometry, depth),
	}, nil
}

// AnalyzeBytes декодирует файл и измеряет трещину.
func (s *AnalysisService) AnalyzeBytes(ctx context.Context, data []byte, optics entity.OpticalConstants) (*entity.RawImage, *entity.Analysis, error) {
	if s.decoder == nil {
		return nil, nil, errors.New("image decoder is not configured")
	}
	img, err := s.decoder.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := s.Analyze(ctx, img, optics)
	if err != nil {
		return img, nil, err
	}
	return img, analysis, nil
}

// Job — один снимок для пакетной обработки.
type Job struct {
	Name   string
	Load   func() (*entity.RawImage, error)
	Optics entity.OpticalConstants
}

// Outcome — результат по одному снимку; Err у каждого свой.
type Outcome struct {
	Name     string
	Image    *entity.RawImage
	Analysis *entity.Analysis
	Err      error
}

// AnalyzeAll обрабатывает снимки параллельно, не более workers одновременно.
// Ошибка одного снимка не останавливает остальные; порядок сохраняется.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			out := Outcome{Name: job.Name}
			defer func() { outcomes[i] = out }()

			if err := ctx.Err(); err != nil {
				out.Err = err
				return nil
			}
			img, err := job.Load()
			if err != nil {
				out.Err = err
				logger.WithError(err).WithField("image", job.Name).Warn("failed to load image")
				return nil
			}
			out.Image = img
			out.Analysis, out.Err = s.Analyze(ctx, img, job.Optics)
			if out.Err != nil {
				logger.WithError(out.Err).WithField("image", job.Name).Warn("analysis failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
