// Package orchestrator exposes the in-process entry points of
// spec.md §6 as Service methods, coordinating pkg/render/session and
// pkg/adapters/ffmpegmux the way the teacher's Orchestrator coordinates
// its pipeline stages: each step is a pkg/pipeline.Stage so a caller's
// context cancellation is checked between steps, with the same
// logger-around-every-step style.
package orchestrator

import (
	"context"

	"github.com/ideamans/go-l10n"

	"github.com/user/autovlog/pkg/pipeline"
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
	"github.com/user/autovlog/pkg/render/session"
)

// Service is the top-level entry point a CLI or any other front end
// drives. It holds no session-spanning state itself; every call reads
// and writes through the SessionStore.
type Service struct {
	initStage     pipeline.Stage[InitRequest, InitResult]
	appendStage   pipeline.Stage[AppendRequest, AppendResult]
	finalizeStage pipeline.Stage[FinalizeRequest, FinalizeResult]

	templates ports.TemplateLoader
	store     ports.SessionStore
	logger    ports.Logger
}

// New creates a Service, wrapping the controller's three operations as
// pipeline stages.
func New(controller *session.Controller, templates ports.TemplateLoader, store ports.SessionStore, muxer ports.Muxer, logger ports.Logger) *Service {
	return &Service{
		initStage: pipeline.StageFunc[InitRequest, InitResult](func(_ context.Context, req InitRequest) (InitResult, error) {
			sessionID, err := controller.Init(req.TemplateName, req.ImagePath)
			if err != nil {
				return InitResult{}, err
			}
			return InitResult{SessionID: sessionID}, nil
		}),
		appendStage: pipeline.StageFunc[AppendRequest, AppendResult](func(_ context.Context, req AppendRequest) (AppendResult, error) {
			idx, err := controller.Append(req.SessionID, req.ClipPath)
			if err != nil {
				return AppendResult{}, err
			}
			return AppendResult{SegmentIndex: idx}, nil
		}),
		finalizeStage: pipeline.StageFunc[FinalizeRequest, FinalizeResult](func(_ context.Context, req FinalizeRequest) (FinalizeResult, error) {
			outputPath, err := controller.Finalize(muxer, req.SessionID, req.OutputPath)
			if err != nil {
				return FinalizeResult{}, err
			}
			return FinalizeResult{OutputPath: outputPath}, nil
		}),
		templates: templates,
		store:     store,
		logger:    logger,
	}
}

// RenderRequest is the one-shot render input: a cover image, an
// ordered list of 0-5 clip paths, a template name and an output path.
// Zero clips is valid: per spec.md §4.6's tie-break, the render is
// then just the image phase.
type RenderRequest struct {
	TemplateName string
	ImagePath    string
	ClipPaths    []string
	OutputPath   string
}

// RenderResult is the one-shot render output.
type RenderResult struct {
	SessionID  string
	OutputPath string
}

// Render runs Init, one Append per clip, then Finalize in sequence,
// matching spec.md §4.6's one-shot schedule built on the same
// incremental primitives as session mode. ctx is checked between
// steps, so a cancellation lands at a segment boundary rather than
// mid-frame.
func (s *Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	if err := render.ValidateClipCount(len(req.ClipPaths)); err != nil {
		return RenderResult{}, err
	}

	s.logger.Info(l10n.F("Rendering cover image phase"))
	initResult, err := s.Init(ctx, InitRequest{TemplateName: req.TemplateName, ImagePath: req.ImagePath})
	if err != nil {
		s.logger.Error(l10n.F("Failed to initialize session: %s", err))
		return RenderResult{}, err
	}
	sessionID := initResult.SessionID

	for _, clip := range req.ClipPaths {
		if err := ctx.Err(); err != nil {
			return RenderResult{}, err
		}
		result, err := s.Append(ctx, AppendRequest{SessionID: sessionID, ClipPath: clip})
		if err != nil {
			return RenderResult{}, err
		}
		s.logger.Info(l10n.F("Appending clip %s (segment %d)", clip, result.SegmentIndex))
	}

	if err := ctx.Err(); err != nil {
		return RenderResult{}, err
	}
	s.logger.Info(l10n.F("Finalizing session %s", sessionID))
	finalizeResult, err := s.Finalize(ctx, FinalizeRequest{SessionID: sessionID, OutputPath: req.OutputPath})
	if err != nil {
		return RenderResult{}, err
	}

	s.logger.Info(l10n.F("Output saved to %s", finalizeResult.OutputPath))
	return RenderResult{SessionID: sessionID, OutputPath: finalizeResult.OutputPath}, nil
}

// InitRequest starts an incremental session with its cover image.
type InitRequest struct {
	TemplateName string
	ImagePath    string
}

// InitResult carries the new session id.
type InitResult struct {
	SessionID string
}

// Init implements the incremental session's first step.
func (s *Service) Init(ctx context.Context, req InitRequest) (InitResult, error) {
	result, err := s.initStage.Execute(ctx, req)
	if err != nil {
		return InitResult{}, err
	}
	s.logger.Info(l10n.F("Initialized session %s for template %q", result.SessionID, req.TemplateName))
	return result, nil
}

// AppendRequest appends one clip segment to an existing session.
type AppendRequest struct {
	SessionID string
	ClipPath  string
}

// AppendResult carries the new segment's index.
type AppendResult struct {
	SegmentIndex int
}

// Append implements the incremental session's clip-append step.
func (s *Service) Append(ctx context.Context, req AppendRequest) (AppendResult, error) {
	return s.appendStage.Execute(ctx, req)
}

// FinalizeRequest closes out an incremental session.
type FinalizeRequest struct {
	SessionID  string
	OutputPath string
}

// FinalizeResult carries the final output path.
type FinalizeResult struct {
	OutputPath string
}

// Finalize implements the incremental session's concat+mux step.
func (s *Service) Finalize(ctx context.Context, req FinalizeRequest) (FinalizeResult, error) {
	return s.finalizeStage.Execute(ctx, req)
}

// Status returns a session's current metadata.
func (s *Service) Status(sessionID string) (render.SessionMetadata, error) {
	return s.store.Load(sessionID)
}

// ListTemplates lists every configured template's name and description.
func (s *Service) ListTemplates() ([]ports.TemplateSummary, error) {
	return s.templates.ListTemplates()
}
