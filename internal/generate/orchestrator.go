package generate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pixelforge/fusion-studio/internal/compose"
	"github.com/pixelforge/fusion-studio/internal/textutil"
	"github.com/pixelforge/fusion-studio/internal/workspace"
)

// Phase labels published while an attempt runs.
const (
	PhaseValidating = "validating"
	PhaseDescribing = "describing"
	PhaseGenerating = "generating"
	PhaseEditing    = "editing"
)

// ModelConfig carries the fixed model identifiers attempts pass to the
// collaborator. The blend generation model is user-selected per request and
// travels with the workspace inputs instead.
type ModelConfig struct {
	Edit string
}

// Orchestrator drives generation attempts against workspaces.
type Orchestrator struct {
	collab Collaborator
	models ModelConfig
}

// NewOrchestrator wires the collaborator and model configuration.
func NewOrchestrator(collab Collaborator, models ModelConfig) *Orchestrator {
	return &Orchestrator{collab: collab, models: models}
}

// StartBlend triggers a blend attempt on the workspace. The attempt runs in
// its own goroutine; progress and outcome land in the workspace. Returns
// workspace.ErrAttemptInFlight while a previous attempt is still running.
func (o *Orchestrator) StartBlend(ws *workspace.Workspace) (string, error) {
	attemptID, err := ws.BeginAttempt()
	if err != nil {
		return "", err
	}
	log.Info().Str("attemptId", attemptID).Str("sessionId", ws.ID()).Msg("Blend attempt started")
	go o.runBlend(attemptID, ws)
	return attemptID, nil
}

// StartSwap triggers a swap attempt on the workspace, with the same contract
// as StartBlend.
func (o *Orchestrator) StartSwap(ws *workspace.Workspace) (string, error) {
	attemptID, err := ws.BeginAttempt()
	if err != nil {
		return "", err
	}
	log.Info().Str("attemptId", attemptID).Str("sessionId", ws.ID()).Msg("Swap attempt started")
	go o.runSwap(attemptID, ws)
	return attemptID, nil
}

// runBlend executes Validating -> Describing -> Generating. Once issued an
// attempt is never cancelled, so it runs on a background context.
func (o *Orchestrator) runBlend(attemptID string, ws *workspace.Workspace) {
	ctx := context.Background()
	logger := log.With().Str("attemptId", attemptID).Str("workflow", "blend").Logger()
	start := time.Now()

	defer ws.FinishAttempt()
	defer recoverAttempt(ws, logger)

	ws.SetPhase(PhaseValidating)
	in := ws.BlendInputs()
	if len(in.Images) < 2 {
		publishFailure(ws, logger, validationError("add at least two images to blend"))
		return
	}
	if !in.StyleSet {
		publishFailure(ws, logger, validationError("select a blend style before generating"))
		return
	}

	ws.SetPhase(PhaseDescribing)
	prompt := compose.BlendDescribeRequest(in.Style.Name, in.Guidance, len(in.Images))
	description, err := o.collab.Describe(ctx, prompt, in.Images)
	if err != nil {
		publishFailure(ws, logger, serviceError(err))
		return
	}
	description = textutil.CleanModelText(description)
	if description == "" {
		publishFailure(ws, logger, emptyResultError("the service returned an empty description"))
		return
	}

	ws.SetPhase(PhaseGenerating)
	img, err := o.collab.GenerateImage(ctx, description, in.Model, in.AspectRatio)
	if err != nil {
		publishFailure(ws, logger, serviceError(err))
		return
	}
	if img.IsZero() {
		publishFailure(ws, logger, emptyResultError("the service returned no image"))
		return
	}

	ws.PublishResult(img)
	logger.Info().
		Dur("duration", time.Since(start)).
		Int("imageBytes", len(img.Data)).
		Msg("Blend attempt succeeded")
}

// runSwap executes Validating -> Editing.
func (o *Orchestrator) runSwap(attemptID string, ws *workspace.Workspace) {
	ctx := context.Background()
	logger := log.With().Str("attemptId", attemptID).Str("workflow", "swap").Logger()
	start := time.Now()

	defer ws.FinishAttempt()
	defer recoverAttempt(ws, logger)

	ws.SetPhase(PhaseValidating)
	in := ws.SwapInputs()
	if in.Scene.IsZero() || in.Face.IsZero() {
		publishFailure(ws, logger, validationError("both a scene image and a face reference are required"))
		return
	}

	ws.SetPhase(PhaseEditing)
	instruction := compose.SwapInstruction(in.Guidance)
	img, err := o.collab.EditImage(ctx, in.Scene, in.Face, instruction, o.models.Edit)
	if err != nil {
		publishFailure(ws, logger, serviceError(err))
		return
	}
	if img.IsZero() {
		publishFailure(ws, logger, emptyResultError("the service returned no edited image"))
		return
	}

	ws.PublishResult(img)
	logger.Info().
		Dur("duration", time.Since(start)).
		Str("mimeType", img.MIMEType).
		Int("imageBytes", len(img.Data)).
		Msg("Swap attempt succeeded")
}

// recoverAttempt converts a panicking attempt into a published service
// failure. It runs before the deferred FinishAttempt, so loading still
// clears.
func recoverAttempt(ws *workspace.Workspace, logger zerolog.Logger) {
	if r := recover(); r != nil {
		logger.Error().Interface("panic", r).Msg("Generation attempt panicked")
		ws.PublishError(string(KindService), "the image service could not complete the request")
	}
}

func publishFailure(ws *workspace.Workspace, logger zerolog.Logger, e *Error) {
	logger.Warn().Str("kind", string(e.Kind)).Err(e).Msg("Generation attempt failed")
	ws.PublishError(string(e.Kind), e.Message)
}
