// internal/workers/career/recommend-career/handler.go
package recommendcareer

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"career-workers/internal/career"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/validation"
	"career-workers/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "recommend-career"

type Handler struct {
	config       *Config
	service      *career.Service
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(cfg *Config, service *career.Service, log logger.Logger) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		service:      service,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log).WithMaxRetries(cfg.MaxRetries),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// Execute runs the recommendation for already decoded input.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.Recommend(ctx, career.Request{
		Profile: input.Profile,
		Channel: career.ChannelZeebe,
		Source:  career.SourceJobVariables,
		UserID:  input.UserID,
	})
	if err != nil {
		return nil, err
	}
	return &Output{
		Recommendation: string(result.Label),
		Source:         result.Source,
		Strategy:       result.Strategy,
		Cached:         result.Cached,
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	return h.decodeVariables(variables)
}

func (h *Handler) decodeVariables(variables map[string]interface{}) (*Input, error) {
	result, err := validation.ValidateInput(variables, h.config.InputSchema)
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputShapeInvalidError(result.String())
	}

	profile, err := recommendation.ProfileFromMap(variables)
	if err != nil {
		var shapeErr *recommendation.ShapeError
		if stderrors.As(err, &shapeErr) {
			return nil, errors.NewInputShapeInvalidError(shapeErr.Error())
		}
		return nil, errors.NewInputParsingFailedError(err)
	}

	input := &Input{Profile: profile}
	if userID, ok := variables["userId"].(string); ok {
		input.UserID = userID
	}
	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to build complete command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		h.fail(ctx, client, job, errors.NewInputParsingFailedError(fmt.Errorf("encode output: %w", err)))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":         job.GetKey(),
		"recommendation": output.Recommendation,
		"cached":         output.Cached,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}
