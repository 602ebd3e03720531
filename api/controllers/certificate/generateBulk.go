package certificate_controller

import (
	"bufio"
	"context"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	bulkjobmodel "github.com/sunthewhat/certgen-api/api/model/bulkJobModel"
	"github.com/sunthewhat/certgen-api/internal/generator"
	"github.com/sunthewhat/certgen-api/internal/progress"
	"github.com/sunthewhat/certgen-api/type/response"
	"github.com/valyala/fasthttp"
)

// GenerateBulk accepts a multipart upload (template_id, file) and answers
// with an event stream: progress events, then exactly one done or error.
// Generation failures travel as error events; only authentication and
// malformed multipart bodies are rejected with an HTTP status.
func (ctrl *CertificateController) GenerateBulk(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.SendFailed(c, "Invalid multipart form")
	}

	var templateId string
	if values := form.Value["template_id"]; len(values) > 0 {
		templateId = values[0]
	}

	var file multipart.File
	if headers := form.File["file"]; len(headers) > 0 {
		file, err = headers[0].Open()
		if err != nil {
			slog.Error("Failed to open uploaded CSV", "user_id", userId, "error", err)
			return response.SendError(c, "Failed to read uploaded file")
		}
	}

	caller := generator.Caller{UserID: userId, Role: middleware.GetRoleFromContext(c)}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderTransferEncoding, "chunked")
	c.Set("X-Accel-Buffering", "no")
	// the per-event write deadline stays armed on the connection afterwards
	c.Context().SetConnectionClose()

	conn := c.Context().Conn()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if file != nil {
			defer file.Close()
		}

		var opts []progress.Option
		if conn != nil {
			opts = append(opts, progress.WithWriteDeadline(conn, ctrl.writeTimeout))
		}
		stream := progress.NewStreamWriter(w, opts...)

		if templateId == "" || file == nil {
			streamSink{Sink: stream}.Fail(generator.ErrMissingInput)
			return
		}

		ctx := context.Background()
		sink := ctrl.trackJob(ctx, caller, templateId, stream)
		ctrl.generator.StreamBulk(ctx, caller, templateId, generator.CSVRows(file), sink)
	}))

	return nil
}

// streamSink rewrites terminal errors into client messages.
type streamSink struct {
	generator.Sink
}

func (s streamSink) Fail(err error) {
	status, msg := generationFailure(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("Bulk generation failed", "error", err)
	}
	s.Sink.Fail(clientError(msg))
}

type clientError string

func (e clientError) Error() string { return string(e) }

// jobSink records the run in the bulk job history.
type jobSink struct {
	generator.Sink
	ctx     context.Context
	repo    bulkjobmodel.IBulkJobRepository
	jobId   string
	current int
	total   int
}

func (j *jobSink) Progress(current, total int) {
	j.current, j.total = current, total
	j.Sink.Progress(current, total)
}

func (j *jobSink) Done(result *generator.BulkResult) {
	if err := j.repo.Complete(j.ctx, j.jobId, result.Count(), result.ZipPath); err != nil {
		slog.Warn("Failed to record completed bulk job", "job_id", j.jobId, "error", err)
	}
	j.Sink.Done(result)
}

func (j *jobSink) Fail(err error) {
	if recErr := j.repo.Fail(j.ctx, j.jobId, j.total, j.current, err.Error()); recErr != nil {
		slog.Warn("Failed to record failed bulk job", "job_id", j.jobId, "error", recErr)
	}
	j.Sink.Fail(err)
}

func (ctrl *CertificateController) trackJob(ctx context.Context, caller generator.Caller, templateId string, stream generator.Sink) generator.Sink {
	var sink generator.Sink = streamSink{Sink: stream}
	if ctrl.jobRepo == nil {
		return sink
	}

	jobId, err := ctrl.jobRepo.Start(ctx, templateId, caller.UserID)
	if err != nil {
		slog.Warn("Failed to record bulk job start", "user_id", caller.UserID, "error", err)
		return sink
	}
	return &jobSink{Sink: sink, ctx: ctx, repo: ctrl.jobRepo, jobId: jobId}
}
