package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	bulkjobmodel "github.com/sunthewhat/certgen-api/api/model/bulkJobModel"
	"github.com/sunthewhat/certgen-api/type/response"
)

const defaultJobLimit = 50

// ListBulkJobs returns the caller's bulk generation history.
func (ctrl *CertificateController) ListBulkJobs(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	if ctrl.jobRepo == nil {
		return response.SendSuccess(c, "Bulk job history disabled", []*bulkjobmodel.BulkJob{})
	}

	limit := c.QueryInt("limit", defaultJobLimit)
	if limit <= 0 || limit > 200 {
		limit = defaultJobLimit
	}

	jobs, err := ctrl.jobRepo.GetByUser(c.UserContext(), userId, int64(limit))
	if err != nil {
		slog.Error("ListBulkJobs failed", "user_id", userId, "error", err)
		return response.SendInternalError(c, err)
	}
	if jobs == nil {
		jobs = []*bulkjobmodel.BulkJob{}
	}

	return response.SendSuccess(c, "Bulk jobs fetched", jobs)
}
