package adaptor

import (
	"net/http"

	"github.com/bvggies/recommendersystem/pkg/apperror"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"go.uber.org/zap"
)

// codeStatus overrides the status derived from an error's kind.
var codeStatus = map[string]int{
	"self_booking": http.StatusBadRequest,
	"not_owner":    http.StatusNotFound,
}

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:    http.StatusBadRequest,
	apperror.KindConflict:      http.StatusBadRequest,
	apperror.KindAuthorization: http.StatusForbidden,
	apperror.KindNotFound:      http.StatusNotFound,
}

// statusFor maps a service error to the HTTP status, code and message sent to the client.
func statusFor(err error) (int, string, string) {
	code := apperror.CodeOf(err)
	status, ok := codeStatus[code]
	if !ok {
		status, ok = kindStatus[apperror.KindOf(err)]
	}
	if !ok {
		return http.StatusInternalServerError, "internal", "Internal server error"
	}

	appErr, _ := apperror.As(err)
	return status, code, appErr.Message
}

func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status, code, message := statusFor(err)

	if status >= http.StatusInternalServerError {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("code", code))
	}

	utils.ResponseError(w, status, code, message)
}
