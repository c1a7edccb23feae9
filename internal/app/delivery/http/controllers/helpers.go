package controllers

import (
	"context"
	"errors"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func decodeAndValidate(r *http.Request, request interface{}) error {
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	err = utils.ValidateStruct(request)
	if err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		var customErr *exceptions.CustomError
		if !errors.As(err, &customErr) {
			err = exceptions.ErrServerDeadlineExceeded(err)
		}
	}
	utils.BuildErrorResponse(log, w, err)
}
