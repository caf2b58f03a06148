package enroll_class

import (
	"context"

	enrollClass "github.com/holistia/booking-service/internal/usecase/enroll_class"
)

type EnrollClassUseCase interface {
	Execute(ctx context.Context, req *enrollClass.Request) (*enrollClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
