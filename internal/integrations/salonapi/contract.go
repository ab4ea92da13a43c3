package salonapi

import "github.com/m04kA/SMC-SalonConsole/internal/domain"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session identity of the console user. Passed explicitly to every call.
type Session struct {
	Token  string
	UserID int64
	Role   domain.Role
}
