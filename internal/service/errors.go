package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrUpstreamUnavailable = errors.New("存储服务不可用，请稍后重试")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrPostNotFound:        NotFound,
	ErrUpstreamUnavailable: InternalServerError,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
