package util

import "errors"

var (
	// 404 资源不存在
	ErrUnitNotFound      = errors.New("unit not found")
	ErrStepNotFound      = errors.New("step not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrHintNotFound      = errors.New("hint not found")
	ErrReviewSetNotFound = errors.New("review set not found")
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrUserNotFound      = errors.New("user not found")

	// 409 学习流程顺序前置条件不满足
	ErrUnitNotStarted     = errors.New("unit not started")
	ErrStepLocked         = errors.New("step is locked")
	ErrReviewRequired     = errors.New("review required before test retry")
	ErrPracticeNotReached = errors.New("practice step must be completed before test")
	ErrReviewNotActive    = errors.New("review step is not active")
	ErrEmailRegistered    = errors.New("email already exists")

	// 400 请求内容问题
	ErrAnswersRequired = errors.New("answers required")

	// 401 凭据问题
	ErrInvalidCredentials = errors.New("invalid credentials")
)
