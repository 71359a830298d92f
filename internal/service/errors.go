package service

import "errors"

// 检索相关错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	ErrSearchTermRequired  = errors.New("searchTerm is required")
	ErrInvalidStatusFilter = errors.New("invalid statusFilter")
	ErrNoResults           = errors.New("no results")
)

// 用户相关错误
var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidRole         = errors.New("role must be PATIENT or RESEARCHER")
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
