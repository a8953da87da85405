package config

import "github.com/ceyewan/snowid/xerrors"

var (
	// ErrInvalidValue 某个来源提供了非法的配置值
	ErrInvalidValue = xerrors.New("config: invalid value")
)
