package snowflake

import "github.com/ceyewan/snowid/xerrors"

var (
	// ErrInvalidConfig 配置无效（datacenterID/workerID 越界等）
	ErrInvalidConfig = xerrors.New("snowflake: invalid config")

	// ErrClockBackwards 时钟回拨
	// 本方案只容忍非递减时钟；任何回拨都硬失败，不做纠偏或等待
	ErrClockBackwards = xerrors.New("snowflake: clock moved backwards")

	// ErrMalformedID ID 字符串无法解析
	ErrMalformedID = xerrors.New("snowflake: malformed id")

	// ErrTimestampRange 时间戳偏移超出 41 bit 可表达范围
	ErrTimestampRange = xerrors.New("snowflake: timestamp out of range")
)
