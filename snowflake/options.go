package snowflake

import (
	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/metrics"
)

// Option 组件初始化选项函数
type Option func(*options)

// options 组件初始化选项配置
type options struct {
	logger clog.Logger
	meter  metrics.Meter
	now    func() int64
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMeter 设置 Meter，启用 ID 生成计数等指标
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

// WithClock 注入毫秒时钟源
//
// 默认使用 time.Now().UnixMilli()。主要用于测试（构造时钟回拨、
// 冻结时钟以触发序列号耗尽），也可用于接入受控时钟。
func WithClock(now func() int64) Option {
	return func(o *options) {
		o.now = now
	}
}
