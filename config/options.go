package config

import (
	"github.com/joho/godotenv"

	"github.com/ceyewan/snowid/clog"
)

// Option 解析器选项函数
type Option func(*options)

// options 内部选项结构
type options struct {
	envPrefix   string
	filePath    string
	dotEnvPath  string
	fingerprint bool
	logger      clog.Logger

	// 显式覆盖，优先级最高
	epoch        *int64
	datacenterID *int64
	workerID     *int64
}

func defaultOptions() *options {
	return &options{
		envPrefix: "SNOWID",
		logger:    clog.Discard(),
	}
}

// WithEnvPrefix 设置环境变量前缀，默认 "SNOWID"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithFile 设置持久化配置文件路径（yaml）
//
// 文件缺失视为存储为空，不是错误。
func WithFile(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// WithDotEnv 在解析前加载指定的 .env 文件
func WithDotEnv(path string) Option {
	return func(o *options) {
		o.dotEnvPath = path
	}
}

// WithFingerprint 启用主机指纹兜底
//
// 当 dc/worker 未被任何来源提供时，用主机特征推导确定性的默认值；
// epoch 从不参与指纹推导。
func WithFingerprint(enabled bool) Option {
	return func(o *options) {
		o.fingerprint = enabled
	}
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEpoch 显式覆盖纪元
func WithEpoch(epoch int64) Option {
	return func(o *options) {
		o.epoch = &epoch
	}
}

// WithDatacenterID 显式覆盖数据中心 ID
func WithDatacenterID(id int64) Option {
	return func(o *options) {
		o.datacenterID = &id
	}
}

// WithWorkerID 显式覆盖工作节点 ID
func WithWorkerID(id int64) Option {
	return func(o *options) {
		o.workerID = &id
	}
}

// loadDotEnvFile 隔离 godotenv 调用，便于测试
func loadDotEnvFile(path string) error {
	return godotenv.Load(path)
}
