// Package config 为 snowflake 生成器提供配置来源适配。
//
// 核心只消费一个 snowflake.Config；本包负责从各外部来源取值并按
// 固定优先级合并：
//
//	显式覆盖 > 持久化文件 / 环境变量 > 主机指纹推导 > 库默认值
//
// 环境变量（前缀可配，默认 SNOWID）：
//
//	SNOWID_EPOCH          纪元，Unix 毫秒时间戳
//	SNOWID_DATACENTER_ID  数据中心 ID [0, 31]
//	SNOWID_WORKER_ID      工作节点 ID [0, 31]
//
// 每个键都在合并前由适配器独立校验；非法值立即失败，不会静默落入
// 生成器的构造校验。
//
// 基本使用：
//
//	resolver, _ := config.New(
//	    config.WithFile("/etc/snowid/snowid.yaml"),
//	    config.WithFingerprint(true),
//	)
//	cfg, _ := resolver.Resolve()
//	gen, _ := snowflake.New(cfg)
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/snowflake"
	"github.com/ceyewan/snowid/xerrors"
)

// 配置键名，文件与环境变量共用（环境变量大写并加前缀）
const (
	KeyEpoch        = "epoch"
	KeyDatacenterID = "datacenter_id"
	KeyWorkerID     = "worker_id"
)

// Resolver 配置解析器
//
// 一个 Resolver 绑定一组来源选项，可重复调用 Resolve；配置文件
// 变更时可通过 Watch 获得通知。
type Resolver struct {
	v      *viper.Viper
	opts   *options
	logger clog.Logger
}

// New 创建配置解析器
func New(opts ...Option) (*Resolver, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{KeyEpoch, KeyDatacenterID, KeyWorkerID} {
		if err := v.BindEnv(key); err != nil {
			return nil, xerrors.Wrapf(err, "bind env %s", key)
		}
	}

	return &Resolver{
		v:      v,
		opts:   o,
		logger: o.logger.WithNamespace("config"),
	}, nil
}

// Resolve 从所有来源加载并合并配置
//
// 缺失的配置文件不是错误（与持久化存储为空同义）；已存在但无法
// 解析的文件和非法的键值会立即失败。
func (r *Resolver) Resolve() (*snowflake.Config, error) {
	if err := r.loadDotEnv(); err != nil {
		return nil, err
	}
	if err := r.loadFile(); err != nil {
		return nil, err
	}

	cfg := &snowflake.Config{}

	epoch, ok, err := r.intValue(KeyEpoch, r.opts.epoch, 0, "epoch_invalid")
	if err != nil {
		return nil, err
	}
	if ok {
		cfg.Epoch = epoch
	}

	dcID, dcSet, err := r.intValue(KeyDatacenterID, r.opts.datacenterID, snowflake.MaxDatacenterID, "datacenter_id_invalid")
	if err != nil {
		return nil, err
	}
	workerID, workerSet, err := r.intValue(KeyWorkerID, r.opts.workerID, snowflake.MaxWorkerID, "worker_id_invalid")
	if err != nil {
		return nil, err
	}

	// 指纹仅作为 dc/worker 的兜底默认值，从不用于 epoch
	if r.opts.fingerprint && (!dcSet || !workerSet) {
		fp, err := HostFingerprint()
		if err != nil {
			return nil, xerrors.Wrap(err, "derive host fingerprint")
		}
		if !dcSet {
			dcID, dcSet = fp.DatacenterID, true
		}
		if !workerSet {
			workerID, workerSet = fp.WorkerID, true
		}
		r.logger.Debug("fingerprint defaults applied",
			clog.Int64("datacenter_id", fp.DatacenterID),
			clog.Int64("worker_id", fp.WorkerID),
		)
	}

	if dcSet {
		cfg.DatacenterID = dcID
	}
	if workerSet {
		cfg.WorkerID = workerID
	}

	r.logger.Info("configuration resolved",
		clog.Int64("epoch", cfg.Epoch),
		clog.Int64("datacenter_id", cfg.DatacenterID),
		clog.Int64("worker_id", cfg.WorkerID),
	)

	return cfg, nil
}

// Watch 监听配置文件变更并回调最新的解析结果
//
// 仅在配置了 WithFile 时生效；解析失败的变更会被记录并忽略，
// 不会传播给回调。
func (r *Resolver) Watch(onChange func(*snowflake.Config)) {
	if r.opts.filePath == "" {
		return
	}
	r.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := r.Resolve()
		if err != nil {
			r.logger.Warn("ignoring invalid config change",
				clog.String("file", e.Name),
				clog.Err(err),
			)
			return
		}
		onChange(cfg)
	})
	r.v.WatchConfig()
}

// loadDotEnv 尝试加载 .env 文件；文件缺失不是错误
func (r *Resolver) loadDotEnv() error {
	if r.opts.dotEnvPath == "" {
		return nil
	}
	if err := loadDotEnvFile(r.opts.dotEnvPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return xerrors.Wrapf(err, "load %s", r.opts.dotEnvPath)
	}
	return nil
}

// loadFile 读取持久化配置文件；文件缺失不是错误
func (r *Resolver) loadFile() error {
	if r.opts.filePath == "" {
		return nil
	}
	r.v.SetConfigFile(r.opts.filePath)
	if err := r.v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return xerrors.Wrapf(err, "read config file %s", r.opts.filePath)
	}
	return nil
}

// intValue 按优先级取单个整数键：显式覆盖 > viper (env > file)
//
// max > 0 时校验取值范围 [0, max]；返回值中的 bool 表示该键是否
// 由任一来源显式提供。
func (r *Resolver) intValue(key string, override *int64, max int64, code string) (int64, bool, error) {
	if override != nil {
		if err := checkRange(key, *override, max, code); err != nil {
			return 0, false, err
		}
		return *override, true, nil
	}

	if !r.v.IsSet(key) {
		return 0, false, nil
	}

	raw := r.v.GetString(key)
	val, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false, xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidValue, "%s=%q is not an integer", key, raw),
			code,
		)
	}
	if err := checkRange(key, val, max, code); err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func checkRange(key string, val, max int64, code string) error {
	if val < 0 {
		return xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidValue, "%s=%d must be non-negative", key, val),
			code,
		)
	}
	if max > 0 && val > max {
		return xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidValue, "%s=%d must be in [0, %d]", key, val, max),
			code,
		)
	}
	return nil
}
