package snowflake

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/metrics"
	"github.com/ceyewan/snowid/xerrors"
)

// Generator 雪花算法生成器
//
// 每个实例独占自己的可变状态（lastTime/sequence），持有互斥锁保证
// 并发调用下的唯一性与单调性；不同实例之间不共享任何状态。
type Generator struct {
	mu           sync.Mutex
	epoch        int64
	datacenterID int64
	workerID     int64
	sequence     int64
	lastTime     int64

	now    func() int64
	logger clog.Logger

	generated     metrics.Counter
	clockFailures metrics.Counter
	sequenceWait  metrics.Histogram
}

// New 创建雪花算法生成器
//
// cfg 为 nil 时等价于全默认配置（epoch=DefaultEpoch，dc=0，worker=0）。
// datacenterID 和 workerID 必须各自落在 [0, 31]，否则构造失败。
//
// 使用示例：
//
//	gen, _ := snowflake.New(&snowflake.Config{
//	    DatacenterID: 1,
//	    WorkerID:     7,
//	}, snowflake.WithLogger(logger))
//	id, _ := gen.NextString()
func New(cfg *Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.logger == nil {
		opt.logger = clog.Discard()
	}
	if opt.now == nil {
		opt.now = func() int64 { return time.Now().UnixMilli() }
	}

	g := &Generator{
		epoch:        cfg.Epoch,
		datacenterID: cfg.DatacenterID,
		workerID:     cfg.WorkerID,
		lastTime:     -1,
		now:          opt.now,
		logger:       opt.logger.With(clog.String("component", "snowflake")),
	}

	if opt.meter != nil {
		var err error
		if g.generated, err = opt.meter.Counter(MetricGenerated, "已生成的 ID 总数"); err != nil {
			return nil, xerrors.Wrap(err, "create generated counter")
		}
		if g.clockFailures, err = opt.meter.Counter(MetricClockBackwards, "时钟回拨失败总数"); err != nil {
			return nil, xerrors.Wrap(err, "create clock backwards counter")
		}
		if g.sequenceWait, err = opt.meter.Histogram(MetricSequenceWait, "序列号耗尽等待时长", metrics.WithUnit("ms")); err != nil {
			return nil, xerrors.Wrap(err, "create sequence wait histogram")
		}
	}

	g.logger.Info("snowflake generator created",
		clog.Int64("epoch", cfg.Epoch),
		clog.Int64("datacenter_id", cfg.DatacenterID),
		clog.Int64("worker_id", cfg.WorkerID),
	)

	return g, nil
}

// Next 生成一个 64 位 ID
//
// 同一实例的并发调用安全；同一毫秒内通过 12 bit 序列号区分，序列号
// 耗尽时自旋等待时钟进入下一毫秒（最长不到 1ms），对调用方仅表现为
// 额外延迟。时钟回拨返回 ErrClockBackwards 硬失败，不做自动重试。
func (g *Generator) Next() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if now < g.lastTime {
		if g.clockFailures != nil {
			g.clockFailures.Inc(context.Background())
		}
		g.logger.Error("clock moved backwards",
			clog.Int64("last_ms", g.lastTime),
			clog.Int64("now_ms", now),
		)
		return 0, xerrors.Wrapf(ErrClockBackwards, "last=%dms now=%dms", g.lastTime, now)
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & MaxSequence
		if g.sequence == 0 {
			// 序列号溢出，自旋等待下一毫秒
			start := time.Now()
			for now <= g.lastTime {
				now = g.now()
			}
			if g.sequenceWait != nil {
				g.sequenceWait.Record(context.Background(), float64(time.Since(start).Microseconds())/1000.0)
			}
		}
	} else {
		g.sequence = 0
	}

	offset := now - g.epoch
	if offset < 0 || offset > maxTimestamp {
		return 0, xerrors.WithCode(
			xerrors.Wrapf(ErrTimestampRange, "offset=%dms epoch=%d", offset, g.epoch),
			"timestamp_out_of_range",
		)
	}

	g.lastTime = now

	if g.generated != nil {
		g.generated.Inc(context.Background())
	}

	return Encode(offset, g.datacenterID, g.workerID, g.sequence), nil
}

// NextString 生成一个 ID 并返回其十进制字符串形式
//
// 64 位值在某些宿主环境中超出安全整数范围，对外交换时优先使用
// 字符串形式。
func (g *Generator) NextString() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(id, 10), nil
}

// Decode 用本生成器的 epoch 解析一个 ID
func (g *Generator) Decode(id uint64) Decoded {
	return Decode(id, g.epoch)
}
