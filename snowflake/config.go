package snowflake

import (
	"fmt"

	"github.com/ceyewan/snowid/xerrors"
)

// Config 生成器配置，三个字段均可选
type Config struct {
	// Epoch 时间字段的零点，Unix 毫秒时间戳
	// 默认 DefaultEpoch (2020-01-01T00:00:00.000Z)
	Epoch int64 `yaml:"epoch" json:"epoch"`

	// DatacenterID 数据中心 ID [0, 31]，默认 0
	DatacenterID int64 `yaml:"datacenter_id" json:"datacenter_id"`

	// WorkerID 工作节点 ID [0, 31]，默认 0
	WorkerID int64 `yaml:"worker_id" json:"worker_id"`
}

func (c *Config) setDefaults() {
	if c.Epoch == 0 {
		c.Epoch = DefaultEpoch
	}
}

func (c *Config) validate() error {
	if c.DatacenterID < 0 || c.DatacenterID > MaxDatacenterID {
		return xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidConfig, "datacenter_id %d must be in [0, %d]", c.DatacenterID, MaxDatacenterID),
			"datacenter_id_out_of_range",
		)
	}
	if c.WorkerID < 0 || c.WorkerID > MaxWorkerID {
		return xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidConfig, "worker_id %d must be in [0, %d]", c.WorkerID, MaxWorkerID),
			"worker_id_out_of_range",
		)
	}
	if c.Epoch < 0 {
		return xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidConfig, "epoch %d must be non-negative", c.Epoch),
			"epoch_negative",
		)
	}
	return nil
}

// String 便于日志输出
func (c *Config) String() string {
	return fmt.Sprintf("epoch=%d dc=%d worker=%d", c.Epoch, c.DatacenterID, c.WorkerID)
}
