package config

import (
	"github.com/spf13/viper"

	"github.com/ceyewan/snowid/snowflake"
	"github.com/ceyewan/snowid/xerrors"
)

// Save 将配置写入持久化文件
//
// 与 WithFile 读取的格式一致（由扩展名决定，推荐 yaml）；写入前
// 做与读取侧相同的范围校验，保证存储里不会出现非法值。
func Save(path string, cfg *snowflake.Config) error {
	if cfg == nil {
		return xerrors.Wrap(ErrInvalidValue, "nil config")
	}
	if err := checkRange(KeyDatacenterID, cfg.DatacenterID, snowflake.MaxDatacenterID, "datacenter_id_invalid"); err != nil {
		return err
	}
	if err := checkRange(KeyWorkerID, cfg.WorkerID, snowflake.MaxWorkerID, "worker_id_invalid"); err != nil {
		return err
	}
	if err := checkRange(KeyEpoch, cfg.Epoch, 0, "epoch_invalid"); err != nil {
		return err
	}

	v := viper.New()
	v.Set(KeyEpoch, cfg.Epoch)
	v.Set(KeyDatacenterID, cfg.DatacenterID)
	v.Set(KeyWorkerID, cfg.WorkerID)

	if err := v.WriteConfigAs(path); err != nil {
		return xerrors.Wrapf(err, "write config file %s", path)
	}
	return nil
}
