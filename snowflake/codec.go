// Package snowflake 提供 64 位时间有序的分布式 ID 生成与解析能力。
//
// ID 位结构（高位到低位）：
//
//	1 bit 未使用 | 41 bit 时间戳偏移 (now - epoch) | 5 bit 数据中心 | 5 bit 工作节点 | 12 bit 序列号
//
// 时间戳以毫秒计，41 bit 自纪元起可覆盖约 69 年；单节点每毫秒最多
// 生成 4096 个 ID（约 409.6 万/秒），无需任何跨实例协调。
//
// 基本使用：
//
//	gen, _ := snowflake.New(&snowflake.Config{DatacenterID: 1, WorkerID: 7})
//	id, _ := gen.NextString()
//	parts, _ := snowflake.DecodeString(id, snowflake.DefaultEpoch)
package snowflake

import (
	"strconv"
	"time"

	"github.com/ceyewan/snowid/xerrors"
)

const (
	// DefaultEpoch 默认纪元：2020-01-01T00:00:00.000Z（毫秒）
	DefaultEpoch int64 = 1577836800000

	// 各字段位宽
	timestampBits  = 41
	datacenterBits = 5
	workerBits     = 5
	sequenceBits   = 12

	// 各字段最大值
	MaxDatacenterID int64 = (1 << datacenterBits) - 1 // 31
	MaxWorkerID     int64 = (1 << workerBits) - 1     // 31
	MaxSequence     int64 = (1 << sequenceBits) - 1   // 4095
	maxTimestamp    int64 = (1 << timestampBits) - 1

	// 各字段移位量（预计算，运行时零开销）
	timestampShift  = datacenterBits + workerBits + sequenceBits // 22
	datacenterShift = workerBits + sequenceBits                  // 17
	workerShift     = sequenceBits                               // 12
)

// Encode 将四个逻辑字段打包为一个 64 位 ID
//
// 纯移位与按位或，不做任何字段校验；调用方（Generator）负责保证
// timestampOffset 非负且不超过 41 bit。
func Encode(timestampOffset, datacenterID, workerID, sequence int64) uint64 {
	return uint64(timestampOffset)<<timestampShift |
		uint64(datacenterID)<<datacenterShift |
		uint64(workerID)<<workerShift |
		uint64(sequence)
}

// Decoded ID 解析结果
type Decoded struct {
	// Timestamp 生成时刻的 Unix 毫秒时间戳 (偏移量 + epoch)
	Timestamp int64 `json:"timestamp"`

	// DatacenterID 数据中心 ID [0, 31]
	DatacenterID int64 `json:"datacenter_id"`

	// WorkerID 工作节点 ID [0, 31]
	WorkerID int64 `json:"worker_id"`

	// Sequence 毫秒内序列号 [0, 4095]
	Sequence int64 `json:"sequence"`

	// Time 生成时刻对应的日历时间
	Time time.Time `json:"time"`
}

// Decode 将 64 位 ID 还原为各逻辑字段
//
// epoch 是调用方上下文，并不内嵌在 ID 中：用与编码时不同的 epoch
// 解码会得到一个错误但确定的时间戳，这是刻意的设计。
// epoch <= 0 时使用 DefaultEpoch。
func Decode(id uint64, epoch int64) Decoded {
	if epoch <= 0 {
		epoch = DefaultEpoch
	}
	ts := int64(id>>timestampShift) + epoch
	return Decoded{
		Timestamp:    ts,
		DatacenterID: int64(id>>datacenterShift) & MaxDatacenterID,
		WorkerID:     int64(id>>workerShift) & MaxWorkerID,
		Sequence:     int64(id) & MaxSequence,
		Time:         time.UnixMilli(ts).UTC(),
	}
}

// DecodeString 解析十进制字符串形式的 ID
//
// 非法输入（非数字字符串）立即返回错误，不会产生无声的错误分解。
func DecodeString(s string, epoch int64) (Decoded, error) {
	id, err := ParseID(s)
	if err != nil {
		return Decoded{}, err
	}
	return Decode(id, epoch), nil
}

// ParseID 将十进制字符串解析为 64 位无符号 ID
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerrors.WithCode(xerrors.Wrapf(ErrMalformedID, "%q", s), "malformed_id")
	}
	return id, nil
}

// Timestamp 提取 ID 的毫秒时间戳字段
//
// epoch 必须与编码时一致才能得到正确结果；epoch <= 0 时使用 DefaultEpoch。
func Timestamp(id uint64, epoch int64) int64 {
	if epoch <= 0 {
		epoch = DefaultEpoch
	}
	return int64(id>>timestampShift) + epoch
}

// ToTime 提取 ID 的生成时刻，返回日历时间
//
// epoch <= 0 时使用 DefaultEpoch。
func ToTime(id uint64, epoch int64) time.Time {
	return time.UnixMilli(Timestamp(id, epoch)).UTC()
}
