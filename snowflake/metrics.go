package snowflake

// 指标常量定义
const (
	// MetricGenerated ID 生成总数 (Counter)
	MetricGenerated = "snowid_generated_total"

	// MetricClockBackwards 时钟回拨失败总数 (Counter)
	MetricClockBackwards = "snowid_clock_backwards_total"

	// MetricSequenceWait 序列号耗尽等待时长，毫秒 (Histogram)
	MetricSequenceWait = "snowid_sequence_wait_ms"
)
