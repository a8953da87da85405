package metrics

import "go.opentelemetry.io/otel/attribute"

// Label 指标标签结构体
// 用于为指标添加维度信息，实现指标的细粒度分组和筛选
//
// 标签命名规范：
//   - 使用小写字母和下划线：worker_id 而不是 workerId
//   - 标签值相对稳定：避免高基数标签，如完整的 ID 值
type Label struct {
	Key   string
	Value string
}

// L 便捷构造函数，创建一个 Label 实例
//
//	counter.Inc(ctx, metrics.L("worker_id", "1"))
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}

// toAttributes 将 Label 切片转换为 OTel 属性（内部使用）
func toAttributes(labels []Label) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		attrs = append(attrs, attribute.String(l.Key, l.Value))
	}
	return attrs
}
