package metrics

// Config 指标系统的配置结构体
// 用于控制指标系统的启用状态、服务标识和 Prometheus 暴露配置
//
// 典型配置示例（YAML）：
//
//	metrics:
//	  enabled: true
//	  service_name: "snowid"
//	  version: "v1.0.0"
//	  port: 9090
//	  path: "/metrics"
type Config struct {
	// Enabled 是否启用指标收集
	// 为 false 时，metrics.New() 会返回 noop Meter，所有操作都是空操作
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ServiceName 服务名称，作为 OTel Resource 的 service.name 属性
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Version 服务版本，作为 OTel Resource 的 service.version 属性
	Version string `mapstructure:"version" yaml:"version"`

	// Port Prometheus HTTP 服务器监听的端口
	// 大于 0 时启动 HTTP 服务器用于暴露 Prometheus 格式的指标
	Port int `mapstructure:"port" yaml:"port"`

	// Path Prometheus 指标的 HTTP 路径，默认 "/metrics"
	Path string `mapstructure:"path" yaml:"path"`
}

func (c *Config) setDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "snowid"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}
