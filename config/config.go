// Package config 提供 YAML/JSON 配置加载与策略（Predictor）的注册表和工厂。
// 配置驱动的入口只需要一个配置文件即可组装完整引擎：数据集路径、
// 预测策略及其参数、服务端口、历史存储、建议规则。
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/rules"
)

// Config 是顶层配置。
type Config struct {
	Engine EngineConfig `yaml:"engine" json:"engine"`
	Server ServerConfig `yaml:"server" json:"server"`
	Rules  []rules.Rule `yaml:"rules" json:"rules"`
}

// EngineConfig 描述预测引擎：数据集 + 策略 + 策略参数。
// Params 的内容取决于策略类型，常用键：
//   - overlap:  min_threshold, tie_epsilon
//   - forest:   trees, seed, holdout_ratio, max_depth, top_k
//   - fallback: secondary（次级策略类型，默认 overlap）
//   - ensemble: members（策略类型列表）, timeout（秒）
type EngineConfig struct {
	Dataset  string         `yaml:"dataset" json:"dataset"`
	Strategy string         `yaml:"strategy" json:"strategy"`
	Params   map[string]any `yaml:"params" json:"params"`
}

// ServerConfig 描述 HTTP 服务与历史存储。
// RedisAddr 为空时历史记录落在进程内存。
type ServerConfig struct {
	Port         int    `yaml:"port" json:"port"`
	RedisAddr    string `yaml:"redis_addr" json:"redis_addr"`
	RedisDB      int    `yaml:"redis_db" json:"redis_db"`
	HistoryTTL   int    `yaml:"history_ttl" json:"history_ttl"`     // 秒，0 表示不过期
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// LoadFromFile 按扩展名加载 YAML（.yaml/.yml）或 JSON（.json）配置文件。
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if isJSON(path) {
		return FromJSON(data)
	}
	return FromYAML(data)
}

func isJSON(path string) bool {
	n := len(path)
	return n > 5 && path[n-5:] == ".json"
}

// FromYAML 解析 YAML 配置。
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

// FromJSON 解析 JSON 配置。
func FromJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

// ApplyDefaults 填充未设置的配置项。
func (c *Config) ApplyDefaults() {
	if c.Engine.Strategy == "" {
		c.Engine.Strategy = "forest"
	}
	if c.Engine.Params == nil {
		c.Engine.Params = map[string]any{}
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20 // 1 MiB
	}
}

// Validate 做启动前的基础校验。
func (c *Config) Validate() error {
	if c.Engine.Dataset == "" {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "engine.dataset is required")
	}
	if !IsRegistered(c.Engine.Strategy) {
		return core.NewDomainError(core.ModulePredict, core.ErrorCodeInvalidInput,
			fmt.Sprintf("unsupported strategy %q (supported: %v)", c.Engine.Strategy, SupportedTypes()))
	}
	return nil
}
