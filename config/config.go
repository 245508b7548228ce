package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Routing  RoutingConfig  `yaml:"routing"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

// RoutingConfig 路由引擎参数
type RoutingConfig struct {
	DefaultStrategy string `yaml:"default_strategy"` // best_match, least_occupied, skills_first, round_robin
	DefaultFallback string `yaml:"default_fallback"` // queue, escalate, reject

	// best_match 各子分数权重
	SkillWeight      float64 `yaml:"skill_weight"`
	WorkloadWeight   float64 `yaml:"workload_weight"`
	PreferenceWeight float64 `yaml:"preference_weight"`

	// 偏好加分
	PreferredAgentBonus    float64 `yaml:"preferred_agent_bonus"`
	PrimaryLanguageBonus   float64 `yaml:"primary_language_bonus"`
	SecondaryLanguageBonus float64 `yaml:"secondary_language_bonus"`

	// 队列等待时间估算：每个排队任务的平均处理秒数
	AvgHandleSeconds int `yaml:"avg_handle_seconds"`
	// 队列分发时保留的容量比例，避免把坐席排满
	CapacityReserveRatio float64 `yaml:"capacity_reserve_ratio"`
	// 技能层级解析最大深度，防止环
	MaxHierarchyDepth int `yaml:"max_hierarchy_depth"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Routing: DefaultRoutingConfig(),
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}

	return config
}

// DefaultRoutingConfig 路由参数默认值
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		DefaultStrategy:        "best_match",
		DefaultFallback:        "reject",
		SkillWeight:            1.0,
		WorkloadWeight:         0.5,
		PreferenceWeight:       1.0,
		PreferredAgentBonus:    25,
		PrimaryLanguageBonus:   10,
		SecondaryLanguageBonus: 5,
		AvgHandleSeconds:       120,
		CapacityReserveRatio:   0.8,
		MaxHierarchyDepth:      8,
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
