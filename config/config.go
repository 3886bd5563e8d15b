package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Related struct {
		PoolSize        int `yaml:"pool_size"`         // 候选池大小
		FallbackLimit   int `yaml:"fallback_limit"`    // 兜底补足单次抓取上限
		CacheTTLMin     int `yaml:"cache_ttl_min"`     // 推荐结果缓存有效期（分钟）
		StoreTimeoutSec int `yaml:"store_timeout_sec"` // 单次数据库查询超时（秒）
		DefaultLimit    int `yaml:"default_limit"`     // 未指定limit时的默认返回数量
	} `yaml:"related"`
	SEO struct {
		BaseURL        string `yaml:"base_url"`        // 站点基础URL，用于canonical和sitemap
		SiteName       string `yaml:"site_name"`       // 站点名称，拼接到页面title
		DescriptionLen int    `yaml:"description_len"` // meta description截断长度
	} `yaml:"seo"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
		WarmupHour       int `yaml:"warmup_hour"`        // 每天预热推荐缓存的小时（0-23）
		WarmupMin        int `yaml:"warmup_min"`         // 每天预热推荐缓存的分钟（0-59）
		WarmupCount      int `yaml:"warmup_count"`       // 预热下载量最高的模板数量
		SweepIntervalMin int `yaml:"sweep_interval_min"` // 过期缓存清理间隔（分钟）
	} `yaml:"scheduler"`
}

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		// 计算 Server.Addr 字段
		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

		// 从环境变量中加载敏感信息和用户名
		if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
			cfg.DB.Username = envUsername
		}
		if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
			cfg.DB.Password = envPassword
		}

		// 计算 DB.DSN 字段
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = buildDSN(&cfg)
		}

		applyDefaults(&cfg)
		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

func buildDSN(cfg *Config) string {
	// 设置默认值
	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}

	parseTime := ""
	if cfg.DB.ParseTime {
		parseTime = "&parseTime=true"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
		cfg.DB.Charset,
		parseTime)
}

// applyDefaults 为推荐引擎和SEO相关配置填充默认值
func applyDefaults(cfg *Config) {
	if cfg.Related.PoolSize <= 0 {
		cfg.Related.PoolSize = 100
	}
	if cfg.Related.FallbackLimit <= 0 {
		cfg.Related.FallbackLimit = 50
	}
	if cfg.Related.CacheTTLMin <= 0 {
		cfg.Related.CacheTTLMin = 30
	}
	if cfg.Related.StoreTimeoutSec <= 0 {
		cfg.Related.StoreTimeoutSec = 5
	}
	if cfg.Related.DefaultLimit <= 0 {
		cfg.Related.DefaultLimit = 6
	}
	if cfg.SEO.DescriptionLen <= 0 {
		cfg.SEO.DescriptionLen = 160
	}
	if cfg.SEO.SiteName == "" {
		cfg.SEO.SiteName = "Template Directory"
	}
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	// 设置服务器地址
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	// 只从环境变量中加载敏感信息
	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	} else if host := os.Getenv("DATABASE_HOST"); host != "" {
		cfg.DB.Host = host
		if p, err := strconv.Atoi(os.Getenv("DATABASE_PORT")); err == nil {
			cfg.DB.Port = p
		}
		cfg.DB.Database = os.Getenv("DATABASE_NAME")
		cfg.DB.DSN = buildDSN(&cfg)
	}

	if base := os.Getenv("SEO_BASE_URL"); base != "" {
		cfg.SEO.BaseURL = base
	}

	applyDefaults(&cfg)
	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}
