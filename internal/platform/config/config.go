// Package config は.envファイル、任意のYAMLファイル、環境変数からサーバー設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config はサーバー設定の全体です。
type Config struct {
	Server        ServerConfig    `mapstructure:"server"         yaml:"server"`
	DB            DBConfig        `mapstructure:"db"             yaml:"db"`
	JWT           JWTConfig       `mapstructure:"jwt"            yaml:"jwt"`
	Bcrypt        BcryptConfig    `mapstructure:"bcrypt"         yaml:"bcrypt"`
	Redis         RedisConfig     `mapstructure:"redis"          yaml:"redis"`
	Log           LogConfig       `mapstructure:"log"            yaml:"log"`
	CORS          CORSConfig      `mapstructure:"cors"           yaml:"cors"`
	RateLimit     RateLimitConfig `mapstructure:"ratelimit"      yaml:"ratelimit"`
	RunMigrations bool            `mapstructure:"run_migrations" yaml:"run_migrations"`
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Port            string        `mapstructure:"port"             yaml:"port"`
	Mode            string        `mapstructure:"mode"             yaml:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DBConfig はPostgreSQL接続とコネクションプールの設定です。
type DBConfig struct {
	Host            string        `mapstructure:"host"              yaml:"host"`
	Port            string        `mapstructure:"port"              yaml:"port"`
	User            string        `mapstructure:"user"              yaml:"user"`
	Password        string        `mapstructure:"password"          yaml:"password"`
	Name            string        `mapstructure:"name"              yaml:"name"`
	SSLMode         string        `mapstructure:"sslmode"           yaml:"sslmode"`
	TimeZone        string        `mapstructure:"timezone"          yaml:"timezone"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"   yaml:"connect_timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// JWTConfig はトークン署名の設定です。
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"     yaml:"secret"`
	ExpiresIn time.Duration `mapstructure:"expires_in" yaml:"expires_in"`
}

type BcryptConfig struct {
	Rounds int `mapstructure:"rounds" yaml:"rounds"`
}

// RedisConfig は失効トークンストアの設定です。
// Enabledがfalseまたは接続できない場合、失効トークンはデータベースで管理します。
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"  yaml:"enabled"`
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     string `mapstructure:"port"     yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db"       yaml:"db"`
	Prefix   string `mapstructure:"prefix"   yaml:"prefix"`
}

// Addr はhost:port形式のアドレスを返します。
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LogConfig はログ出力の設定です。Fileが空の場合は標準出力のみに出力します。
type LogConfig struct {
	Level    string            `mapstructure:"level"    yaml:"level"`
	JSON     bool              `mapstructure:"json"     yaml:"json"`
	File     string            `mapstructure:"file"     yaml:"file"`
	Rotation LogRotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// LogRotationConfig はlumberjackによるローテーション設定です。
type LogRotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

// CORSConfig はCORSの許可オリジンです。"*"を含む場合は全オリジンを許可します。
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// RateLimitConfig は認証エンドポイントのクライアントIPごとの頻度制限です。
type RateLimitConfig struct {
	AuthRPS   float64 `mapstructure:"auth_rps"   yaml:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst" yaml:"auth_burst"`
}

var envFiles = []string{".env", ".env.local"}

// Load は設定を読み込みます。優先順位は環境変数、pathのYAMLファイル（指定時）、既定値の順です。
// 環境変数名はキーの"."を"_"に置き換えて大文字にしたものです。
// 例: DB_HOST, JWT_SECRET, REDIS_HOST, RUN_MIGRATIONS
func Load(path string) (*Config, error) {
	for _, envFile := range envFiles {
		// .envが無くてもエラーにしない
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// Validate はサーバーを起動できない設定値をまとめてエラーとして返します。
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port must be set"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("jwt.expires_in must be positive"))
	}
	if c.Bcrypt.Rounds < 4 || c.Bcrypt.Rounds > 31 {
		errs = append(errs, fmt.Errorf("bcrypt.rounds must be between 4 and 31: got %d", c.Bcrypt.Rounds))
	}
	return errors.Join(errs...)
}
