package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default は何も上書きしない場合の設定を返します。
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "",
			Name:            "habit_tracker",
			SSLMode:         "disable",
			TimeZone:        "UTC",
			ConnectTimeout:  60 * time.Second,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		JWT: JWTConfig{
			Secret:    "",
			ExpiresIn: 7 * 24 * time.Hour,
		},
		Bcrypt: BcryptConfig{
			Rounds: 12,
		},
		Redis: RedisConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    "6379",
			DB:      0,
			Prefix:  "habit",
		},
		Log: LogConfig{
			Level: "INFO",
			JSON:  false,
			File:  "",
			Rotation: LogRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   1,
			AuthBurst: 10,
		},
		RunMigrations: false,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("db.host", d.DB.Host)
	v.SetDefault("db.port", d.DB.Port)
	v.SetDefault("db.user", d.DB.User)
	v.SetDefault("db.password", d.DB.Password)
	v.SetDefault("db.name", d.DB.Name)
	v.SetDefault("db.sslmode", d.DB.SSLMode)
	v.SetDefault("db.timezone", d.DB.TimeZone)
	v.SetDefault("db.connect_timeout", d.DB.ConnectTimeout)
	v.SetDefault("db.max_open_conns", d.DB.MaxOpenConns)
	v.SetDefault("db.max_idle_conns", d.DB.MaxIdleConns)
	v.SetDefault("db.conn_max_lifetime", d.DB.ConnMaxLifetime)

	v.SetDefault("jwt.secret", d.JWT.Secret)
	v.SetDefault("jwt.expires_in", d.JWT.ExpiresIn)

	v.SetDefault("bcrypt.rounds", d.Bcrypt.Rounds)

	v.SetDefault("redis.enabled", d.Redis.Enabled)
	v.SetDefault("redis.host", d.Redis.Host)
	v.SetDefault("redis.port", d.Redis.Port)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)

	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)

	v.SetDefault("ratelimit.auth_rps", d.RateLimit.AuthRPS)
	v.SetDefault("ratelimit.auth_burst", d.RateLimit.AuthBurst)

	v.SetDefault("run_migrations", d.RunMigrations)
}
