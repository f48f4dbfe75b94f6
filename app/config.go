package main

import "github.com/spf13/viper"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	CORSOrigin  string `mapstructure:"CORS_ORIGIN"`
	TokenSecret string `mapstructure:"TOKEN_SECRET"`

	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	StoreFilePath string `mapstructure:"STORE_FILE_PATH"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDB       string `mapstructure:"MONGO_DB"`

	BlobBackend    string `mapstructure:"BLOB_BACKEND"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	UploadURL      string `mapstructure:"UPLOAD_URL"`
	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`

	// RateLimitRPS of zero disables the limiter.
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", ":4000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("STORE_FILE_PATH", "data/state.json")
	viper.SetDefault("BLOB_BACKEND", "local")
	viper.SetDefault("UPLOAD_DIR", "public/uploads")
	viper.SetDefault("UPLOAD_URL", "/uploads")
	viper.SetDefault("RATE_LIMIT_BURST", 4)
}
