package config

// StorageConfig содержит настройки S3-совместимого хранилища изображений.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint" env:"WHISPR_STORAGE_ENDPOINT" env-default:"http://localhost:9000"`
	Region        string `yaml:"region" env:"WHISPR_STORAGE_REGION" env-default:"us-east-1"`
	Bucket        string `yaml:"bucket" env:"WHISPR_STORAGE_BUCKET" env-default:"whispr"`
	AccessKey     string `yaml:"access_key" env:"WHISPR_STORAGE_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey     string `yaml:"secret_key" env:"WHISPR_STORAGE_SECRET_KEY" env-default:"minioadmin"`
	PublicBaseURL string `yaml:"public_base_url" env:"WHISPR_STORAGE_PUBLIC_BASE_URL" env-default:""`
	Folder        string `yaml:"folder" env:"WHISPR_STORAGE_FOLDER" env-default:"diary_images"`
	MaxUploadMB   int    `yaml:"max_upload_mb" env:"WHISPR_STORAGE_MAX_UPLOAD_MB" env-default:"10"`
	UsePathStyle  bool   `yaml:"use_path_style" env:"WHISPR_STORAGE_USE_PATH_STYLE" env-default:"true"`
}

// GetMaxUploadBytes возвращает лимит размера изображения в байтах.
func (c *StorageConfig) GetMaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}
