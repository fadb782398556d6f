package config

// YAMLConfig represents the application's configuration.
type YAMLConfig struct {
	// ImagesDir is the directory scanned for qualifying image files.
	ImagesDir  string        `yaml:"images_dir"`
	WorkingDir string        `yaml:"working_dir"`
	WAL        YAMLConfigWAL `yaml:"wal"`
}

// YAMLConfigWAL represents the configuration for the WAL.
type YAMLConfigWAL struct {
	MaxFileSize   int    `yaml:"max_file_size"`
	MaxBufferSize int    `yaml:"max_buffer_size"`
	Formatter     string `yaml:"formatter"`
}
