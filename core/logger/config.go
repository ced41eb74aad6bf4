package logger

// Config defines logging related configuration.
type Config struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Dir     string `yaml:"dir"`
	BotFile string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}
