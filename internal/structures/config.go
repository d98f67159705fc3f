package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SaveConfig is the default field selection applied when a caller does not
// supply its own. User maps attribute names (phone_number, verified, ...)
// to an include flag; names absent from the map are never copied.
type SaveConfig struct {
	Tweets     bool            `yaml:"tweets"`
	DMs        bool            `yaml:"dms"`
	Mutes      bool            `yaml:"mutes"`
	Favorites  bool            `yaml:"favorites"`
	Blocks     bool            `yaml:"blocks"`
	Followers  bool            `yaml:"followers"`
	Followings bool            `yaml:"followings"`
	Moments    bool            `yaml:"moments"`
	Lists      bool            `yaml:"lists"`
	AdArchive  bool            `yaml:"adArchive"`
	User       map[string]bool `yaml:"user"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string
	Logger  LoggerConfig  `yaml:"logger"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
	Save    SaveConfig    `yaml:"save"`
}
