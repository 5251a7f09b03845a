package util

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

// Config is lorekeep base configuration
type Config struct {
	Server   Server   `yaml:"server"`
	Lorekeep Lorekeep `yaml:"lorekeep"`
}

type Server struct {
	Bind          string `yaml:"bind"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	LogPath       string `yaml:"logPath"`
}

type Lorekeep struct {
	FQDN           string `yaml:"fqdn"`
	JwtSecret      string `yaml:"jwtSecret"`
	TokenTTLHours  int    `yaml:"tokenTTLHours"`
	CaptchaSecret  string `yaml:"captchaSecret"`
	CaptchaSitekey string `yaml:"captchaSitekey"`
}

// Load loads lorekeep config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Fatal("failed to load configuration file:", err)
		return err
	}

	return nil
}
