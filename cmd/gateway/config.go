package main

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

type GatewayConfig struct {
	Listen     string    `yaml:"listen"`
	SigninPath string    `yaml:"signinPath"`
	Protected  []string  `yaml:"protected"`
	Services   []Service `yaml:"services"`
}

type ServiceInfo struct {
	Path string `json:"path"`
}

type Service struct {
	Name         string `yaml:"name"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Path         string `yaml:"path"`
	PreservePath bool   `yaml:"preservePath"`
	InjectCors   bool   `yaml:"injectCors"`
}

// Load loads gateway config from given path
func (c *GatewayConfig) Load(path string) error {
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
