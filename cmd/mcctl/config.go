package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mcctl/internal/client"
)

type fileConfig struct {
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	Name               string `toml:"name"`
	ProtocolVersion    int32  `toml:"protocol_version"`
	ConnectTimeout     string `toml:"connect_timeout"`
	MaxConnectAttempts int    `toml:"max_connect_attempts"`
	FirstPacketPolicy  string `toml:"first_packet_policy"`
	PlainChat          bool   `toml:"plain_chat"`
	FaviconPath        string `toml:"favicon_path"`
	MetricsAddr        string `toml:"metrics_addr"`
}

// appConfig is the client config plus the CLI-only settings around it.
type appConfig struct {
	Client      client.Config
	FaviconPath string
	MetricsAddr string
}

func defaultAppConfig() appConfig {
	return appConfig{
		Client:      client.DefaultConfig(),
		FaviconPath: "server-icon.png",
	}
}

func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load mcctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return appConfig{}, fmt.Errorf("load mcctl config: unknown keys %v", undecoded)
	}

	if meta.IsDefined("host") {
		cfg.Client.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		if raw.Port <= 0 || raw.Port > 65535 {
			return appConfig{}, fmt.Errorf("parse port: %d out of range", raw.Port)
		}
		cfg.Client.Port = uint16(raw.Port)
	}
	if meta.IsDefined("name") {
		cfg.Client.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("protocol_version") {
		cfg.Client.ProtocolVersion = raw.ProtocolVersion
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse connect_timeout: %w", err)
		}
		cfg.Client.Session.ConnectTimeout = d
	}
	if meta.IsDefined("max_connect_attempts") {
		cfg.Client.Session.MaxConnectAttempts = raw.MaxConnectAttempts
	}
	if meta.IsDefined("first_packet_policy") {
		cfg.Client.FirstPacketPolicy = client.FirstPacketPolicy(strings.ToLower(strings.TrimSpace(raw.FirstPacketPolicy)))
	}
	if meta.IsDefined("plain_chat") {
		cfg.Client.PlainChat = raw.PlainChat
	}
	if meta.IsDefined("favicon_path") {
		cfg.FaviconPath = strings.TrimSpace(raw.FaviconPath)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if err := cfg.Client.Validate(); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
