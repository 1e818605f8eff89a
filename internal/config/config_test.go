package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoad 使用表驱动测试覆盖配置加载的核心场景
func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "正常加载有效YAML",
			createFile: true,
			content: `server:
  host: "mc.example.com"
  port: 25566
protocol:
  fallback_version: 754
bot:
  username: "TestBot"
  auth: "microsoft"
  client_id: "00000000-aaaa"
chat:
  echo_marker: "#relay "
  rate_per_second: 2.5
  burst: 4
logging:
  level: "debug"
  file: "relay.log"
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != "mc.example.com" {
					t.Errorf("Server.Host = %q, 期望 %q", cfg.Server.Host, "mc.example.com")
				}
				if cfg.Server.Port != 25566 {
					t.Errorf("Server.Port = %d, 期望 %d", cfg.Server.Port, 25566)
				}
				if cfg.Protocol.FallbackVersion != 754 {
					t.Errorf("Protocol.FallbackVersion = %d, 期望 %d", cfg.Protocol.FallbackVersion, 754)
				}
				if cfg.Bot.Username != "TestBot" || cfg.Bot.Auth != AuthMicrosoft {
					t.Errorf("Bot = %+v", cfg.Bot)
				}
				if cfg.Chat.EchoMarker != "#relay " || cfg.Chat.RatePerSecond != 2.5 || cfg.Chat.Burst != 4 {
					t.Errorf("Chat = %+v", cfg.Chat)
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, 期望 %q", cfg.Logging.Level, "debug")
				}
				if cfg.Logging.File != "relay.log" {
					t.Errorf("Logging.File = %q, 期望 %q", cfg.Logging.File, "relay.log")
				}
				// 未写出的键保留默认值
				if cfg.Logging.Format != "console" || cfg.Logging.MaxSizeMB != 10 {
					t.Errorf("Logging 默认值丢失: %+v", cfg.Logging)
				}
			},
		},
		{
			name:       "文件不存在",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("期望文件不存在错误，实际: %v", err)
				}
			},
		},
		{
			name:       "YAML格式错误",
			createFile: true,
			content: `server:
  host: "127.0.0.1"
  port: [25565
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("期望返回YAML解析错误，实际: %v", err)
				}
			},
		},
		{
			name:       "空文件使用默认值",
			createFile: true,
			content:    "",
			wantErr:    false,
			validate: func(t *testing.T, cfg *Config, err error) {
				want := Default()
				if cfg.Server != want.Server || cfg.Bot != want.Bot || cfg.Chat != want.Chat || cfg.Logging != want.Logging {
					t.Errorf("得到 %+v, 期望默认值 %+v", cfg, want)
				}
				if cfg.Protocol.FallbackVersion != 340 {
					t.Errorf("FallbackVersion = %d, 期望 340", cfg.Protocol.FallbackVersion)
				}
			},
		},
		{
			name:       "校验失败",
			createFile: true,
			content: `server:
  port: 70000
bot:
  username: ""
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				for _, want := range []string{"server.port", "bot.username"} {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("错误信息应包含 %q, 实际: %v", want, err)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("创建测试配置文件失败: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && cfg == nil {
				t.Fatalf("Load() 返回了 nil 配置")
			}

			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

// TestValidate 覆盖各个字段的校验规则
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"默认配置合法", func(c *Config) {}, ""},
		{"端口为零", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"主机为空", func(c *Config) { c.Server.Host = "" }, "server.host"},
		{"未知认证方式", func(c *Config) { c.Bot.Auth = "mojang" }, "bot.auth"},
		{"微软认证缺少 client_id", func(c *Config) { c.Bot.Auth = AuthMicrosoft }, "client_id"},
		{"负速率", func(c *Config) { c.Chat.RatePerSecond = -1 }, "rate_per_second"},
		{"限流时 burst 为零", func(c *Config) { c.Chat.RatePerSecond = 1; c.Chat.Burst = 0 }, "burst"},
		{"不限流时 burst 可为零", func(c *Config) { c.Chat.Burst = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("期望无错误, 实际: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("期望错误包含 %q, 实际: %v", tt.wantErr, err)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Addr(); got != "127.0.0.1:25565" {
		t.Errorf("Addr() = %q, 期望 %q", got, "127.0.0.1:25565")
	}
}
