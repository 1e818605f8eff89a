package protocol

import "testing"

func TestParseStatusResponse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		version    int32
		tunnel     int
		mods       int
		descripton string
	}{
		{
			name:       "原版服务器",
			raw:        `{"version":{"name":"1.12.2","protocol":340},"description":{"text":"A Minecraft Server"}}`,
			version:    340,
			descripton: "A Minecraft Server",
		},
		{
			name:       "字符串描述",
			raw:        `{"version":{"name":"1.8.9","protocol":47},"description":"plain motd"}`,
			version:    47,
			descripton: "plain motd",
		},
		{
			name:    "FML1 服务器",
			raw:     `{"version":{"name":"1.12.2","protocol":340},"description":"","modinfo":{"type":"FML","modList":[{"modid":"forge","version":"14.23.5"}]}}`,
			version: 340,
			tunnel:  1,
			mods:    1,
		},
		{
			name:    "FML2 服务器",
			raw:     `{"version":{"name":"1.16.5","protocol":754},"description":"","forgeData":{"channels":[],"mods":[{"modId":"forge","modmarker":"36.2"},{"modId":"jei","modmarker":"7.7"}],"fmlNetworkVersion":2}}`,
			version: 754,
			tunnel:  2,
			mods:    2,
		},
		{
			name:    "modinfo 非 FML",
			raw:     `{"version":{"name":"1.12.2","protocol":340},"description":"","modinfo":{"type":"BUKKIT","modList":[]}}`,
			version: 340,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatusResponse([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseStatusResponse 失败: %v", err)
			}
			if got.Version != tt.version || got.TunnelVersion != tt.tunnel || len(got.Mods) != tt.mods {
				t.Errorf("得到 %+v", got)
			}
			if got.Description != tt.descripton {
				t.Errorf("description = %q, 期望 %q", got.Description, tt.descripton)
			}
		})
	}
}

func TestParseStatusResponseInvalid(t *testing.T) {
	if _, err := ParseStatusResponse([]byte("{not json")); err == nil {
		t.Fatal("期望无效 JSON 返回错误")
	}
}
