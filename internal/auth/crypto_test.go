package auth

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/Versifine/relay/internal/protocol"
	session_server "github.com/go-mclib/protocol/session_server"
)

func TestNewSharedSecret(t *testing.T) {
	a, err := NewSharedSecret()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSharedSecret()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != protocol.SharedSecretSize {
		t.Errorf("长度 = %d, 期望 %d", len(a), protocol.SharedSecretSize)
	}
	if bytes.Equal(a, b) {
		t.Error("两次生成的密钥不应相同")
	}
}

func TestEncryptPKCS1RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	secret := []byte("0123456789abcdef")
	enc, err := EncryptPKCS1(der, secret)
	if err != nil {
		t.Fatalf("EncryptPKCS1 失败: %v", err)
	}
	dec, err := rsa.DecryptPKCS1v15(nil, key, enc)
	if err != nil {
		t.Fatalf("解密失败: %v", err)
	}
	if !bytes.Equal(dec, secret) {
		t.Errorf("解密结果 = %x, 期望 %x", dec, secret)
	}
}

func TestEncryptPKCS1BadKey(t *testing.T) {
	if _, err := EncryptPKCS1([]byte{1, 2, 3}, []byte("x")); err == nil {
		t.Fatal("期望无效公钥返回错误")
	}
}

func TestOfflineProvider(t *testing.T) {
	p := NewOffline("RelayBot")
	id := p.Identity()
	if id.Username != "RelayBot" || id.UUID != protocol.GenerateOfflineUUID("RelayBot") {
		t.Errorf("identity = %+v", id)
	}
	if id.UUID.Version() != 3 {
		t.Errorf("离线 UUID 版本 = %d, 期望 3", id.UUID.Version())
	}
	if err := p.JoinServer(t.Context(), "", nil, nil); !errors.Is(err, ErrOfflineJoin) {
		t.Errorf("期望 ErrOfflineJoin, 得到 %v", err)
	}
}

type fakeSession struct {
	uuid, serverID string
	err            error
}

func (f *fakeSession) Join(accessToken, playerUUID, serverID string, sharedSecret, publicKey []byte) error {
	f.uuid = playerUUID
	f.serverID = serverID
	return f.err
}

func TestMicrosoftJoinServer(t *testing.T) {
	fs := &fakeSession{}
	m := &Microsoft{
		id:      Identity{Username: "Notch", UUID: protocol.GenerateOfflineUUID("Notch"), AccessToken: "token"},
		session: fs,
	}
	if err := m.JoinServer(t.Context(), "srv", []byte{1}, []byte{2}); err != nil {
		t.Fatalf("JoinServer 失败: %v", err)
	}
	if len(fs.uuid) != 32 || fs.serverID != "srv" {
		t.Errorf("传给会话服务的参数 = %q %q", fs.uuid, fs.serverID)
	}

	fs.err = errors.New("forbidden")
	if err := m.JoinServer(t.Context(), "srv", nil, nil); err == nil {
		t.Error("期望会话失败返回错误")
	}
}

// 加入会话时记录的 server hash 来自会话服务客户端的算法
func TestMicrosoftJoinLogsServerHash(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	m := &Microsoft{
		id:      Identity{Username: "Notch", UUID: protocol.GenerateOfflineUUID("Notch"), AccessToken: "token"},
		session: &fakeSession{},
	}
	secret, pub := []byte{1, 2, 3}, []byte{4, 5, 6}
	if err := m.JoinServer(t.Context(), "jeb_", secret, pub); err != nil {
		t.Fatal(err)
	}
	want := "server_hash=" + session_server.ComputeServerHash("jeb_", secret, pub)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("日志 %q 应包含 %q", buf.String(), want)
	}
}
