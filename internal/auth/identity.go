// Package auth resolves the account the bot logs in as and performs the
// session join an online-mode server requires before it accepts encryption.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Versifine/relay/internal/protocol"
	"github.com/go-mclib/protocol/auth"
	session_server "github.com/go-mclib/protocol/session_server"
	"github.com/google/uuid"
)

// Identity is resolved once at startup and never changes.
type Identity struct {
	Username    string
	UUID        uuid.UUID
	AccessToken string
}

// Provider owns an Identity and proves it to the session service.
type Provider interface {
	Identity() Identity
	JoinServer(ctx context.Context, serverID string, sharedSecret, publicKey []byte) error
}

var ErrOfflineJoin = errors.New("offline identity cannot join an online-mode server")

// Offline is a cracked identity with a name-derived UUID.
type Offline struct {
	id Identity
}

func NewOffline(username string) *Offline {
	return &Offline{id: Identity{
		Username: username,
		UUID:     protocol.GenerateOfflineUUID(username),
	}}
}

func (o *Offline) Identity() Identity { return o.id }

func (o *Offline) JoinServer(context.Context, string, []byte, []byte) error {
	return ErrOfflineJoin
}

// sessionJoiner is the slice of the session server client Microsoft uses.
type sessionJoiner interface {
	Join(accessToken, playerUUID, serverID string, sharedSecret, publicKey []byte) error
}

// Microsoft is an online identity obtained through the Microsoft device-code
// flow.
type Microsoft struct {
	id      Identity
	session sessionJoiner
}

const loginTimeout = 5 * time.Minute

// LoginMicrosoft runs the device-code flow. The user is prompted on stdout by
// the auth client.
func LoginMicrosoft(ctx context.Context, clientID, username string) (*Microsoft, error) {
	client := auth.NewClient(auth.AuthClientConfig{
		ClientID: clientID,
		Username: username,
	})
	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()
	ld, err := client.Login(loginCtx)
	if err != nil {
		return nil, fmt.Errorf("microsoft login: %w", err)
	}
	id, err := uuid.Parse(ld.UUID)
	if err != nil {
		return nil, fmt.Errorf("parse account uuid %q: %w", ld.UUID, err)
	}
	if username != "" && username != ld.Username {
		slog.Warn("Authenticated under a different name", "requested", username, "account", ld.Username)
	}
	return &Microsoft{
		id: Identity{
			Username:    ld.Username,
			UUID:        id,
			AccessToken: ld.AccessToken,
		},
		session: session_server.NewSessionServerClient(),
	}, nil
}

func (m *Microsoft) Identity() Identity { return m.id }

func (m *Microsoft) JoinServer(ctx context.Context, serverID string, sharedSecret, publicKey []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Debug("Joining session", "server_hash", session_server.ComputeServerHash(serverID, sharedSecret, publicKey))
	undashed := strings.ReplaceAll(m.id.UUID.String(), "-", "")
	if err := m.session.Join(m.id.AccessToken, undashed, serverID, sharedSecret, publicKey); err != nil {
		return fmt.Errorf("session join: %w", err)
	}
	return nil
}
