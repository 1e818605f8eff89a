package protocol

import "sort"

// Protocol version thresholds where a wire shape changes.
const (
	Version1_7_2  int32 = 4
	Version1_7_10 int32 = 5
	Version1_8    int32 = 47  // VarInt keepalive, compression, VarInt-prefixed login arrays, chat position
	Version1_9    int32 = 107 // teleport ids and TeleportConfirm, VarInt chat mode, main hand
	Version1_11_2 int32 = 316
	Version1_12   int32 = 335
	Version1_12_1 int32 = 338
	Version1_12_2 int32 = 340 // int64 keepalive starts at 1.12.2-pre (339)
	Version1_13   int32 = 393 // login plugin channels
	Version1_13_2 int32 = 404
	Version1_14   int32 = 477
	Version1_14_4 int32 = 498
	Version1_15   int32 = 573
	Version1_15_2 int32 = 578
	Version1_16   int32 = 735 // binary LoginSuccess UUID, chat sender
	Version1_16_1 int32 = 736
	Version1_16_2 int32 = 751 // hardcore flag split out of the gamemode byte
	Version1_16_5 int32 = 754

	keepAliveLongVersion int32 = 339
)

// Handshaking (C→S)
const C2SHandshake = 0x00

// Status
const (
	C2SStatusRequest  = 0x00
	C2SStatusPing     = 0x01
	S2CStatusResponse = 0x00
	S2CStatusPong     = 0x01
)

// Login
const (
	C2SLoginStart          = 0x00
	C2SEncryptionResponse  = 0x01
	C2SLoginPluginResponse = 0x02

	S2CLoginDisconnect    = 0x00
	S2CEncryptionRequest  = 0x01
	S2CLoginSuccess       = 0x02
	S2CSetCompression     = 0x03
	S2CLoginPluginRequest = 0x04
)

// absent marks a packet a version does not have.
const absent int32 = -1

// PlayTable holds the play-state packet ids shared by the protocol versions
// MinVersion through Version.
type PlayTable struct {
	MinVersion int32
	Version    int32
	Name       string

	S2CKeepAlive      int32
	S2CJoinGame       int32
	S2CChatMessage    int32
	S2CPlayerPosition int32
	S2CDisconnect     int32

	C2STeleportConfirm int32
	C2SChatMessage     int32
	C2SClientStatus    int32
	C2SClientSettings  int32
	C2SKeepAlive       int32
}

var playTables = []PlayTable{
	{
		MinVersion: Version1_7_2, Version: Version1_7_10, Name: "1.7.10",
		S2CKeepAlive: 0x00, S2CJoinGame: 0x01, S2CChatMessage: 0x02, S2CPlayerPosition: absent, S2CDisconnect: 0x40,
		C2STeleportConfirm: absent, C2SChatMessage: 0x01, C2SClientStatus: 0x16, C2SClientSettings: 0x15, C2SKeepAlive: 0x00,
	},
	{
		MinVersion: Version1_8, Version: Version1_8, Name: "1.8.9",
		S2CKeepAlive: 0x00, S2CJoinGame: 0x01, S2CChatMessage: 0x02, S2CPlayerPosition: absent, S2CDisconnect: 0x40,
		C2STeleportConfirm: absent, C2SChatMessage: 0x01, C2SClientStatus: 0x16, C2SClientSettings: 0x15, C2SKeepAlive: 0x00,
	},
	{
		MinVersion: Version1_9, Version: Version1_11_2, Name: "1.9.4",
		S2CKeepAlive: 0x1F, S2CJoinGame: 0x23, S2CChatMessage: 0x0F, S2CPlayerPosition: 0x2E, S2CDisconnect: 0x1A,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x02, C2SClientStatus: 0x03, C2SClientSettings: 0x04, C2SKeepAlive: 0x0B,
	},
	{
		// Prepare Crafting Grid took serverbound 0x01 for this release only.
		MinVersion: Version1_12, Version: Version1_12, Name: "1.12",
		S2CKeepAlive: 0x1F, S2CJoinGame: 0x23, S2CChatMessage: 0x0F, S2CPlayerPosition: 0x2E, S2CDisconnect: 0x1A,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x03, C2SClientStatus: 0x04, C2SClientSettings: 0x05, C2SKeepAlive: 0x0C,
	},
	{
		MinVersion: Version1_12_1, Version: Version1_12_2, Name: "1.12.2",
		S2CKeepAlive: 0x1F, S2CJoinGame: 0x23, S2CChatMessage: 0x0F, S2CPlayerPosition: 0x2F, S2CDisconnect: 0x1A,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x02, C2SClientStatus: 0x03, C2SClientSettings: 0x04, C2SKeepAlive: 0x0B,
	},
	{
		MinVersion: Version1_13, Version: Version1_13_2, Name: "1.13.2",
		S2CKeepAlive: 0x21, S2CJoinGame: 0x25, S2CChatMessage: 0x0E, S2CPlayerPosition: 0x32, S2CDisconnect: 0x1B,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x02, C2SClientStatus: 0x03, C2SClientSettings: 0x04, C2SKeepAlive: 0x0E,
	},
	{
		MinVersion: Version1_14, Version: Version1_14_4, Name: "1.14.4",
		S2CKeepAlive: 0x20, S2CJoinGame: 0x25, S2CChatMessage: 0x0E, S2CPlayerPosition: 0x35, S2CDisconnect: 0x1A,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x03, C2SClientStatus: 0x04, C2SClientSettings: 0x05, C2SKeepAlive: 0x0F,
	},
	{
		MinVersion: Version1_15, Version: Version1_15_2, Name: "1.15.2",
		S2CKeepAlive: 0x21, S2CJoinGame: 0x26, S2CChatMessage: 0x0F, S2CPlayerPosition: 0x36, S2CDisconnect: 0x1B,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x03, C2SClientStatus: 0x04, C2SClientSettings: 0x05, C2SKeepAlive: 0x0F,
	},
	{
		MinVersion: Version1_16, Version: Version1_16_1, Name: "1.16.1",
		S2CKeepAlive: 0x20, S2CJoinGame: 0x25, S2CChatMessage: 0x0E, S2CPlayerPosition: 0x35, S2CDisconnect: 0x1A,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x03, C2SClientStatus: 0x04, C2SClientSettings: 0x05, C2SKeepAlive: 0x10,
	},
	{
		MinVersion: Version1_16_2, Version: Version1_16_5, Name: "1.16.5",
		S2CKeepAlive: 0x1F, S2CJoinGame: 0x24, S2CChatMessage: 0x0E, S2CPlayerPosition: 0x34, S2CDisconnect: 0x19,
		C2STeleportConfirm: 0x00, C2SChatMessage: 0x03, C2SClientStatus: 0x04, C2SClientSettings: 0x05, C2SKeepAlive: 0x10,
	},
}

func init() {
	sort.Slice(playTables, func(i, j int) bool { return playTables[i].Version < playTables[j].Version })
}

// LookupPlayTable returns the table covering version. Versions outside every
// range get the nearest older table, or the oldest one, with exact false:
// their ids are borrowed and play packets will be misrouted.
func LookupPlayTable(version int32) (table *PlayTable, exact bool) {
	table = &playTables[0]
	for i := range playTables {
		if playTables[i].MinVersion > version {
			break
		}
		table = &playTables[i]
	}
	return table, table.MinVersion <= version && version <= table.Version
}

// KnownVersions lists the versions with a play table.
func KnownVersions() []int32 {
	out := make([]int32, 0, len(playTables))
	for _, t := range playTables {
		out = append(out, t.Version)
	}
	return out
}
