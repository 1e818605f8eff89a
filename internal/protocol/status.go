package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Tnze/go-mc/chat"
)

// statusJSON is the subset of the server list response the negotiator needs.
// FML1 servers announce themselves through modinfo, FML2 through forgeData.
type statusJSON struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Description chat.Message `json:"description"`
	ModInfo     *struct {
		Type    string `json:"type"`
		ModList []struct {
			ModID   string `json:"modid"`
			Version string `json:"version"`
		} `json:"modList"`
	} `json:"modinfo"`
	ForgeData *struct {
		Mods []struct {
			ModID     string `json:"modId"`
			ModMarker string `json:"modmarker"`
		} `json:"mods"`
		FMLNetworkVersion int `json:"fmlNetworkVersion"`
	} `json:"forgeData"`
}

func (c *Codec) decodeStatus(id int32, r *bytes.Reader) (Inbound, error) {
	switch id {
	case S2CStatusResponse:
		raw, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		return ParseStatusResponse([]byte(raw))
	case S2CStatusPong:
		payload, err := ReadInt64(r)
		if err != nil {
			return nil, err
		}
		return Pong{Payload: payload}, nil
	}
	return nil, nil
}

// ParseStatusResponse decodes the server list JSON document.
func ParseStatusResponse(raw []byte) (StatusResponse, error) {
	var doc statusJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return StatusResponse{}, fmt.Errorf("parse status json: %w", err)
	}
	out := StatusResponse{
		Version:     doc.Version.Protocol,
		VersionName: doc.Version.Name,
		Description: PlainText(doc.Description),
	}
	switch {
	case doc.ForgeData != nil:
		out.TunnelVersion = doc.ForgeData.FMLNetworkVersion
		for _, m := range doc.ForgeData.Mods {
			out.Mods = append(out.Mods, ModInfo{ID: m.ModID, Version: m.ModMarker})
		}
	case doc.ModInfo != nil && doc.ModInfo.Type == "FML":
		out.TunnelVersion = 1
		for _, m := range doc.ModInfo.ModList {
			out.Mods = append(out.Mods, ModInfo{ID: m.ModID, Version: m.Version})
		}
	}
	return out, nil
}
