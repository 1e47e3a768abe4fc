package api

import (
	"time"

	"github.com/lpc17xx/canfilter/canfilter"
	"github.com/lpc17xx/canfilter/hal"
	"github.com/lpc17xx/canfilter/service"
)

// CountsDTO mirrors canfilter.Counts for JSON responses.
type CountsDTO struct {
	Standard      uint16 `json:"standard"`
	StandardGroup uint16 `json:"standardGroup"`
	Extended      uint16 `json:"extended"`
	ExtendedGroup uint16 `json:"extendedGroup"`
}

// AddressesDTO mirrors canfilter.Addresses for JSON responses.
type AddressesDTO struct {
	SFFsa      uint32 `json:"sffSa"`
	SFFGRPsa   uint32 `json:"sffGrpSa"`
	EFFsa      uint32 `json:"effSa"`
	EFFGRPsa   uint32 `json:"effGrpSa"`
	ENDofTable uint32 `json:"endOfTable"`
}

func countsDTO(c canfilter.Counts) CountsDTO {
	return CountsDTO{
		Standard:      c.Standard,
		StandardGroup: c.StandardGroup,
		Extended:      c.Extended,
		ExtendedGroup: c.ExtendedGroup,
	}
}

func addressesDTO(a canfilter.Addresses) AddressesDTO {
	return AddressesDTO{
		SFFsa:      a.SFFsa,
		SFFGRPsa:   a.SFFGRPsa,
		EFFsa:      a.EFFsa,
		EFFGRPsa:   a.EFFGRPsa,
		ENDofTable: a.ENDofTable,
	}
}

// SnapshotResponse is the JSON view of a service.Snapshot.
type SnapshotResponse struct {
	Counts    CountsDTO    `json:"counts"`
	Addresses AddressesDTO `json:"addresses"`
	Mode      string       `json:"mode"`
	Words     []uint32     `json:"words"`
}

func snapshotResponse(snap service.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Counts:    countsDTO(snap.Counts),
		Addresses: addressesDTO(snap.Addresses),
		Mode:      snap.Mode.String(),
		Words:     snap.Words,
	}
}

// ResultResponse is the JSON view of a service.Result.
type ResultResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
}

func resultResponse(r service.Result) ResultResponse {
	resp := ResultResponse{Code: r.Code}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}

// SessionCreateResponse is returned by POST /api/v1/session.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// StandardFilterRequest is the body for standard single-ID routes.
type StandardFilterRequest struct {
	Controller uint8  `json:"controller"`
	ID         uint16 `json:"id"`
	NewID      uint16 `json:"newId,omitempty"`
}

// GroupFilterRequest is the body for standard/extended group routes.
type GroupFilterRequest struct {
	Controller uint8  `json:"controller"`
	Start      uint32 `json:"start"`
	End        uint32 `json:"end"`
	NewStart   uint32 `json:"newStart,omitempty"`
	NewEnd     uint32 `json:"newEnd,omitempty"`
}

// ExtendedFilterRequest is the body for extended single-ID routes.
type ExtendedFilterRequest struct {
	Controller uint8  `json:"controller"`
	ID         uint32 `json:"id"`
	NewID      uint32 `json:"newId,omitempty"`
}

// ModeRequest is the body for POST /api/v1/session/{id}/mode.
type ModeRequest struct {
	Mode string `json:"mode"` // "operating", "bypass", "off"
}

func parseMode(s string) (hal.Mode, bool) {
	switch s {
	case "operating":
		return hal.ModeOperating, true
	case "bypass":
		return hal.ModeBypass, true
	case "off":
		return hal.ModeOff, true
	default:
		return 0, false
	}
}

// ErrorResponse is the JSON body for any non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
