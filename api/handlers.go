package api

import (
	"net/http"

	"github.com/lpc17xx/canfilter/canfilter"
	"github.com/lpc17xx/canfilter/service"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ms, err := s.sessions.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: ms.ID,
		CreatedAt: ms.CreatedAt,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": ids,
		"count":    len(ids),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(ms.Session.Snapshot()))
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(ms.Session.Snapshot()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	res := ms.Session.ResetFilter()
	s.broadcastResult(sessionID, "resetFilter", ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	var req ModeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, ok := parseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown mode: "+req.Mode)
		return
	}
	res := ms.Session.SetFilterMode(mode)
	s.broadcastResult(sessionID, "setFilterMode", ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleStandard(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req StandardFilterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctrl := canfilter.Controller(req.Controller)

	var res service.Result
	var op string
	switch r.Method {
	case http.MethodPost:
		op = "insertStandardFilter"
		res = ms.Session.InsertStandardFilter(ctrl, req.ID)
	case http.MethodPut:
		op = "updateStandardFilter"
		res = ms.Session.UpdateStandardFilter(ctrl, req.ID, req.NewID)
	case http.MethodDelete:
		op = "deleteStandardFilter"
		res = ms.Session.DeleteStandardFilter(ctrl, req.ID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.broadcastResult(sessionID, op, ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleStandardGroup(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req GroupFilterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctrl := canfilter.Controller(req.Controller)
	start, end := uint16(req.Start), uint16(req.End)
	newStart, newEnd := uint16(req.NewStart), uint16(req.NewEnd)

	var res service.Result
	var op string
	switch r.Method {
	case http.MethodPost:
		op = "insertStandardGroupFilter"
		res = ms.Session.InsertStandardGroupFilter(ctrl, start, end)
	case http.MethodPut:
		op = "updateStandardGroupFilter"
		res = ms.Session.UpdateStandardGroupFilter(ctrl, start, end, newStart, newEnd)
	case http.MethodDelete:
		op = "deleteStandardGroupFilter"
		res = ms.Session.DeleteStandardGroupFilter(ctrl, start, end)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.broadcastResult(sessionID, op, ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleExtended(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req ExtendedFilterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctrl := canfilter.Controller(req.Controller)

	var res service.Result
	var op string
	switch r.Method {
	case http.MethodPost:
		op = "insertExtendedFilter"
		res = ms.Session.InsertExtendedFilter(ctrl, req.ID)
	case http.MethodPut:
		op = "updateExtendedFilter"
		res = ms.Session.UpdateExtendedFilter(ctrl, req.ID, req.NewID)
	case http.MethodDelete:
		op = "deleteExtendedFilter"
		res = ms.Session.DeleteExtendedFilter(ctrl, req.ID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.broadcastResult(sessionID, op, ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

func (s *Server) handleExtendedGroup(w http.ResponseWriter, r *http.Request, sessionID string) {
	ms, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req GroupFilterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctrl := canfilter.Controller(req.Controller)

	var res service.Result
	var op string
	switch r.Method {
	case http.MethodPost:
		op = "insertExtendedGroupFilter"
		res = ms.Session.InsertExtendedGroupFilter(ctrl, req.Start, req.End)
	case http.MethodPut:
		op = "updateExtendedGroupFilter"
		res = ms.Session.UpdateExtendedGroupFilter(ctrl, req.Start, req.End, req.NewStart, req.NewEnd)
	case http.MethodDelete:
		op = "deleteExtendedGroupFilter"
		res = ms.Session.DeleteExtendedGroupFilter(ctrl, req.Start, req.End)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.broadcastResult(sessionID, op, ms.Session, res)
	writeJSON(w, http.StatusOK, resultResponse(res))
}

// broadcastResult publishes a TableChanged event reflecting the session's
// state immediately after a mutation attempt, successful or not.
func (s *Server) broadcastResult(sessionID, op string, sess *service.Session, res service.Result) {
	snap := sess.Snapshot()
	event := TableChanged{
		SessionID: sessionID,
		Op:        op,
		Code:      res.Code,
		Counts:    countsDTO(snap.Counts),
		Addresses: addressesDTO(snap.Addresses),
		Mode:      snap.Mode.String(),
	}
	if res.Err != nil {
		event.Error = res.Err.Error()
	}
	s.broadcaster.Broadcast(event)
}
