package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"pipecut/model"
	"pipecut/sampler"
)

// ServeHost plays the host side of the bridge: every request read from conn
// is answered by s until the done message arrives.
func ServeHost(conn *websocket.Conn, s sampler.Session) (*model.RunSummary, error) {
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("read request: %w", err)
		}
		if msg.Type == model.MsgDone {
			var summary model.RunSummary
			if err := json.Unmarshal([]byte(msg.Content), &summary); err != nil {
				return nil, fmt.Errorf("decode run summary: %w", err)
			}
			if summary.Error != "" {
				return &summary, errors.New(summary.Error)
			}
			return &summary, nil
		}

		var req model.HostRequest
		reply := model.HostReply{}
		err := json.Unmarshal([]byte(msg.Content), &req)
		if err == nil {
			reply, err = Dispatch(s, msg.Type, req)
		}
		out := model.Msg{Type: model.MsgReply}
		if err != nil {
			log.WithError(err).WithField("type", msg.Type).Debug("host request failed")
			reply.Error = err.Error()
			out.Type = model.MsgError
		}
		content, err := json.Marshal(reply)
		if err != nil {
			// NaN 与 ±Inf 无法编码为 JSON，改为回复错误
			log.WithError(err).WithField("type", msg.Type).Warn("host reply not encodable")
			out.Type = model.MsgError
			content, _ = json.Marshal(model.HostReply{Error: fmt.Sprintf("encode %s reply: %v", msg.Type, err)})
		}
		out.Content = string(content)
		if err := conn.WriteJSON(out); err != nil {
			return nil, fmt.Errorf("write reply: %w", err)
		}
	}
}

// Dispatch applies one decoded host request to s.
func Dispatch(s sampler.Session, op string, req model.HostRequest) (model.HostReply, error) {
	var (
		reply model.HostReply
		err   error
	)
	switch op {
	case model.OpLookupRegion:
		var id model.RegionID
		id, err = s.LookupRegion(req.Name)
		reply.ID = string(id)
	case model.OpLookupField:
		var id model.FieldID
		id, err = s.LookupField(req.Name)
		reply.ID = string(id)
	case model.OpCreateOrGetPlanarCut:
		reply.Handle, err = s.CreateOrGetPlanarCut(req.Name, req.Region)
	case model.OpSetPlanarCutPose:
		if req.Origin == nil || req.Normal == nil {
			return reply, errors.New("pose needs origin and normal")
		}
		err = s.SetPlanarCutPose(req.Target, *req.Origin, *req.Normal)
	case model.OpSetPlanarCutInput:
		err = s.SetPlanarCutInput(req.Target, req.Input)
	case model.OpCreateOrGetFrame:
		reply.Handle, err = s.CreateOrGetCylindricalFrame(req.Name)
	case model.OpSetFrameOrigin:
		if req.Origin == nil {
			return reply, errors.New("frame origin missing")
		}
		err = s.SetFrameOrigin(req.Target, *req.Origin)
	case model.OpSetFrameBasis:
		if req.Basis == nil {
			return reply, errors.New("frame basis missing")
		}
		err = s.SetFrameBasis(req.Target, *req.Basis)
	case model.OpCreateOrGetThreshold:
		reply.Handle, err = s.CreateOrGetRadialThreshold(req.Name, req.Region, req.Target, req.Radius)
	case model.OpCreateOrGetReport:
		reply.Handle, err = s.CreateOrGetAreaAverageReport(req.Name, req.Target)
	case model.OpEvaluateAreaAverage:
		reply.Value, err = s.EvaluateAreaAverage(req.Target, req.Field)
	default:
		err = fmt.Errorf("no such type %q", op)
	}
	return reply, err
}
