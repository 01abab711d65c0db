package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"pipecut/model"
)

// Hub is the host session on the far side of a websocket. Every call is one
// request followed by exactly one reply.
type Hub struct {
	conn *websocket.Conn
}

func NewHub(conn *websocket.Conn) *Hub {
	return &Hub{conn: conn}
}

func (h *Hub) call(op string, req model.HostRequest) (model.HostReply, error) {
	var reply model.HostReply
	content, err := json.Marshal(req)
	if err != nil {
		return reply, err
	}
	if err := h.conn.WriteJSON(model.Msg{Type: op, Content: string(content)}); err != nil {
		return reply, fmt.Errorf("send %s: %w", op, err)
	}

	var msg model.Msg
	if err := h.conn.ReadJSON(&msg); err != nil {
		return reply, fmt.Errorf("read %s reply: %w", op, err)
	}
	if msg.Content != "" {
		if err := json.Unmarshal([]byte(msg.Content), &reply); err != nil {
			return reply, fmt.Errorf("decode %s reply: %w", op, err)
		}
	}
	switch msg.Type {
	case model.MsgReply:
		return reply, nil
	case model.MsgError:
		if reply.Error == "" {
			reply.Error = "unspecified host error"
		}
		return reply, errors.New(reply.Error)
	default:
		return reply, fmt.Errorf("unexpected %q reply to %s", msg.Type, op)
	}
}

func (h *Hub) finish(summary *model.RunSummary, runErr error) error {
	if summary == nil {
		summary = &model.RunSummary{}
	}
	if runErr != nil {
		summary.Error = runErr.Error()
	}
	content, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"stations": summary.Stations,
		"fields":   summary.Fields,
	}).Info("run finished")
	return h.conn.WriteJSON(model.Msg{Type: model.MsgDone, Content: string(content)})
}

func (h *Hub) LookupRegion(name string) (model.RegionID, error) {
	reply, err := h.call(model.OpLookupRegion, model.HostRequest{Name: name})
	return model.RegionID(reply.ID), err
}

func (h *Hub) LookupField(name string) (model.FieldID, error) {
	reply, err := h.call(model.OpLookupField, model.HostRequest{Name: name})
	return model.FieldID(reply.ID), err
}

func (h *Hub) CreateOrGetPlanarCut(name string, region model.RegionID) (model.Handle, error) {
	reply, err := h.call(model.OpCreateOrGetPlanarCut, model.HostRequest{Name: name, Region: region})
	return reply.Handle, err
}

func (h *Hub) SetPlanarCutPose(cut model.Handle, origin model.Point3, normal model.Vector3) error {
	_, err := h.call(model.OpSetPlanarCutPose, model.HostRequest{Target: cut, Origin: &origin, Normal: &normal})
	return err
}

func (h *Hub) SetPlanarCutInput(cut model.Handle, input model.Handle) error {
	_, err := h.call(model.OpSetPlanarCutInput, model.HostRequest{Target: cut, Input: input})
	return err
}

func (h *Hub) CreateOrGetCylindricalFrame(name string) (model.Handle, error) {
	reply, err := h.call(model.OpCreateOrGetFrame, model.HostRequest{Name: name})
	return reply.Handle, err
}

func (h *Hub) SetFrameOrigin(frame model.Handle, origin model.Point3) error {
	_, err := h.call(model.OpSetFrameOrigin, model.HostRequest{Target: frame, Origin: &origin})
	return err
}

func (h *Hub) SetFrameBasis(frame model.Handle, basis model.Basis) error {
	_, err := h.call(model.OpSetFrameBasis, model.HostRequest{Target: frame, Basis: &basis})
	return err
}

func (h *Hub) CreateOrGetRadialThreshold(name string, region model.RegionID, frame model.Handle, radius float64) (model.Handle, error) {
	reply, err := h.call(model.OpCreateOrGetThreshold, model.HostRequest{Name: name, Region: region, Target: frame, Radius: radius})
	return reply.Handle, err
}

func (h *Hub) CreateOrGetAreaAverageReport(name string, surface model.Handle) (model.Handle, error) {
	reply, err := h.call(model.OpCreateOrGetReport, model.HostRequest{Name: name, Target: surface})
	return reply.Handle, err
}

func (h *Hub) EvaluateAreaAverage(report model.Handle, field model.FieldID) (float64, error) {
	reply, err := h.call(model.OpEvaluateAreaAverage, model.HostRequest{Target: report, Field: field})
	return reply.Value, err
}
