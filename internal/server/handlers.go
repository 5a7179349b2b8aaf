package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/httputil"
	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/version"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v r2.Vec) point { return point{X: v.X, Y: v.Y} }

// Angles are reported in both radians and degrees.
type poseResponse struct {
	Theta1      float64 `json:"theta1"`
	Theta2      float64 `json:"theta2"`
	Theta1Deg   float64 `json:"theta1_deg"`
	Theta2Deg   float64 `json:"theta2_deg"`
	L1          float64 `json:"l1"`
	L2          float64 `json:"l2"`
	Elbow       point   `json:"elbow"`
	EndEffector point   `json:"end_effector"`
}

type inverseResponse struct {
	poseResponse
	ElbowUp bool   `json:"elbow_up"`
	Target  point  `json:"target"`
	Reached point  `json:"reached"`
	Clamp   string `json:"clamp"`
}

func newPose(theta1, theta2, l1, l2 float64) poseResponse {
	p := kinematics.Forward(theta1, theta2, l1, l2)
	return poseResponse{
		Theta1:      theta1,
		Theta2:      theta2,
		Theta1Deg:   kinematics.Degrees(theta1),
		Theta2Deg:   kinematics.Degrees(theta2),
		L1:          l1,
		L2:          l2,
		Elbow:       toPoint(p.Elbow),
		EndEffector: toPoint(p.EndEffector),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{"status": "ok", "version": version.Version})
}

// handleForward serves GET /api/forward?theta1=&theta2=&l1=&l2=, angles in
// degrees.
func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	l1, l2, err := s.lengths(q)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	t1, err := floatParam(q, "theta1", 0)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	t2, err := floatParam(q, "theta2", 0)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, newPose(kinematics.Radians(t1), kinematics.Radians(t2), l1, l2))
}

// handleInverse serves GET /api/inverse?x=&y=&l1=&l2=&elbow=up|down.
func (s *Server) handleInverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	l1, l2, err := s.lengths(q)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	x, err := requiredFloat(q, "x")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	y, err := requiredFloat(q, "y")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	elbowUp := true
	switch strings.ToLower(q.Get("elbow")) {
	case "", "up":
	case "down":
		elbowUp = false
	default:
		httputil.BadRequest(w, fmt.Sprintf("elbow must be up or down, got %q", q.Get("elbow")))
		return
	}

	sol := kinematics.Inverse(x, y, l1, l2, elbowUp)
	httputil.WriteJSONOK(w, inverseResponse{
		poseResponse: newPose(sol.Theta1, sol.Theta2, l1, l2),
		ElbowUp:      elbowUp,
		Target:       point{X: x, Y: y},
		Reached:      toPoint(sol.Target),
		Clamp:        sol.Clamp.String(),
	})
}

func (s *Server) lengths(q url.Values) (float64, float64, error) {
	l1, err := floatParam(q, "l1", s.cfg.L1)
	if err != nil {
		return 0, 0, err
	}
	l2, err := floatParam(q, "l2", s.cfg.L2)
	if err != nil {
		return 0, 0, err
	}
	if err := kinematics.ValidateLengths(l1, l2); err != nil {
		return 0, 0, err
	}
	return l1, l2, nil
}

func floatParam(q url.Values, name string, fallback float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	return parseFinite(name, raw)
}

func requiredFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	return parseFinite(name, raw)
}

func parseFinite(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be finite, got %q", name, raw)
	}
	return v, nil
}
