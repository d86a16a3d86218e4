package handlers

import (
	"context"
	"net/http"
	"time"

	"fireboot/internal/firebase"
	"fireboot/internal/httpjson"
)

// StatusSource is satisfied by *firebase.Bootstrapper.
type StatusSource interface {
	Status() map[string]firebase.State
}

type Status struct {
	source  StatusSource
	handles *firebase.Handles
}

func NewStatus(source StatusSource, handles *firebase.Handles) *Status {
	return &Status{source: source, handles: handles}
}

func (h *Status) Healthz(w http.ResponseWriter, _ *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
}

// Handles reports every handle's state. Analytics is only reported as
// resolved when its support check has finished.
func (h *Status) Handles(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"handles": h.source.Status(),
		"policy":  h.handles.Policy,
	}
	if h.handles.Client != nil && h.handles.Client.Analytics.Resolved() {
		a, _ := h.handles.Client.Analytics.Await(context.WithoutCancel(r.Context()))
		if a != nil {
			out["measurementId"] = a.MeasurementID
		}
	}
	httpjson.Write(w, http.StatusOK, out)
}
