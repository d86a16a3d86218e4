package handlers

import (
	"net/http"
	"strings"
	"time"

	"fireboot/internal/firebase"
	"fireboot/internal/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// Admin serves the operations that need the service-account handles.
type Admin struct {
	handles *firebase.Handles
	log     *zap.Logger
}

func NewAdmin(handles *firebase.Handles, log *zap.Logger) *Admin {
	return &Admin{handles: handles, log: log}
}

// ListCollections lists the root collections visible to the admin document store.
func (h *Admin) ListCollections(w http.ResponseWriter, r *http.Request) {
	fs, err := h.handles.Admin.FirestoreClient()
	if err != nil {
		writeHandleError(w, err)
		return
	}

	it := fs.Collections(r.Context())
	ids := []string{}
	for {
		ref, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			h.log.Warn("listing collections", zap.Error(err))
			httpjson.Error(w, http.StatusBadGateway, "failed to list collections")
			return
		}
		ids = append(ids, ref.ID)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"collections": ids})
}

type setClaimsReq struct {
	Claims map[string]any `json:"claims"`
}

// SetClaims replaces a user's custom claims.
func (h *Admin) SetClaims(w http.ResponseWriter, r *http.Request) {
	ac, err := h.handles.Admin.AuthClient()
	if err != nil {
		writeHandleError(w, err)
		return
	}

	uid := strings.TrimSpace(chi.URLParam(r, "uid"))
	if uid == "" {
		httpjson.Error(w, http.StatusBadRequest, "missing uid")
		return
	}
	var req setClaimsReq
	if err := httpjson.Read(r, &req); err != nil || req.Claims == nil {
		httpjson.Error(w, http.StatusBadRequest, "claims is required")
		return
	}
	req.Claims["claimsUpdatedAt"] = time.Now().Unix()

	if err := ac.SetCustomUserClaims(r.Context(), uid, req.Claims); err != nil {
		h.log.Warn("setting custom claims", zap.String("uid", uid), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "failed to set claims")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"ok": true, "uid": uid})
}
