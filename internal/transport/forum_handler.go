// Package transport exposes the forum index over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ForumHandler serves read only views of the cache.
type ForumHandler struct {
	logger *zap.Logger
	cache  Cache
	sync   SyncSource
	now    func() time.Time
}

// NewForumHandler builds a ForumHandler.
func NewForumHandler(source Cache, sync SyncSource, logger *zap.Logger) (*ForumHandler, error) {
	if source == nil {
		return nil, errors.New("forum handler cache is required")
	}
	if sync == nil {
		return nil, errors.New("forum handler sync source is required")
	}
	return &ForumHandler{logger: logger.Named("forumHandler"), cache: source, sync: sync, now: time.Now}, nil
}

// RegisterRoutes mounts the handlers on r.
func (h *ForumHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/sync", h.Sync).Methods(http.MethodGet)
	r.HandleFunc("/forums", h.Forum).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", h.Post).Methods(http.MethodGet)
}

// Health reports server health.
func (h *ForumHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Sync summarizes the last broadcast block window.
func (h *ForumHandler) Sync(w http.ResponseWriter, _ *http.Request) {
	result, ok := h.sync.LastResult()
	if !ok {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no blocks synced yet"})
		return
	}
	h.writeJSON(w, http.StatusOK, newSyncView(result))
}

// Forum lists the sub categories and threads of the category in the path
// query parameter. No path means the root.
func (h *ForumHandler) Forum(w http.ResponseWriter, r *http.Request) {
	var segments []string
	if raw := r.URL.Query().Get("path"); raw != "" {
		decoded, err := schema.DecodePath(raw)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		segments = decoded
	}

	var (
		view  forumView
		found bool
	)
	now := h.now()
	h.cache.View(func(c cache.Reader) {
		node := c.Root()
		if len(segments) > 0 {
			n, err := c.FindForumNode(segments)
			if err != nil || n == nil {
				return
			}
			node = n
		}
		view = newForumView(node, now)
		found = true
	})
	if !found {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "forum not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// Post returns a post with its latest content, edits and replies.
func (h *ForumHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var (
		view  postView
		found bool
	)
	now := h.now()
	h.cache.View(func(c cache.Reader) {
		node := c.FindPostNode(id)
		if node == nil {
			return
		}
		view = newPostView(node, now)
		found = true
	})
	if !found {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *ForumHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("response not written", zap.Error(err))
	}
}
