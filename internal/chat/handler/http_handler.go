// Package handler exposes posts, pending quotes and attachments over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"goquote/internal/chat/service"
	"goquote/internal/common"
	"goquote/internal/home"
	"goquote/internal/logger"
	"goquote/internal/quote"
)

const maxUploadSize = 32 << 20

type HTTPHandler struct {
	chat        service.ChatService
	quotes      *quote.Service
	attachments service.AttachmentStore
	home        *home.Store
	secret      []byte
	gatherer    prometheus.Gatherer
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

func NewHTTPHandler(
	chat service.ChatService,
	quotes *quote.Service,
	attachments service.AttachmentStore,
	homeStore *home.Store,
	secret []byte,
	gatherer prometheus.Gatherer,
	log *zap.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		chat:        chat,
		quotes:      quotes,
		attachments: attachments,
		home:        homeStore,
		secret:      secret,
		gatherer:    gatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.OrNop(log),
	}
}

func (h *HTTPHandler) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	if h.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware(h.secret))

	api.HandleFunc("/channels/{channelID}/posts", h.listPosts).Methods(http.MethodGet)
	api.HandleFunc("/channels/{channelID}/posts", h.sendReply).Methods(http.MethodPost)
	api.HandleFunc("/channels/{channelID}/quote", h.setQuote).Methods(http.MethodPut)
	api.HandleFunc("/channels/{channelID}/quote", h.getQuote).Methods(http.MethodGet)
	api.HandleFunc("/channels/{channelID}/quote", h.dismissQuote).Methods(http.MethodDelete)
	api.HandleFunc("/channels/{channelID}/quote/watch", h.watchQuote).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postID}/quoted", h.displayQuote).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postID}/files", h.uploadFile).Methods(http.MethodPost)
	api.HandleFunc("/files/{fileID}", h.serveFile).Methods(http.MethodGet)
	api.HandleFunc("/home/{teamName}/last-visited", h.getLastVisited).Methods(http.MethodGet)
	api.HandleFunc("/home/{teamName}/last-visited", h.setLastVisited).Methods(http.MethodPut)

	return router
}

type postResponse struct {
	Post  *common.Post `json:"post"`
	Quote *quote.View  `json:"quote,omitempty"`
}

type sendReplyRequest struct {
	Message string `json:"message"`
}

type setQuoteRequest struct {
	PostID string `json:"post_id"`
}

type lastVisitedBody struct {
	Page string `json:"page"`
}

func (h *HTTPHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) withPostQuote(post *common.Post, currentUserID string) postResponse {
	resp := postResponse{Post: post}
	if post.QuotedPostID != "" {
		resp.Quote = h.quotes.Display(post.QuotedPostID, "", "", currentUserID)
	}
	return resp
}

func (h *HTTPHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())

	posts, err := h.chat.LoadChannel(r.Context(), channelID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, h.withPostQuote(p, userID))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) sendReply(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())

	var req sendReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.chat.SendReply(r.Context(), channelID, userID, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.withPostQuote(post, userID))
}

func (h *HTTPHandler) setQuote(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}

	var req setQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" {
		http.Error(w, "post_id is required", http.StatusBadRequest)
		return
	}

	channelType, err := h.chat.ChannelType(r.Context(), channelID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ref, err := h.quotes.QuotePost(channelID, channelType, req.PostID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (h *HTTPHandler) getQuote(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())

	view, found := h.quotes.Preview(channelID, userID)
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandler) dismissQuote(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}
	if err := h.quotes.Dismiss(channelID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) displayQuote(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postID"]
	userID, _ := common.UserIDFromContext(r.Context())
	q := r.URL.Query()

	view := h.quotes.Display(postID, q.Get("fallback_message"), q.Get("fallback_user_id"), userID)
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandler) uploadFile(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postID"]
	userID, _ := common.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = contentTypeFor(header.Filename)
	}

	info, err := h.chat.AttachFile(r.Context(), postID, header.Filename, mimeType, userID, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *HTTPHandler) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	reader, attachment, err := h.attachments.Download(r.Context(), fileID)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer reader.Close()

	contentType := attachment.MimeType
	if contentType == "" {
		contentType = contentTypeFor(attachment.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", attachment.Size))

	if _, err := io.Copy(w, reader); err != nil {
		h.log.Warn("file_stream_failed", zap.String("file_id", fileID), zap.Error(err))
	}
}

func (h *HTTPHandler) getLastVisited(w http.ResponseWriter, r *http.Request) {
	teamName := mux.Vars(r)["teamName"]
	userID, _ := common.UserIDFromContext(r.Context())

	page, found, err := h.home.LastVisited(userID, teamName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, lastVisitedBody{Page: page})
}

func (h *HTTPHandler) setLastVisited(w http.ResponseWriter, r *http.Request) {
	teamName := mux.Vars(r)["teamName"]
	userID, _ := common.UserIDFromContext(r.Context())

	var body lastVisitedBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.home.SetLastVisited(userID, teamName, body.Page); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) channelID(w http.ResponseWriter, r *http.Request) (string, bool) {
	channelID := mux.Vars(r)["channelID"]
	if err := common.ValidateChannelID(channelID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return channelID, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrPostNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, common.ErrInvalidChannelID),
		errors.Is(err, common.ErrInvalidReference),
		errors.Is(err, service.ErrEmptyChannel),
		errors.Is(err, service.ErrEmptySender),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyFileName),
		errors.Is(err, home.ErrMissingField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("request_failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
