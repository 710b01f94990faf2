package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/songbook/internal/model"
)

// SongServiceInterface は楽曲ハンドラーが必要とするサービスインターフェース。
type SongServiceInterface interface {
	// CreateSong はリクエストフィールドから楽曲を作成する。
	CreateSong(ctx context.Context, fields map[string]any) (*model.Song, error)
	// GetSong は指定IDの楽曲を返す。
	GetSong(ctx context.Context, id string) (*model.Song, error)
	// ListSongs は全楽曲を登録順で返す。
	ListSongs(ctx context.Context) ([]*model.Song, error)
	// ListByOwner は指定ユーザーの所有楽曲を登録順で返す。
	ListByOwner(ctx context.Context, username string) ([]*model.Song, error)
	// UpdateSong は指定IDの楽曲属性を上書き更新する。
	UpdateSong(ctx context.Context, id string, fields map[string]any) (*model.Song, error)
}

// SongHandler は楽曲コレクションのHTTPハンドラー。
// ユーザー別の楽曲ビュー（/users/{username}/songs）も提供する。
type SongHandler struct {
	service SongServiceInterface
}

// NewSongHandler はSongHandlerを生成する。
func NewSongHandler(service SongServiceInterface) *SongHandler {
	return &SongHandler{
		service: service,
	}
}

// CreateSong は楽曲登録を処理する。
// POST /songs/
func (h *SongHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	fields, apiErr := decodeRequestFields(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	song, err := h.service.CreateSong(r.Context(), fields)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toSongResponse(song))
}

// ListSongs は楽曲一覧を返す。
// GET /songs/
func (h *SongHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.service.ListSongs(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toSongResponses(songs))
}

// GetSong は楽曲詳細を返す。
// GET /songs/{pk}
func (h *SongHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	pk := chi.URLParam(r, "pk")

	song, err := h.service.GetSong(r.Context(), pk)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toSongResponse(song))
}

// UpdateSong は楽曲属性の更新を処理する。
// PUT /songs/{pk}
func (h *SongHandler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	pk := chi.URLParam(r, "pk")

	fields, apiErr := decodeRequestFields(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	song, err := h.service.UpdateSong(r.Context(), pk, fields)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toSongResponse(song))
}

// ListUserSongs は指定ユーザーの所有楽曲一覧を返す。
// GET /users/{username}/songs
func (h *SongHandler) ListUserSongs(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	songs, err := h.service.ListByOwner(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toSongResponses(songs))
}

// toSongResponse はmodel.SongからAPIレスポンスに変換する。
// 不透明な属性フィールドをトップレベルに展開し、idとownerを重ねる。
func toSongResponse(song *model.Song) map[string]any {
	resp := make(map[string]any, len(song.Attrs)+2)
	for k, v := range song.Attrs {
		resp[k] = v
	}
	resp["id"] = song.ID
	resp["owner"] = song.Owner
	return resp
}

// toSongResponses は楽曲スライスをAPIレスポンスのスライスに変換する。
func toSongResponses(songs []*model.Song) []map[string]any {
	responses := make([]map[string]any, len(songs))
	for i, song := range songs {
		responses[i] = toSongResponse(song)
	}
	return responses
}
