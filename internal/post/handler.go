package post

import (
	"net/http"
	"strconv"
	"strings"

	"social-service/internal/comment"
	"social-service/internal/like"
	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct {
	svc      Service
	likes    like.Service
	comments comment.Service
	limit    int
	cap      int
}

func NewHandler(s Service, likes like.Service, comments comment.Service, pageLimit, pageCap int) *Handler {
	return &Handler{svc: s, likes: likes, comments: comments, limit: pageLimit, cap: pageCap}
}

func (h *Handler) pageSize(r *http.Request) int {
	n := httpx.QueryInt(r, "limit", h.limit)
	if n <= 0 {
		n = h.limit
	}
	if n > h.cap {
		n = h.cap
	}
	return n
}

func parseFilter(r *http.Request) Filter {
	f := Filter{
		Title:  r.URL.Query().Get("title"),
		UserID: r.URL.Query().Get("user_id"),
	}
	if s := r.URL.Query().Get("profile"); s != "" {
		f.ProfileID, _ = strconv.ParseUint(s, 10, 64)
	}
	if s := r.URL.Query().Get("hashtags"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
				f.TagIDs = append(f.TagIDs, id)
			}
		}
	}
	return f
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Create(r.Context(), uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	limit := h.pageSize(r)
	offset := httpx.QueryInt(r, "offset", 0)
	items, err := h.svc.List(parseFilter(r), limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset}, http.StatusOK)
	return nil
}

func (h *Handler) LikedPosts(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := h.pageSize(r)
	offset := httpx.QueryInt(r, "offset", 0)
	items, err := h.svc.LikedBy(uid, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset}, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetByID(id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Update(uid, id, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(uid, id); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "post deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(20 << 20); err != nil { // 20MB
		return err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return err
	}
	defer file.Close()

	p, err := h.svc.UploadImage(r.Context(), uid, id, hdr.Filename, hdr.Header.Get("Content-Type"), file, hdr.Size)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	l, err := h.likes.Like(r.Context(), id, uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, l, http.StatusOK)
	return nil
}

func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	removed, err := h.likes.Unlike(r.Context(), id, uid)
	if err != nil {
		return err
	}
	if !removed {
		httpx.WriteJSON(w, map[string]string{"message": "Post was not liked."}, http.StatusOK)
		return nil
	}
	httpx.WriteJSON(w, map[string]string{"message": "Like removed successfully."}, http.StatusOK)
	return nil
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[comment.CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.comments.Create(r.Context(), id, uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
	return nil
}
