package profile

import (
	"net/http"

	"social-service/internal/follow"
	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct {
	svc     Service
	follows follow.Service
	limit   int
	cap     int
}

func NewHandler(s Service, follows follow.Service, pageLimit, pageCap int) *Handler {
	return &Handler{svc: s, follows: follows, limit: pageLimit, cap: pageCap}
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
	p, err := h.svc.Create(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	limit := h.pageSize(r)
	offset := httpx.QueryInt(r, "offset", 0)
	f := Filter{
		UserID: r.URL.Query().Get("user_id"),
		Bio:    r.URL.Query().Get("bio"),
	}
	items, err := h.svc.List(f, limit, offset)
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
	httpx.WriteJSON(w, map[string]string{"message": "profile deleted"}, http.StatusOK)
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

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	f, err := h.follows.Follow(r.Context(), uid, id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, f, http.StatusOK)
	return nil
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	removed, err := h.follows.Unfollow(r.Context(), uid, id)
	if err != nil {
		return err
	}
	if !removed {
		httpx.WriteJSON(w, map[string]string{"message": "Not following this user."}, http.StatusOK)
		return nil
	}
	httpx.WriteJSON(w, map[string]string{"message": "Unfollowed successfully."}, http.StatusOK)
	return nil
}
