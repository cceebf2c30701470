// handlers — REST-зеркало ThreadService для встраиваемого виджета.
// Хендлеры вызывают gRPC-реализацию в процессе, поэтому маппинг ошибок общий (apierrors).
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
)

// Handlers агрегирует зависимости.
type Handlers struct {
	API threadv1.ThreadServiceServer
}

func New(api threadv1.ThreadServiceServer) *Handlers {
	return &Handlers{API: api}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля запрещены.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// pageSize разбирает ?page_size; пустое значение — 0 (лимит по умолчанию).
func pageSize(r *http.Request) (int32, bool) {
	v := r.URL.Query().Get("page_size")
	if v == "" {
		return 0, true
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, false
	}

	return int32(n), true
}
