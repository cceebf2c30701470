package mongo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/comment-thread/internal/config"
	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// encodeCursor кодирует пару (created_at, _id) в непрозрачный токен для клиента.
func encodeCursor(t time.Time, id primitive.ObjectID) string {
	raw := fmt.Sprintf("%d|%s", t.UTC().UnixNano(), id.Hex())

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor декодирует токен обратно в пару ключей.
func decodeCursor(token string) (time.Time, primitive.ObjectID, error) {
	res, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	parts := strings.SplitN(string(res), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("bad parts")
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	oid, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	return time.Unix(0, nanos).UTC(), oid, nil
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func limitOrDefault(cfg *config.Config, pageSize int32) int64 {
	lim := pageSize
	if lim <= 0 {
		lim = cfg.Limits.Default
	}

	if lim > cfg.Limits.Max {
		lim = cfg.Limits.Max
	}

	return int64(lim)
}

func parseOID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	return oid, err == nil
}

// CreateComment создаёт комментарий (корневой или ответ).
//   - Для корня выставляет Depth=0.
//   - Для ответа подтягивает ProjectID/PageID из родителя, Depth = parent.Depth + 1.
//   - На родителе инкрементирует replies_count после успешной вставки.
func (m *Mongo) CreateComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	now := toMS(time.Now())

	comm.CreatedAt = now
	comm.UpdatedAt = now
	comm.DeletedAt = nil
	comm.Likes = nil
	comm.RepliesCount = 0

	var parentOID primitive.ObjectID
	if strings.TrimSpace(comm.ParentID) == "" {
		comm.ParentID = ""
		comm.Depth = 0
	} else {
		oid, ok := parseOID(comm.ParentID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}
		parentOID = oid

		var parent commentDoc
		if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: parentOID}}).Decode(&parent); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}

		if parent.DeletedAt != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentDeleted)
		}

		if parent.Depth+1 > int(m.cfg.Limits.MaxDepth) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrMaxDepthExceeded)
		}

		// Ответ всегда живёт в проекте и на странице родителя.
		comm.ParentID = parent.ID.Hex()
		comm.ProjectID = parent.ProjectID
		comm.PageID = parent.PageID
		comm.Depth = parent.Depth + 1
	}

	res, err := m.comments.InsertOne(ctx, toDoc(comm))
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	if !parentOID.IsZero() {
		_, err := m.comments.UpdateByID(ctx, parentOID, bson.D{
			{Key: "$inc", Value: bson.D{{Key: "replies_count", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: inc replies_count: %w", op, err)
		}
	}

	comm.ID = oid.Hex()
	comm.Likes = models.LikeSet{}

	return &comm, nil
}

// DeleteComment помечает комментарий как удалённый (мягкое удаление).
// Содержимое очищается, автор и место в дереве сохраняются.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeleteComment(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteComment"

	oid, ok := parseOID(id)
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	now := toMS(time.Now())
	res, err := m.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "deleted_at", Value: nil}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "deleted_at", Value: now},
			{Key: "content", Value: richtext.Document{Type: richtext.TypeDoc}},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount > 0 {
		return nil
	}

	// Либо записи нет, либо она уже удалена — второе не ошибка.
	n, err := m.comments.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: count: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ToggleLike ставит или снимает лайк userID одним атомарным обновлением.
// Сначала пытаемся добавить (фильтр исключает уже лайкнувших), затем снять.
func (m *Mongo) ToggleLike(ctx context.Context, id, userID string) (models.LikeSet, error) {
	const op = "storage/mongo/ToggleLike"

	oid, ok := parseOID(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	now := toMS(time.Now())

	var doc commentDoc
	err := m.comments.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "deleted_at", Value: nil},
			{Key: "likes.user_id", Value: bson.D{{Key: "$ne", Value: userID}}},
		},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "likes", Value: likeDoc{UserID: userID}}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
		},
		opts,
	).Decode(&doc)
	if err == nil {
		return likesModel(doc.Likes), nil
	}
	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: like: %w", op, err)
	}

	err = m.comments.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "deleted_at", Value: nil},
			{Key: "likes.user_id", Value: userID},
		},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "user_id", Value: userID}}}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
		},
		opts,
	).Decode(&doc)
	if err == nil {
		return likesModel(doc.Likes), nil
	}
	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: unlike: %w", op, err)
	}

	// Ни одно обновление не сработало: разбираемся почему.
	cur, err := m.CommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cur.IsDeleted() {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCommentDeleted)
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
}

// CommentByID возвращает комментарий по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, ok := parseOID(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.model()

	return &out, nil
}

// ListByPage возвращает страницу корневых комментариев (parent_id == "").
// Сортировка: created_at DESC, _id DESC.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListByPage(ctx context.Context, pageID string, param models.ListParams) (*models.Page, error) {
	const op = "storage/mongo/ListByPage"

	filter := bson.D{
		{Key: "page_id", Value: strings.TrimSpace(pageID)},
		{Key: "parent_id", Value: ""},
	}

	page, err := m.listPage(ctx, filter, param, -1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ListReplies возвращает страницу прямых ответов на parentID.
// Сортировка: created_at ASC, _id ASC — удобно для постепенной подзагрузки.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListReplies(ctx context.Context, parentID string, param models.ListParams) (*models.Page, error) {
	const op = "storage/mongo/ListReplies"

	parentOID, ok := parseOID(parentID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	filter := bson.D{
		{Key: "parent_id", Value: parentOID.Hex()},
	}

	page, err := m.listPage(ctx, filter, param, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// listPage — общая keyset-пагинация по (created_at, _id).
// dir = 1 — по возрастанию (курсор «больше»), -1 — по убыванию (курсор «меньше»).
// Токен следующей страницы выдаётся только если страница заполнена целиком.
func (m *Mongo) listPage(ctx context.Context, filter bson.D, param models.ListParams, dir int) (*models.Page, error) {
	limit := limitOrDefault(m.cfg, param.PageSize)

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}).
		SetLimit(limit)

	if strings.TrimSpace(param.PageToken) != "" {
		t, oid, decErr := decodeCursor(param.PageToken)
		if decErr != nil {
			return nil, storage.ErrInvalidCursor
		}

		cmpOp := "$gt"
		if dir < 0 {
			cmpOp = "$lt"
		}

		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: cmpOp, Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: cmpOp, Value: oid}}},
			},
		}})
	}

	docs, err := m.find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	items := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.model())
	}

	var next string
	if n := len(docs); n > 0 && int64(n) == limit {
		last := docs[n-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}

	return &models.Page{
		Items:         items,
		NextPageToken: next,
	}, nil
}

// ListThread возвращает всю ветку страницы: depth ASC, created_at ASC, _id ASC.
func (m *Mongo) ListThread(ctx context.Context, pageID string) ([]models.Comment, error) {
	const op = "storage/mongo/ListThread"

	findOpts := options.Find().SetSort(bson.D{
		{Key: "depth", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	docs, err := m.find(ctx, bson.D{{Key: "page_id", Value: strings.TrimSpace(pageID)}}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}

	return out, nil
}

func (m *Mongo) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]commentDoc, error) {
	cur, err := m.comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return docs, nil
}
