package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	goredis "github.com/redis/go-redis/v9"

	"github.com/platewise/recipe-backend/internal/documents"
	"github.com/platewise/recipe-backend/internal/logger"
)

const (
	indexName = "recipes"
	keyPrefix = "recipe:"
)

// RecipeSearchRepo manages recipe documents in the search engine. The index
// is a secondary store keyed by recipe id: the relational store is the
// source of truth and the index converges through the write path.
type RecipeSearchRepo interface {
	Save(ctx context.Context, doc documents.RecipeDoc) error
	DeleteByID(ctx context.Context, recipeID int64) error
	Search(ctx context.Context, searchText string) ([]documents.RecipeDoc, error)
	Close() error
}

type recipeSearchRepo struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRecipeSearchRepo(log *logger.Logger) (RecipeSearchRepo, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	repo := &recipeSearchRepo{
		log: log.With("repo", "RecipeSearchRepo"),
		rdb: rdb,
	}
	if err := repo.ensureIndex(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return repo, nil
}

func (r *recipeSearchRepo) ensureIndex(ctx context.Context) error {
	err := r.rdb.FTCreate(ctx, indexName,
		&goredis.FTCreateOptions{
			OnJSON: true,
			Prefix: []interface{}{keyPrefix},
		},
		&goredis.FieldSchema{FieldName: "$.name", As: "name", FieldType: goredis.SearchFieldTypeText},
		&goredis.FieldSchema{FieldName: "$.description", As: "description", FieldType: goredis.SearchFieldTypeText},
		&goredis.FieldSchema{FieldName: "$.ingredients[*].ingredient", As: "ingredient", FieldType: goredis.SearchFieldTypeText},
		&goredis.FieldSchema{FieldName: "$.instructions[*].instruction", As: "instruction", FieldType: goredis.SearchFieldTypeText},
	).Err()
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create search index: %w", err)
	}
	return nil
}

func (r *recipeSearchRepo) Save(ctx context.Context, doc documents.RecipeDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal recipe doc: %w", err)
	}
	return r.rdb.JSONSet(ctx, documentKey(doc.ID), "$", string(raw)).Err()
}

func (r *recipeSearchRepo) DeleteByID(ctx context.Context, recipeID int64) error {
	return r.rdb.Del(ctx, documentKey(recipeID)).Err()
}

func (r *recipeSearchRepo) Search(ctx context.Context, searchText string) ([]documents.RecipeDoc, error) {
	res, err := r.rdb.FTSearchWithArgs(ctx, indexName, escapeSearchText(searchText), &goredis.FTSearchOptions{}).Result()
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", searchText, err)
	}

	docs := make([]documents.RecipeDoc, 0, len(res.Docs))
	for _, hit := range res.Docs {
		raw, ok := hit.Fields["$"]
		if !ok {
			r.log.Warn("search hit without document payload", "doc_id", hit.ID)
			continue
		}
		var doc documents.RecipeDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			r.log.Warn("search hit with malformed payload", "doc_id", hit.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *recipeSearchRepo) Close() error {
	return r.rdb.Close()
}

func documentKey(recipeID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, recipeID)
}

// escapeSearchText backslash-escapes query-syntax characters so user input
// always reaches the index as plain full-text terms.
func escapeSearchText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
