package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// MaxTitleLength bounds todo titles; longer titles are rejected before insert.
const MaxTitleLength = 500

type Todo struct {
	bun.BaseModel `bun:"table:todos,alias:t"`

	ID        int64     `json:"id" bun:",pk,autoincrement"`
	Title     string    `json:"title" bun:",notnull"`
	IsDone    bool      `json:"isDone" bun:"is_done,notnull,default:false"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeAppendModelHook = (*Todo)(nil)

func (t *Todo) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		t.UpdatedAt = time.Now()
	case *bun.UpdateQuery:
		t.UpdatedAt = time.Now()
	}
	return nil
}
