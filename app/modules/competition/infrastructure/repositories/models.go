package competitiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// ContentPage is one opaque text page of the content store. The competition
// document and the roster live on separate pages.
type ContentPage struct {
	bun.BaseModel `bun:"table:content_pages,alias:cp"`
	PageID        string    `bun:"page_id,pk,type:varchar(128)"`
	Body          string    `bun:"body,notnull,type:text"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Participant is a row of the read-only participant directory.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`
	ID            string    `bun:"id,pk,type:varchar(64)"`
	FullName      string    `bun:"full_name,notnull"`
	DisplayName   string    `bun:"display_name,nullzero"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
