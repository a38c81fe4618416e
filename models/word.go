package models

import (
	"time"

	"github.com/uptrace/bun"
)

type EncodedWord struct {
	bun.BaseModel `bun:"table:encoded_words"`

	ID        string `bun:",pk"`
	Address   uint32
	Format    string `bun:",notnull"`
	Hex       string `bun:",notnull"`
	Binary    string `bun:",notnull"`
	Fields    []byte // msgpack of []internal.FieldView
	Source    string
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
