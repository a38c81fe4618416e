package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/firodj/mipsword/instruction"
	"github.com/firodj/mipsword/models"
)

// MemoryDSN is a shared in-memory database, gone with the process.
const MemoryDSN = "file::memory:?cache=shared"

type SQLRepository struct {
	db *bun.DB
}

func NewSQLRepository(dsn string, debug bool) (*SQLRepository, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	sqldb.SetMaxOpenConns(1)

	repo := &SQLRepository{
		db: bun.NewDB(sqldb, sqlitedialect.New()),
	}

	repo.db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.WithEnabled(debug),
	))

	return repo, nil
}

func (repo *SQLRepository) Init(ctx context.Context) error {
	_, err := repo.db.NewCreateTable().
		Model((*models.EncodedWord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (repo *SQLRepository) Close() error {
	return repo.db.Close()
}

// Save records instr placed at addr. source tells where it came from
// ("encode", "decode", or a file name).
func (repo *SQLRepository) Save(ctx context.Context, addr uint32, instr instruction.Instruction, source string) (*models.EncodedWord, error) {
	fields, err := msgpack.Marshal(NewFieldViews(instr))
	if err != nil {
		return nil, err
	}

	// current_timestamp only keeps whole seconds
	word := &models.EncodedWord{
		ID:        uuid.NewString(),
		Address:   addr,
		Format:    instr.Format().String(),
		Hex:       instr.Hex(),
		Binary:    instr.Word().String(),
		Fields:    fields,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if _, err := repo.db.NewInsert().Model(word).Exec(ctx); err != nil {
		return nil, fmt.Errorf("save %s: %w", word.Hex, err)
	}
	return word, nil
}

// List returns the newest words first; limit <= 0 means all.
func (repo *SQLRepository) List(ctx context.Context, limit int) ([]models.EncodedWord, error) {
	var words []models.EncodedWord
	q := repo.db.NewSelect().Model(&words).Order("created_at DESC").OrderExpr("rowid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return words, nil
}

func (repo *SQLRepository) FindByHex(ctx context.Context, hex string) ([]models.EncodedWord, error) {
	var words []models.EncodedWord
	err := repo.db.NewSelect().
		Model(&words).
		Where("hex = ?", hex).
		Order("address ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return words, nil
}

func DecodeFieldViews(word *models.EncodedWord) ([]FieldView, error) {
	var views []FieldView
	if err := msgpack.Unmarshal(word.Fields, &views); err != nil {
		return nil, err
	}
	return views, nil
}
